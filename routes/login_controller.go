package routes

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/mattn/go-sqlite3"
	"github.com/surveyforge/surveyforge/app"
	"github.com/surveyforge/surveyforge/httpx"
	"github.com/surveyforge/surveyforge/log"
	"github.com/surveyforge/surveyforge/model"
	"github.com/surveyforge/surveyforge/routes/middlewares"
	"golang.org/x/crypto/bcrypt"
)

// Login exchanges BasicAuth credentials for a bearer token through the
// oauth password grant.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		body := url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}
		r.Body = io.NopCloser(strings.NewReader(body.Encode()))
		r.Header.Set("content-type", "application/x-www-form-urlencoded")
		r.Header.Set("content-length", strconv.Itoa(len(body.Encode())))
		app.UserCredentials(w, r)
	}
}

// Signup creates a user and then runs the regular login flow so the
// response carries a token right away.
func Signup(app app.App) http.HandlerFunc {
	login := Login(app)

	return func(w http.ResponseWriter, r *http.Request) {
		user := model.User{}
		err := render.DecodeJSON(r.Body, &user)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if user.Email == "" || user.Password == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "signup.fields", "email and password are required")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.LogInternalError(w, "signup.hash", err)
			return
		}

		_, err = app.ExecContext(r.Context(), `
			INSERT INTO user (name, email, role, password_hash)
			VALUES (?, ?, 'user', ?)`,
			user.Name,
			user.Email,
			hash,
		)
		if err != nil {
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
				httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "signup.duplicate", "email already registered")
				return
			}
			httpx.LogInternalError(w, "db.insert_user", err)
			return
		}

		r.SetBasicAuth(user.Email, user.Password)
		login(w, r)
	}
}

// Refresh exchanges a "Refresh <token>" authorization header for a new
// token pair.
func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("authorization")
		match := regexp.MustCompile(`(?i)^refresh\s+(.*)`).FindStringSubmatch(auth)
		if len(match) == 0 {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}
		token := match[1]

		body := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		}

		req, err := http.NewRequest("POST", "/", strings.NewReader(body.Encode()))
		if err != nil {
			httpx.LogStatus(w, http.StatusInternalServerError, log.DebugLevel, "refresh.new_request")
			return
		}
		req.Header.Set("content-type", "application/x-www-form-urlencoded")
		req.Header.Set("content-length", strconv.Itoa(len(body.Encode())))

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		resp.Flush(w)
	}
}

// Me returns the authenticated user. Reaching here at all means the token
// was valid; a claims/user mismatch is still a 401, not a 500.
func Me(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := middlewares.Email(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "me.claims")
			return
		}

		user := model.User{}
		err := app.QueryRowContext(r.Context(), `
			SELECT id, name, email, role
			FROM user
			WHERE email = ?`,
			email,
		).Scan(&user.ID, &user.Name, &user.Email, &user.Role)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "me.unknown_user")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_user", err)
			return
		}

		render.JSON(w, r, user)
	}
}
