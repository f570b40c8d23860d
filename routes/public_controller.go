package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/go-chi/render"
	"github.com/surveyforge/surveyforge/app"
	"github.com/surveyforge/surveyforge/form"
	"github.com/surveyforge/surveyforge/httpx"
	"github.com/surveyforge/surveyforge/log"
	"github.com/surveyforge/surveyforge/model"
	"github.com/surveyforge/surveyforge/renderer"
)

// publicSurvey loads a survey for respondent-facing endpoints, going
// through the injected cache so repeated fetches of the same live survey
// skip the database.
func publicSurvey(ctx context.Context, app app.App, surveyID int) (model.Survey, error) {
	key := surveyCacheKey(surveyID)
	if cached, ok := app.SurveyCache.Get(key); ok {
		if survey, ok := cached.(model.Survey); ok {
			return survey, nil
		}
	}

	survey, err := fetchSurvey(ctx, app.DB, surveyID)
	if err != nil {
		return survey, err
	}

	app.SurveyCache.Set(key, survey)
	return survey, nil
}

// respondentSurvey resolves the {id} param, loads the survey and applies
// the lifecycle gate: only live surveys are visible to respondents.
// Drafted and completed get distinct replies so a closed survey does not
// look like a missing one.
func respondentSurvey(app app.App, w http.ResponseWriter, r *http.Request) (survey model.Survey, ok bool) {
	surveyID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return
	}

	survey, err = publicSurvey(r.Context(), app, surveyID)
	if errors.Is(err, sql.ErrNoRows) {
		httpx.LogNotFound(w, "get_survey", surveyID)
		return
	}
	if err != nil {
		httpx.LogInternalError(w, "db.get_survey", err)
		return
	}

	switch {
	case survey.Status == model.StatusDrafted:
		httpx.LogStatusMsg(w, http.StatusForbidden, log.DebugLevel, "survey.drafted", "this survey is not open yet")
		return
	case survey.Status == model.StatusCompleted:
		httpx.LogStatusMsg(w, http.StatusGone, log.DebugLevel, "survey.completed", "this survey is no longer accepting responses")
		return
	}

	if survey.AuthRequired && !bearerValid(app, r) {
		httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "survey.auth_required")
		return
	}

	// respondents never see the owner
	survey.UserID = 0
	return survey, true
}

// bearerValid runs the oauth middleware against a buffered response to
// check the caller's token without committing to a reply.
func bearerValid(app app.App, r *http.Request) bool {
	if r.Header.Get("authorization") == "" {
		return false
	}

	buf := httpx.NewResponseBuffer()
	authorized := false
	oauth.Authorize(app.TokenSecret, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		authorized = true
	})).ServeHTTP(buf, r)
	return authorized
}

// PublicGetSurveyById returns a live survey's definition for rendering by
// a client.
func PublicGetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := respondentSurvey(app, w, r)
		if !ok {
			return
		}
		render.JSON(w, r, survey)
	}
}

// PublicSurveyForm serves the server-rendered respondent form.
func PublicSurveyForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := respondentSurvey(app, w, r)
		if !ok {
			return
		}

		page, err := renderer.Page(survey, nil, nil)
		if err != nil {
			httpx.LogInternalError(w, "render.form", err)
			return
		}

		w.Header().Set("content-type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

// PublicSubmitResponse validates and stores one respondent's answers.
// Validation runs server-side through the same engine the preview uses;
// a failure returns the per-field messages and stores nothing.
func PublicSubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := respondentSurvey(app, w, r)
		if !ok {
			return
		}

		submitted := model.Response{}
		err := render.DecodeJSON(r.Body, &submitted)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		// answers arrive keyed by questionId; the form engine tracks them
		// by component id
		byKey := make(map[string]string, len(survey.Components))
		for _, c := range survey.Components {
			byKey[c.Key()] = c.ID
		}

		session := form.New(survey.Components)
		for _, rc := range submitted.Components {
			id, ok := byKey[rc.QuestionID]
			if !ok {
				httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "response.unknown_question",
					"unknown question %q", rc.QuestionID)
				return
			}
			session.SetAnswer(id, rc.Answer)
		}

		answers, err := session.Submit()
		if err != nil {
			var fieldErrs form.ValidationError
			if errors.As(err, &fieldErrs) {
				httpx.ValidationFailed(w, r, "response.validate", fieldErrs)
				return
			}
			httpx.LogInternalError(w, "response.submit", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		ip := strings.Split(r.RemoteAddr, ":")[0]
		var responseId int
		err = tx.QueryRowContext(r.Context(), `
			INSERT INTO response (survey_id, time, ip) VALUES (?, ?, ?)
			RETURNING id`,
			survey.ID,
			time.Now(),
			ip,
		).Scan(&responseId)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO response_component (response_id, question_id, answer)
			VALUES (?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.answers.prepare", err)
			return
		}
		defer stmt.Close()

		for _, a := range answers {
			valueJson, err := json.Marshal(a.Answer)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_response.answers.encode", err)
				return
			}
			_, err = stmt.ExecContext(r.Context(), responseId, a.QuestionID, string(valueJson))
			if err != nil {
				httpx.LogInternalError(w, "db.insert_response.answers.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": responseId,
		})
	}
}
