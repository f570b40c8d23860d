package routes

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/surveyforge/surveyforge/analytics"
	"github.com/surveyforge/surveyforge/app"
	"github.com/surveyforge/surveyforge/httpx"
	"github.com/surveyforge/surveyforge/log"
	"github.com/surveyforge/surveyforge/model"
	"github.com/surveyforge/surveyforge/routes/middlewares"
)

func surveyCacheKey(id int) string {
	return fmt.Sprintf("survey:%d", id)
}

// CreateSurvey stores a new survey for the caller. Status always starts at
// drafted and the version counter at 1, whatever the payload says.
func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserID(r)

		survey := model.Survey{}
		err := render.DecodeJSON(r.Body, &survey)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		survey.Status = model.StatusDrafted
		survey.Version = 1
		survey.UserID = userID
		for i := range survey.Components {
			if survey.Components[i].ID == "" {
				survey.Components[i].ID = "comp-" + uuid.NewString()
			}
		}
		if err := survey.Validate(); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "survey.invalid", "%s", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var authRequired int
		if survey.AuthRequired {
			authRequired = 1
		}
		err = tx.QueryRowContext(r.Context(), `
			INSERT INTO survey (user_id, title, description, status, auth_required)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id`,
			userID,
			survey.Title,
			survey.Description,
			survey.Status,
			authRequired,
		).Scan(&survey.ID)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey", err)
			return
		}

		err = insertComponents(r.Context(), tx, survey.ID, survey.Components)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey.components", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, survey)
	}
}

// ListSurveys returns the caller's surveys, most recent first, without
// component lists.
func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserID(r)

		rows, err := app.QueryContext(r.Context(), `
			SELECT id, version, title, description, status, auth_required
			FROM survey
			WHERE user_id = ?
			ORDER BY id DESC`,
			userID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.get_surveys", err)
			return
		}
		defer rows.Close()

		surveys := []model.Survey{}
		for rows.Next() {
			s := model.Survey{UserID: userID}
			var authRequired int
			err = rows.Scan(&s.ID, &s.Version, &s.Title, &s.Description, &s.Status, &authRequired)
			if err != nil {
				httpx.LogInternalError(w, "db.get_surveys.scan", err)
				return
			}
			s.AuthRequired = authRequired != 0

			surveys = append(surveys, s)
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

// ownSurvey loads a survey and checks the caller owns it. Writes the error
// response itself and reports ok=false when the handler should bail.
func ownSurvey(app app.App, w http.ResponseWriter, r *http.Request) (survey model.Survey, ok bool) {
	surveyID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return
	}
	userID, _ := middlewares.UserID(r)

	survey, err = fetchSurvey(r.Context(), app.DB, surveyID)
	if errors.Is(err, sql.ErrNoRows) {
		httpx.LogNotFound(w, "get_survey", surveyID)
		return
	}
	if err != nil {
		httpx.LogInternalError(w, "db.get_survey", err)
		return
	}
	if survey.UserID != userID {
		// not the owner: indistinguishable from absent
		httpx.LogNotFound(w, "get_survey.owner", surveyID)
		return
	}

	return survey, true
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := ownSurvey(app, w, r)
		if !ok {
			return
		}
		render.JSON(w, r, survey)
	}
}

// UpdateSurvey replaces a survey's metadata and component list. Component
// edits are only allowed while drafted; status may only move forward
// (drafted to live, live to completed). The version column is an
// optimistic lock: a stale write gets a 409.
func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := ownSurvey(app, w, r)
		if !ok {
			return
		}

		survey := model.Survey{}
		err := render.DecodeJSON(r.Body, &survey)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if survey.Status == "" {
			survey.Status = current.Status
		}
		if !current.Status.CanTransition(survey.Status) {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "survey.status",
				"cannot change status from %s to %s", current.Status, survey.Status)
			return
		}

		componentsChanged := survey.Components != nil
		if componentsChanged && !current.Status.Editable() {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "survey.locked",
				"components can only change while the survey is drafted")
			return
		}
		if !componentsChanged {
			survey.Components = current.Components
		}

		for i := range survey.Components {
			if survey.Components[i].ID == "" {
				survey.Components[i].ID = "comp-" + uuid.NewString()
			}
		}
		survey.ID = current.ID
		survey.UserID = current.UserID
		if err := survey.Validate(); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "survey.invalid", "%s", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		if componentsChanged {
			_, err = tx.ExecContext(r.Context(), `
				DELETE FROM survey_component
				WHERE survey_id = ?`,
				survey.ID,
			)
			if err != nil {
				httpx.LogInternalError(w, "db.update_survey.delete_components", err)
				return
			}

			err = insertComponents(r.Context(), tx, survey.ID, survey.Components)
			if err != nil {
				httpx.LogInternalError(w, "db.update_survey.components", err)
				return
			}
		}

		var authRequired int
		if survey.AuthRequired {
			authRequired = 1
		}
		res, err := tx.ExecContext(r.Context(), `
			UPDATE survey
			SET
				title = ?,
				description = ?,
				status = ?,
				auth_required = ?,
				version = version+1
			WHERE	id = ?
				AND version = ?`,
			survey.Title,
			survey.Description,
			survey.Status,
			authRequired,
			survey.ID,
			survey.Version,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey", err)
			return
		}
		// optimistic lock
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "db.update_survey.verify.conflict")
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey.commit", err)
			return
		}

		app.SurveyCache.Invalidate(surveyCacheKey(survey.ID))

		survey.Version++
		render.JSON(w, r, survey)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := ownSurvey(app, w, r)
		if !ok {
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		for _, stmt := range []string{
			`DELETE FROM response_component
			 WHERE response_id IN (SELECT id FROM response WHERE survey_id = ?)`,
			`DELETE FROM response WHERE survey_id = ?`,
			`DELETE FROM survey_component WHERE survey_id = ?`,
			`DELETE FROM survey WHERE id = ?`,
		} {
			_, err = tx.ExecContext(r.Context(), stmt, survey.ID)
			if err != nil {
				httpx.LogInternalError(w, "db.delete_survey", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_survey.commit", err)
			return
		}

		app.SurveyCache.Invalidate(surveyCacheKey(survey.ID))

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetSurveyResponses returns a survey's raw responses, newest first.
func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := ownSurvey(app, w, r)
		if !ok {
			return
		}

		responses, err := fetchResponses(r.Context(), app.DB, survey.ID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}
		model.SortNewestFirst(responses)

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}

// GetSurveyAnalytics runs the aggregator over a survey's responses.
func GetSurveyAnalytics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, ok := ownSurvey(app, w, r)
		if !ok {
			return
		}

		responses, err := fetchResponses(r.Context(), app.DB, survey.ID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, analytics.Aggregate(survey.Components, responses))
	}
}
