package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/surveyforge/surveyforge/model"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// fetchSurvey loads a survey with its components in position order.
// Returns sql.ErrNoRows when the survey does not exist.
func fetchSurvey(ctx context.Context, q querier, surveyID int) (model.Survey, error) {
	survey := model.Survey{ID: surveyID}

	var authRequired int
	err := q.QueryRowContext(ctx, `
		SELECT user_id, version, title, description, status, auth_required
		FROM survey
		WHERE id = ?`,
		surveyID,
	).Scan(&survey.UserID, &survey.Version, &survey.Title, &survey.Description, &survey.Status, &authRequired)
	if err != nil {
		return survey, err
	}
	survey.AuthRequired = authRequired != 0

	rows, err := q.QueryContext(ctx, `
		SELECT id, type, label, description, required, placeholder,
			min, max, options, rows, columns, image_url, validation, pattern, message
		FROM survey_component
		WHERE survey_id = ?
		ORDER BY position`,
		surveyID,
	)
	if err != nil {
		return survey, err
	}
	defer rows.Close()

	survey.Components = []model.Component{}
	for rows.Next() {
		var c model.Component
		var required int
		var options, rowsJSON, columns string
		err = rows.Scan(
			&c.ID, &c.Type, &c.Label, &c.Description, &required, &c.Placeholder,
			&c.Min, &c.Max, &options, &rowsJSON, &columns, &c.ImageURL, &c.Validation, &c.Pattern, &c.Message,
		)
		if err != nil {
			return survey, err
		}
		c.Required = required != 0

		if c.Options, err = decodeStrings(options); err != nil {
			return survey, fmt.Errorf("component %q options: %w", c.ID, err)
		}
		if c.Rows, err = decodeStrings(rowsJSON); err != nil {
			return survey, fmt.Errorf("component %q rows: %w", c.ID, err)
		}
		if c.Columns, err = decodeStrings(columns); err != nil {
			return survey, fmt.Errorf("component %q columns: %w", c.ID, err)
		}

		survey.Components = append(survey.Components, c)
	}

	return survey, rows.Err()
}

// insertComponents writes a survey's full component list. Callers delete
// the old list first; the survey row's version column guards against
// concurrent writers.
func insertComponents(ctx context.Context, tx *sql.Tx, surveyID int, components []model.Component) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_component (
			survey_id, position, id, type, label, description, required, placeholder,
			min, max, options, rows, columns, image_url, validation, pattern, message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for position, c := range components {
		options, err := encodeStrings(c.Options)
		if err != nil {
			return err
		}
		rowsJSON, err := encodeStrings(c.Rows)
		if err != nil {
			return err
		}
		columns, err := encodeStrings(c.Columns)
		if err != nil {
			return err
		}

		_, err = stmt.ExecContext(ctx,
			surveyID, position, c.ID, c.Type, c.Label, c.Description, c.Required, c.Placeholder,
			c.Min, c.Max, options, rowsJSON, columns, c.ImageURL, c.Validation, c.Pattern, c.Message,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// fetchResponses loads every response to a survey with its answers.
func fetchResponses(ctx context.Context, q querier, surveyID int) ([]model.Response, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT r.id, r.time, r.ip, c.question_id, c.answer
		FROM response r
		LEFT OUTER JOIN response_component c ON (r.id = c.response_id)
		WHERE r.survey_id = ?
		ORDER BY r.id`,
		surveyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		var id int
		var t time.Time
		var ip string
		var questionID, answer sql.NullString

		err = rows.Scan(&id, &t, &ip, &questionID, &answer)
		if err != nil {
			return nil, err
		}

		last := len(responses) - 1
		if last < 0 || responses[last].ID != id {
			responses = append(responses, model.Response{
				ID:         id,
				SurveyID:   surveyID,
				Time:       t,
				IP:         ip,
				Components: []model.ResponseComponent{},
			})
			last++
		}

		if !questionID.Valid {
			// response with no recorded answers
			continue
		}

		var value any
		if answer.String != "" {
			if err := json.Unmarshal([]byte(answer.String), &value); err != nil {
				return nil, fmt.Errorf("response %d answer %q: %w", id, questionID.String, err)
			}
		}
		responses[last].Components = append(responses[last].Components, model.ResponseComponent{
			QuestionID: questionID.String,
			Answer:     value,
		})
	}

	return responses, rows.Err()
}

func encodeStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(values)
	return string(raw), err
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	err := json.Unmarshal([]byte(raw), &values)
	return values, err
}
