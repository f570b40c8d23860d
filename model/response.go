package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Response is one respondent's full set of submitted answers.
type Response struct {
	ID         int                 `json:"id,omitempty"`
	SurveyID   int                 `json:"surveyId"`
	Time       time.Time           `json:"createdAt"`
	IP         string              `json:"-"`
	Components []ResponseComponent `json:"components"`
}

// ResponseComponent pairs a question key with its answer. Answer shape
// depends on the component type: string for text-like and single-choice,
// []string for checkboxes/ranking, number for rating types, row->column
// map for matrix.
type ResponseComponent struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

// EmptyAnswer reports whether v counts as "no answer": nil, empty string,
// or a zero-length sequence/map. The validation engine, the form engine
// and the aggregator all share this definition.
func EmptyAnswer(v any) bool {
	switch a := v.(type) {
	case nil:
		return true
	case string:
		return a == ""
	case []string:
		return len(a) == 0
	case []any:
		return len(a) == 0
	case map[string]string:
		return len(a) == 0
	case map[string]any:
		return len(a) == 0
	}
	return false
}

// AnswerText renders an answer as the literal string analytics groups by.
// Sequences join in order; matrix answers list row: column pairs sorted by
// row so equal answers compare equal.
func AnswerText(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case string:
		return a
	case []string:
		return strings.Join(a, ", ")
	case []any:
		parts := make([]string, len(a))
		for i, e := range a {
			parts[i] = AnswerText(e)
		}
		return strings.Join(parts, ", ")
	case map[string]string:
		pairs := make([]string, 0, len(a))
		for k, v := range a {
			pairs = append(pairs, k+": "+v)
		}
		sort.Strings(pairs)
		return strings.Join(pairs, "; ")
	case map[string]any:
		pairs := make([]string, 0, len(a))
		for k, v := range a {
			pairs = append(pairs, k+": "+AnswerText(v))
		}
		sort.Strings(pairs)
		return strings.Join(pairs, "; ")
	case float64:
		if a == float64(int64(a)) {
			return fmt.Sprintf("%d", int64(a))
		}
		return fmt.Sprintf("%g", a)
	case int:
		return fmt.Sprintf("%d", a)
	case bool:
		if a {
			return "Yes"
		}
		return "No"
	}
	return fmt.Sprintf("%v", v)
}

// SortNewestFirst orders responses by creation time descending.
// Zero/missing timestamps sort as oldest.
func SortNewestFirst(responses []Response) {
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].Time.After(responses[j].Time)
	})
}
