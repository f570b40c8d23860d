// Package analytics computes per-question answer-frequency breakdowns and
// summary statistics over a survey's accumulated responses.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/surveyforge/surveyforge/model"
)

// Report is the full analytics output for one survey.
type Report struct {
	Questions []QuestionBreakdown `json:"questions"`
	Summary   Summary             `json:"summary"`
}

// QuestionBreakdown is the answer-frequency distribution for one question.
// NoAnswers distinguishes "nobody answered" from an empty chart.
type QuestionBreakdown struct {
	QuestionID string        `json:"questionId"`
	Label      string        `json:"label"`
	NoAnswers  bool          `json:"noAnswers"`
	Total      int           `json:"total"`
	Answers    []AnswerGroup `json:"answers,omitempty"`
}

// AnswerGroup is one distinct answer with its count and share of the
// question's non-empty answers.
type AnswerGroup struct {
	Answer  string `json:"answer"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

type Summary struct {
	TotalResponses int       `json:"totalResponses"`
	QuestionCount  int       `json:"questionCount"`
	CompletionRate int       `json:"completionRate"`
	LatestResponse time.Time `json:"latestResponse"` // zero when there are no responses
}

// Aggregate builds the report. Pure function of its inputs: calling it
// twice on the same components and responses yields identical output.
func Aggregate(components []model.Component, responses []model.Response) Report {
	report := Report{
		Questions: make([]QuestionBreakdown, 0, len(components)),
	}

	for _, c := range components {
		if !model.Answerable(c.Type) {
			continue
		}
		report.Questions = append(report.Questions, breakdown(c, responses))
	}

	report.Summary = summarize(report.Questions, responses)
	return report
}

// breakdown groups one question's non-empty answers by literal string
// equality. Groups sort by descending count; ties keep first-encounter
// order (stable sort over insertion order).
func breakdown(c model.Component, responses []model.Response) QuestionBreakdown {
	key := c.Key()
	out := QuestionBreakdown{
		QuestionID: key,
		Label:      c.DisplayLabel(),
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range responses {
		for _, rc := range r.Components {
			if rc.QuestionID != key || model.EmptyAnswer(rc.Answer) {
				continue
			}
			text := model.AnswerText(rc.Answer)
			if counts[text] == 0 {
				order = append(order, text)
			}
			counts[text]++
			out.Total++
		}
	}

	if out.Total == 0 {
		out.NoAnswers = true
		return out
	}

	out.Answers = make([]AnswerGroup, 0, len(order))
	for _, text := range order {
		out.Answers = append(out.Answers, AnswerGroup{
			Answer:  text,
			Count:   counts[text],
			Percent: roundPercent(counts[text], out.Total),
		})
	}
	sort.SliceStable(out.Answers, func(i, j int) bool {
		return out.Answers[i].Count > out.Answers[j].Count
	})

	return out
}

func summarize(questions []QuestionBreakdown, responses []model.Response) Summary {
	s := Summary{
		TotalResponses: len(responses),
		QuestionCount:  len(questions),
	}

	if len(responses) > 0 && len(questions) > 0 {
		complete := 0
		for _, r := range responses {
			if len(r.Components) == len(questions) {
				complete++
			}
		}
		s.CompletionRate = roundPercent(complete, len(responses))
	}

	for _, r := range responses {
		if r.Time.After(s.LatestResponse) {
			s.LatestResponse = r.Time
		}
	}

	return s
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
