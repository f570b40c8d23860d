package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyforge/surveyforge/model"
)

func answer(q, a string) model.ResponseComponent {
	return model.ResponseComponent{QuestionID: q, Answer: a}
}

func TestAggregate_Breakdown(t *testing.T) {
	components := []model.Component{
		{ID: "q1", Type: model.TypeMultipleChoice, Required: true, Options: []string{"Yes", "No"}},
	}
	responses := []model.Response{
		{Components: []model.ResponseComponent{answer("q1", "Yes")}},
		{Components: []model.ResponseComponent{answer("q1", "Yes")}},
		{Components: []model.ResponseComponent{answer("q1", "No")}},
	}

	report := Aggregate(components, responses)

	require.Len(t, report.Questions, 1)
	q := report.Questions[0]
	assert.Equal(t, "q1", q.QuestionID)
	assert.False(t, q.NoAnswers)
	assert.Equal(t, 3, q.Total)
	require.Len(t, q.Answers, 2)
	assert.Equal(t, AnswerGroup{Answer: "Yes", Count: 2, Percent: 67}, q.Answers[0])
	assert.Equal(t, AnswerGroup{Answer: "No", Count: 1, Percent: 33}, q.Answers[1])

	assert.Equal(t, 3, report.Summary.TotalResponses)
	assert.Equal(t, 100, report.Summary.CompletionRate)
}

func TestAggregate_EmptyResponses(t *testing.T) {
	components := []model.Component{
		{ID: "q1", Type: model.TypeTextInput, Label: "Name"},
		{ID: "q2", Type: model.TypeNumber},
	}

	report := Aggregate(components, nil)

	require.Len(t, report.Questions, 2)
	for _, q := range report.Questions {
		assert.True(t, q.NoAnswers, "question %s", q.QuestionID)
		assert.Empty(t, q.Answers)
	}
	assert.Equal(t, 0, report.Summary.TotalResponses)
	assert.Equal(t, 0, report.Summary.CompletionRate)
	assert.True(t, report.Summary.LatestResponse.IsZero())
}

func TestAggregate_Idempotent(t *testing.T) {
	components := []model.Component{
		{ID: "q1", Type: model.TypeDropdown, Options: []string{"a", "b", "c"}},
	}
	responses := []model.Response{
		{Time: time.Now(), Components: []model.ResponseComponent{answer("q1", "a")}},
		{Time: time.Now(), Components: []model.ResponseComponent{answer("q1", "b")}},
	}

	first := Aggregate(components, responses)
	second := Aggregate(components, responses)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestAggregate_TieBreakFirstEncounter(t *testing.T) {
	components := []model.Component{
		{ID: "q1", Type: model.TypeMultipleChoice, Options: []string{"x", "y", "z"}},
	}
	// z first, then y, then x; all count 1
	responses := []model.Response{
		{Components: []model.ResponseComponent{answer("q1", "z")}},
		{Components: []model.ResponseComponent{answer("q1", "y")}},
		{Components: []model.ResponseComponent{answer("q1", "x")}},
	}

	report := Aggregate(components, responses)
	require.Len(t, report.Questions[0].Answers, 3)
	assert.Equal(t, "z", report.Questions[0].Answers[0].Answer)
	assert.Equal(t, "y", report.Questions[0].Answers[1].Answer)
	assert.Equal(t, "x", report.Questions[0].Answers[2].Answer)
}

func TestAggregate_SkipsEmptyAnswersAndContentBlocks(t *testing.T) {
	components := []model.Component{
		{ID: "h1", Type: model.TypeHeading, Label: "Section"},
		{ID: "q1", Type: model.TypeTextInput},
	}
	responses := []model.Response{
		{Components: []model.ResponseComponent{answer("q1", "")}},
		{Components: []model.ResponseComponent{answer("q1", "hi")}},
		{Components: []model.ResponseComponent{{QuestionID: "q1", Answer: nil}}},
	}

	report := Aggregate(components, responses)

	// heading is not a question
	require.Len(t, report.Questions, 1)
	q := report.Questions[0]
	assert.Equal(t, 1, q.Total)
	require.Len(t, q.Answers, 1)
	assert.Equal(t, AnswerGroup{Answer: "hi", Count: 1, Percent: 100}, q.Answers[0])
}

func TestAggregate_CompletionRate(t *testing.T) {
	components := []model.Component{
		{ID: "q1", Type: model.TypeTextInput},
		{ID: "q2", Type: model.TypeTextInput},
	}
	responses := []model.Response{
		{Components: []model.ResponseComponent{answer("q1", "a"), answer("q2", "b")}},
		{Components: []model.ResponseComponent{answer("q1", "a")}},
		{Components: []model.ResponseComponent{answer("q1", "a"), answer("q2", "c")}},
	}

	report := Aggregate(components, responses)
	assert.Equal(t, 67, report.Summary.CompletionRate)
}

func TestAggregate_LatestResponse(t *testing.T) {
	components := []model.Component{{ID: "q1", Type: model.TypeTextInput}}
	newest := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	responses := []model.Response{
		{Time: newest.Add(-time.Hour), Components: []model.ResponseComponent{answer("q1", "a")}},
		{Time: newest, Components: []model.ResponseComponent{answer("q1", "b")}},
		{Components: []model.ResponseComponent{answer("q1", "c")}}, // missing timestamp
	}

	report := Aggregate(components, responses)
	assert.Equal(t, newest, report.Summary.LatestResponse)
}

func TestAggregate_FallbackLabels(t *testing.T) {
	components := []model.Component{
		{ID: "comp-1", QuestionID: "fb-key", Type: model.TypeTextInput},
	}
	responses := []model.Response{
		{Components: []model.ResponseComponent{answer("fb-key", "v")}},
	}

	report := Aggregate(components, responses)
	require.Len(t, report.Questions, 1)
	assert.Equal(t, "fb-key", report.Questions[0].QuestionID)
	assert.Equal(t, "Untitled question", report.Questions[0].Label)
	assert.Equal(t, 1, report.Questions[0].Total)
}
