package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyforge/surveyforge/model"
)

func TestSubmit_RequiredFieldMissing(t *testing.T) {
	f := New([]model.Component{
		{ID: "q1", Type: model.TypeTextInput, Required: true},
	})

	_, err := f.Submit()
	require.Error(t, err)

	var fieldErrs ValidationError
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs, "q1")

	assert.False(t, f.Submitted())
	assert.Equal(t, "This field is required", f.Error("q1"))
}

func TestSubmit_Success(t *testing.T) {
	f := New([]model.Component{
		{ID: "h1", Type: model.TypeHeading, Label: "Welcome"},
		{ID: "q1", Type: model.TypeTextInput, Required: true},
		{ID: "q2", Type: model.TypeCheckboxes, Options: []string{"a", "b"}},
	})

	require.NoError(t, f.SetAnswer("q1", "hello"))
	require.NoError(t, f.SetAnswer("q2", []string{"b", "a"}))

	payload, err := f.Submit()
	require.NoError(t, err)
	assert.True(t, f.Submitted())

	// component order, content blocks skipped
	require.Len(t, payload, 2)
	assert.Equal(t, model.ResponseComponent{QuestionID: "q1", Answer: "hello"}, payload[0])
	assert.Equal(t, model.ResponseComponent{QuestionID: "q2", Answer: []string{"b", "a"}}, payload[1])
}

func TestSubmit_OmitsUnansweredOptional(t *testing.T) {
	f := New([]model.Component{
		{ID: "q1", Type: model.TypeTextInput, Required: true},
		{ID: "q2", Type: model.TypeTextarea},
	})
	require.NoError(t, f.SetAnswer("q1", "x"))

	payload, err := f.Submit()
	require.NoError(t, err)
	require.Len(t, payload, 1)
	assert.Equal(t, "q1", payload[0].QuestionID)
}

func TestSubmit_TerminalState(t *testing.T) {
	f := New([]model.Component{{ID: "q1", Type: model.TypeTextInput}})
	_, err := f.Submit()
	require.NoError(t, err)

	assert.ErrorIs(t, f.SetAnswer("q1", "late"), ErrAlreadySubmitted)
	_, err = f.Submit()
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSetAnswer_ClearsFieldError(t *testing.T) {
	f := New([]model.Component{{ID: "q1", Type: model.TypeTextInput, Required: true}})

	_, err := f.Submit()
	require.Error(t, err)
	require.NotEmpty(t, f.Error("q1"))

	require.NoError(t, f.SetAnswer("q1", "fixed"))
	assert.Empty(t, f.Error("q1"))

	payload, err := f.Submit()
	require.NoError(t, err)
	assert.Len(t, payload, 1)
}

func TestSubmittable_Live(t *testing.T) {
	f := New([]model.Component{
		{ID: "q1", Type: model.TypeTextInput, Required: true},
	})

	assert.False(t, f.Submittable())
	f.SetAnswer("q1", "x")
	assert.True(t, f.Submittable())
	f.SetAnswer("q1", "")
	assert.False(t, f.Submittable())
}

func TestSubmittable_ContentOnlySurvey(t *testing.T) {
	f := New([]model.Component{
		{ID: "h1", Type: model.TypeHeading},
		{ID: "p1", Type: model.TypeParagraph},
	})

	assert.True(t, f.Submittable())
	payload, err := f.Submit()
	require.NoError(t, err)
	assert.Empty(t, payload)
	assert.True(t, f.Submitted())
}

func TestSubmit_UsesQuestionKey(t *testing.T) {
	f := New([]model.Component{
		{ID: "comp-1", QuestionID: "q-custom", Type: model.TypeTextInput},
	})
	require.NoError(t, f.SetAnswer("comp-1", "v"))

	payload, err := f.Submit()
	require.NoError(t, err)
	require.Len(t, payload, 1)
	assert.Equal(t, "q-custom", payload[0].QuestionID)
}
