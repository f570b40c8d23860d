package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/surveyforge/surveyforge/model"
)

func fptr(f float64) *float64 { return &f }

func TestField_Required(t *testing.T) {
	c := model.Component{ID: "q1", Type: model.TypeTextInput, Required: true}

	tests := []struct {
		name   string
		answer any
		want   string
	}{
		{"nil answer", nil, RequiredMessage},
		{"empty string", "", RequiredMessage},
		{"empty slice", []string{}, RequiredMessage},
		{"answered", "hello", ""},
		{"non-empty slice", []string{"a"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Field(c, tt.answer))
		})
	}
}

func TestField_Email(t *testing.T) {
	c := model.Component{ID: "q1", Type: model.TypeEmail}

	assert.Empty(t, Field(c, "a@b.com"))
	assert.Equal(t, "Please enter a valid email address", Field(c, "not-an-email"))
	// optional and unanswered passes
	assert.Empty(t, Field(c, ""))

	c.Required = true
	assert.Equal(t, RequiredMessage, Field(c, ""))
}

func TestField_NumberBounds(t *testing.T) {
	c := model.Component{
		ID:   "q1",
		Type: model.TypeNumber,
		Min:  fptr(5),
		Max:  fptr(10),
	}

	tests := []struct {
		answer any
		want   string
	}{
		{"4", "Minimum value is 5"},
		{"11", "Maximum value is 10"},
		{"5", ""},
		{"10", ""},
		{float64(4), "Minimum value is 5"},
		{float64(7), ""},
		{"abc", "Please enter a valid number"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Field(c, tt.answer), "answer %v", tt.answer)
	}
}

func TestField_TextValidation(t *testing.T) {
	tests := []struct {
		validation model.TextValidation
		answer     string
		wantErr    bool
	}{
		{model.ValidationEmail, "a@b.com", false},
		{model.ValidationEmail, "nope", true},
		{model.ValidationPhone, "+1 555 123456", false},
		{model.ValidationPhone, "letters", true},
		{model.ValidationNumber, "42.5", false},
		{model.ValidationNumber, "fourty", true},
		{model.ValidationURL, "https://example.com/x", false},
		{model.ValidationURL, "example dot com", true},
		{model.ValidationNone, "anything", false},
	}
	for _, tt := range tests {
		c := model.Component{ID: "q1", Type: model.TypeTextInput, Validation: tt.validation}
		msg := Field(c, tt.answer)
		if tt.wantErr {
			assert.NotEmpty(t, msg, "%s %q", tt.validation, tt.answer)
		} else {
			assert.Empty(t, msg, "%s %q", tt.validation, tt.answer)
		}
	}
}

func TestField_CustomPattern(t *testing.T) {
	c := model.Component{
		ID:      "q1",
		Type:    model.TypeTextInput,
		Pattern: `^[A-Z]{3}-\d{4}$`,
	}

	assert.Empty(t, Field(c, "ABC-1234"))
	assert.Equal(t, "Invalid format", Field(c, "abc"))

	c.Message = "Use the format ABC-1234"
	assert.Equal(t, "Use the format ABC-1234", Field(c, "abc"))
}

func TestField_ContentBlocksSkipped(t *testing.T) {
	for _, typ := range []model.ComponentType{
		model.TypeHeading, model.TypeParagraph, model.TypeDivider, model.TypeImage,
	} {
		c := model.Component{ID: "c1", Type: typ, Required: true}
		assert.Empty(t, Field(c, nil), "type %s", typ)
	}
}

func TestField_Deterministic(t *testing.T) {
	c := model.Component{ID: "q1", Type: model.TypeEmail, Required: true}
	first := Field(c, "not-an-email")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Field(c, "not-an-email"))
	}
}

func TestSubmittable(t *testing.T) {
	components := []model.Component{
		{ID: "q1", Type: model.TypeTextInput, Required: true},
		{ID: "q2", Type: model.TypeCheckboxes, Required: true, Options: []string{"a", "b"}},
		{ID: "q3", Type: model.TypeTextarea}, // optional
		{ID: "h1", Type: model.TypeHeading, Required: true},
	}

	assert.False(t, Submittable(components, map[string]any{}))
	assert.False(t, Submittable(components, map[string]any{"q1": "x"}))
	assert.False(t, Submittable(components, map[string]any{"q1": "x", "q2": []string{}}))
	assert.True(t, Submittable(components, map[string]any{"q1": "x", "q2": []string{"a"}}))

	// format violations do not gate submittability, only emptiness does
	bad := []model.Component{{ID: "e", Type: model.TypeEmail, Required: true}}
	assert.True(t, Submittable(bad, map[string]any{"e": "not-an-email"}))
}

func TestSubmittable_Vacuous(t *testing.T) {
	// no required answerable components at all
	assert.True(t, Submittable(nil, nil))
	assert.True(t, Submittable([]model.Component{
		{ID: "h", Type: model.TypeHeading},
		{ID: "d", Type: model.TypeDivider},
	}, map[string]any{}))
}

func TestAll(t *testing.T) {
	components := []model.Component{
		{ID: "q1", Type: model.TypeTextInput, Required: true},
		{ID: "q2", Type: model.TypeEmail},
		{ID: "h1", Type: model.TypeHeading},
	}
	answers := map[string]any{"q2": "broken"}

	errs := All(components, answers)
	assert.Len(t, errs, 2)
	assert.Equal(t, RequiredMessage, errs["q1"])
	assert.NotEmpty(t, errs["q2"])

	answers = map[string]any{"q1": "ok", "q2": "a@b.com"}
	assert.Empty(t, All(components, answers))
}
