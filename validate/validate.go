// Package validate decides whether a candidate answer satisfies a
// component's rules. Everything here is pure: same component and answer in,
// same message out, no side effects.
package validate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/surveyforge/surveyforge/model"
)

const RequiredMessage = "This field is required"

var (
	reEmail  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rePhone  = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,}$`)
	reNumber = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
	reURL    = regexp.MustCompile(`^https?://\S+$`)
)

// Field checks one component against its current answer and returns a
// user-facing message, or "" when the answer is acceptable. Content blocks
// (heading, paragraph, divider, image) are never validated.
func Field(c model.Component, answer any) string {
	if !model.Answerable(c.Type) {
		return ""
	}

	if c.Required && model.EmptyAnswer(answer) {
		return RequiredMessage
	}
	if model.EmptyAnswer(answer) {
		// optional and unanswered: nothing further to check
		return ""
	}

	if c.Type == model.TypeEmail {
		if s, ok := answer.(string); !ok || !reEmail.MatchString(s) {
			return "Please enter a valid email address"
		}
	}

	if c.Type == model.TypeNumber {
		n, err := toNumber(answer)
		if err != nil {
			return "Please enter a valid number"
		}
		if c.Min != nil && n < *c.Min {
			return fmt.Sprintf("Minimum value is %s", trimFloat(*c.Min))
		}
		if c.Max != nil && n > *c.Max {
			return fmt.Sprintf("Maximum value is %s", trimFloat(*c.Max))
		}
	}

	if msg := formatCheck(c, answer); msg != "" {
		return msg
	}

	if c.Pattern != "" {
		re, err := regexp.Compile(c.Pattern)
		if err == nil && !re.MatchString(model.AnswerText(answer)) {
			if c.Message != "" {
				return c.Message
			}
			return "Invalid format"
		}
	}

	return ""
}

// formatCheck applies the component's declared TextValidation to free-text
// answers. Unknown or "none" validations pass.
func formatCheck(c model.Component, answer any) string {
	s, ok := answer.(string)
	if !ok {
		return ""
	}

	switch c.Validation {
	case model.ValidationEmail:
		if !reEmail.MatchString(s) {
			return "Please enter a valid email address"
		}
	case model.ValidationPhone:
		if !rePhone.MatchString(s) {
			return "Please enter a valid phone number"
		}
	case model.ValidationNumber:
		if !reNumber.MatchString(s) {
			return "Please enter a valid number"
		}
	case model.ValidationURL:
		if !reURL.MatchString(s) {
			return "Please enter a valid URL"
		}
	}
	return ""
}

// All validates every answerable component and returns messages keyed by
// component id. An empty map means the answer set passes.
func All(components []model.Component, answers map[string]any) map[string]string {
	errs := make(map[string]string)
	for _, c := range components {
		if !model.Answerable(c.Type) {
			continue
		}
		if msg := Field(c, answers[c.ID]); msg != "" {
			errs[c.ID] = msg
		}
	}
	return errs
}

// Submittable reports aggregate submittability: every required answerable
// component has a non-empty answer. Format rules are deliberately not
// consulted here; they only gate the actual submit. A survey with no
// required answerable components is vacuously submittable.
func Submittable(components []model.Component, answers map[string]any) bool {
	for _, c := range components {
		if !c.Required || !model.Answerable(c.Type) {
			continue
		}
		if model.EmptyAnswer(answers[c.ID]) {
			return false
		}
	}
	return true
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

// trimFloat formats bounds the way they were authored: 5 not 5.000000.
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
