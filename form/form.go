// Package form holds answer state for one respondent session: record
// answers as they change, gate the submit action on aggregate validity,
// and produce the final response payload exactly once.
package form

import (
	"errors"

	"github.com/surveyforge/surveyforge/model"
	"github.com/surveyforge/surveyforge/validate"
)

var ErrAlreadySubmitted = errors.New("form already submitted")

// Form is a single respondent session over a fixed component list.
// Not safe for concurrent use; one session per form instance.
type Form struct {
	components []model.Component
	answers    map[string]any
	fieldErrs  map[string]string
	submitted  bool
}

func New(components []model.Component) *Form {
	return &Form{
		components: components,
		answers:    make(map[string]any),
		fieldErrs:  make(map[string]string),
	}
}

// SetAnswer records a new value for the component and clears any stale
// error on it. No validation runs here; only Submit validates.
// Once submitted the session is terminal and edits are rejected.
func (f *Form) SetAnswer(id string, value any) error {
	if f.submitted {
		return ErrAlreadySubmitted
	}
	f.answers[id] = value
	delete(f.fieldErrs, id)
	return nil
}

// Answer returns the current value for a component id.
func (f *Form) Answer(id string) any {
	return f.answers[id]
}

// Error returns the current validation message for a component id,
// populated by a failed Submit.
func (f *Form) Error(id string) string {
	return f.fieldErrs[id]
}

// Errors returns all current field messages keyed by component id.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		out[k] = v
	}
	return out
}

// Submittable is recomputed from current answers on every call, so a
// caller can disable its submit action live.
func (f *Form) Submittable() bool {
	return validate.Submittable(f.components, f.answers)
}

func (f *Form) Submitted() bool {
	return f.submitted
}

// Submit validates every answerable component. On any failure the field
// messages are retained, no payload is produced and the session stays
// open. On success the session becomes terminal and the answers are
// returned as response components in component order, unanswered optional
// fields omitted.
func (f *Form) Submit() ([]model.ResponseComponent, error) {
	if f.submitted {
		return nil, ErrAlreadySubmitted
	}

	errs := validate.All(f.components, f.answers)
	if len(errs) > 0 {
		f.fieldErrs = errs
		return nil, ValidationError(errs)
	}

	var out []model.ResponseComponent
	for _, c := range f.components {
		if !model.Answerable(c.Type) {
			continue
		}
		value, ok := f.answers[c.ID]
		if !ok || model.EmptyAnswer(value) {
			continue
		}
		out = append(out, model.ResponseComponent{
			QuestionID: c.Key(),
			Answer:     value,
		})
	}

	f.submitted = true
	return out, nil
}

// ValidationError carries per-field messages out of a failed Submit.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	return "validation failed"
}
