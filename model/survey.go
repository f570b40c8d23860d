package model

import "fmt"

// Status is a survey's lifecycle phase. Transitions are one-way:
// drafted -> live -> completed.
type Status string

const (
	StatusDrafted   Status = "drafted"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDrafted, StatusLive, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
// Staying put is always allowed; going backwards never is.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusDrafted:
		return next == StatusLive
	case StatusLive:
		return next == StatusCompleted
	}
	return false
}

// Editable reports whether the component list may still change.
func (s Status) Editable() bool {
	return s == StatusDrafted
}

// AcceptingResponses reports whether respondents may still submit.
func (s Status) AcceptingResponses() bool {
	return s == StatusLive
}

type Survey struct {
	ID           int         `json:"id,omitempty"`
	UserID       int         `json:"user,omitempty"`
	Version      int         `json:"version,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Status       Status      `json:"status"`
	AuthRequired bool        `json:"authRequired"`
	Components   []Component `json:"components"`
}

// Validate checks the survey's own shape, not respondent answers.
func (s Survey) Validate() error {
	if !s.Status.Valid() {
		return fmt.Errorf("unknown status %q", s.Status)
	}
	seen := make(map[string]bool, len(s.Components))
	for i, c := range s.Components {
		if c.ID == "" {
			return fmt.Errorf("component %d: missing id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("component %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true
		if !KnownType(c.Type) {
			return fmt.Errorf("component %q: unknown type %q", c.ID, c.Type)
		}
		if ChoiceBearing(c.Type) && len(c.Options) == 0 {
			return fmt.Errorf("component %q: type %s requires options", c.ID, c.Type)
		}
	}
	return nil
}
