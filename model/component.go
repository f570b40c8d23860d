package model

// ComponentType is the closed set of survey field and content block kinds.
// Adding a kind means touching the validator, the renderer and the builder
// defaults too; every switch over ComponentType ends in a default that
// reports the unknown value instead of guessing.
type ComponentType string

const (
	TypeTextInput      ComponentType = "text-input"
	TypeEmail          ComponentType = "email"
	TypePhone          ComponentType = "phone"
	TypeNumber         ComponentType = "number"
	TypeTextarea       ComponentType = "textarea"
	TypeMultipleChoice ComponentType = "multiple-choice"
	TypeCheckboxes     ComponentType = "checkboxes"
	TypeDropdown       ComponentType = "dropdown"
	TypeStarRating     ComponentType = "star-rating"
	TypeScale          ComponentType = "scale"
	TypeNPS            ComponentType = "nps"
	TypeDate           ComponentType = "date"
	TypeTime           ComponentType = "time"
	TypeYesNo          ComponentType = "yes-no"
	TypeEmoji          ComponentType = "emoji"
	TypeFileUpload     ComponentType = "file-upload"
	TypeMatrix         ComponentType = "matrix"
	TypeRanking        ComponentType = "ranking"
	TypeHeading        ComponentType = "heading"
	TypeParagraph      ComponentType = "paragraph"
	TypeDivider        ComponentType = "divider"
	TypeImage          ComponentType = "image"
)

// TextValidation selects an extra format check on free-text answers.
type TextValidation string

const (
	ValidationNone   TextValidation = "none"
	ValidationEmail  TextValidation = "email"
	ValidationPhone  TextValidation = "phone"
	ValidationNumber TextValidation = "number"
	ValidationURL    TextValidation = "url"
)

// Component is one survey question or content block.
// ID and Type are immutable after creation: changing a component's type
// invalidates its options/min/max semantics, so the builder models that as
// delete+recreate.
type Component struct {
	ID          string         `json:"id"`
	Type        ComponentType  `json:"type"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Required    bool           `json:"required"`
	Placeholder string         `json:"placeholder,omitempty"`
	Min         *float64       `json:"min,omitempty"`
	Max         *float64       `json:"max,omitempty"`
	Options     []string       `json:"options,omitempty"`
	Rows        []string       `json:"rows,omitempty"`
	Columns     []string       `json:"columns,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Validation  TextValidation `json:"validation,omitempty"`

	// Pattern/Message allow a custom regex check beyond Validation.
	Pattern string `json:"pattern,omitempty"`
	Message string `json:"message,omitempty"`

	// QuestionID overrides ID as the key responses are recorded under.
	// Usually empty; analytics falls back to ID.
	QuestionID string `json:"questionId,omitempty"`
}

// Key is the identifier answers are recorded under.
func (c Component) Key() string {
	if c.QuestionID != "" {
		return c.QuestionID
	}
	return c.ID
}

// DisplayLabel is the label analytics and renderers show for the component.
func (c Component) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return "Untitled question"
}

// Answerable reports whether the type collects an answer at all.
// Content blocks never do.
func Answerable(t ComponentType) bool {
	switch t {
	case TypeHeading, TypeParagraph, TypeDivider, TypeImage:
		return false
	default:
		return true
	}
}

// ChoiceBearing reports whether the type carries an options list the
// builder must seed with defaults.
func ChoiceBearing(t ComponentType) bool {
	switch t {
	case TypeMultipleChoice, TypeCheckboxes, TypeDropdown:
		return true
	default:
		return false
	}
}

// KnownType reports whether t is a member of the closed type set.
func KnownType(t ComponentType) bool {
	_, ok := paletteNames[t]
	return ok
}

// paletteNames maps every type to its palette display name. Doubles as the
// registry of known types.
var paletteNames = map[ComponentType]string{
	TypeTextInput:      "Text Input",
	TypeTextarea:       "Text Area",
	TypeNumber:         "Number",
	TypeEmail:          "Email",
	TypePhone:          "Phone",
	TypeMultipleChoice: "Multiple Choice",
	TypeCheckboxes:     "Checkboxes",
	TypeDropdown:       "Dropdown",
	TypeYesNo:          "Yes/No",
	TypeStarRating:     "Star Rating",
	TypeScale:          "Scale",
	TypeNPS:            "NPS Score",
	TypeEmoji:          "Emoji Rating",
	TypeDate:           "Date Picker",
	TypeTime:           "Time Picker",
	TypeFileUpload:     "File Upload",
	TypeMatrix:         "Matrix",
	TypeRanking:        "Ranking",
	TypeHeading:        "Heading",
	TypeParagraph:      "Paragraph",
	TypeDivider:        "Divider",
	TypeImage:          "Image",
}

// PaletteName returns the display name a freshly dropped component's label
// derives from ("{name} Question"). ok is false for unknown types.
func PaletteName(t ComponentType) (name string, ok bool) {
	name, ok = paletteNames[t]
	return
}
