// Package renderer maps components to HTML form controls. Dispatch is a
// closed switch over the component type set; an unknown type is an error,
// never a silently skipped block.
package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/surveyforge/surveyforge/model"
)

// fieldContext is what every control template sees.
type fieldContext struct {
	C     model.Component
	Value any
	Error string
}

var funcs = template.FuncMap{
	"seq": func(from, to int) []int {
		if to < from {
			return nil
		}
		out := make([]int, 0, to-from+1)
		for i := from; i <= to; i++ {
			out = append(out, i)
		}
		return out
	},
	"selected": func(value any, option string) bool {
		switch v := value.(type) {
		case string:
			return v == option
		case []string:
			for _, s := range v {
				if s == option {
					return true
				}
			}
		case []any:
			for _, s := range v {
				if s == option {
					return true
				}
			}
		}
		return false
	},
	"matrixPick": func(value any, row string) string {
		switch v := value.(type) {
		case map[string]string:
			return v[row]
		case map[string]any:
			if s, ok := v[row].(string); ok {
				return s
			}
		}
		return ""
	},
	"intOr": func(p *float64, fallback int) int {
		if p == nil {
			return fallback
		}
		return int(*p)
	},
	"bound": func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	},
	"answerText": model.AnswerText,
}

var fieldTemplates = template.Must(template.New("fields").Funcs(funcs).Parse(fieldTemplateText))

// controlTemplate names the sub-template for each component type. The
// switch is exhaustive over the closed type set.
func controlTemplate(t model.ComponentType) (string, error) {
	switch t {
	case model.TypeTextInput:
		return "text-input", nil
	case model.TypeEmail:
		return "email", nil
	case model.TypePhone:
		return "phone", nil
	case model.TypeNumber:
		return "number", nil
	case model.TypeTextarea:
		return "textarea", nil
	case model.TypeMultipleChoice:
		return "multiple-choice", nil
	case model.TypeCheckboxes:
		return "checkboxes", nil
	case model.TypeDropdown:
		return "dropdown", nil
	case model.TypeStarRating:
		return "star-rating", nil
	case model.TypeScale:
		return "scale", nil
	case model.TypeNPS:
		return "nps", nil
	case model.TypeDate:
		return "date", nil
	case model.TypeTime:
		return "time", nil
	case model.TypeYesNo:
		return "yes-no", nil
	case model.TypeEmoji:
		return "emoji", nil
	case model.TypeFileUpload:
		return "file-upload", nil
	case model.TypeMatrix:
		return "matrix", nil
	case model.TypeRanking:
		return "ranking", nil
	case model.TypeHeading:
		return "heading", nil
	case model.TypeParagraph:
		return "paragraph", nil
	case model.TypeDivider:
		return "divider", nil
	case model.TypeImage:
		return "image", nil
	default:
		return "", fmt.Errorf("no renderer for component type %q", t)
	}
}

// Field renders one component with its current value and inline error.
func Field(c model.Component, value any, errMsg string) (template.HTML, error) {
	name, err := controlTemplate(c.Type)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = fieldTemplates.ExecuteTemplate(&buf, name, fieldContext{C: c, Value: value, Error: errMsg})
	if err != nil {
		return "", fmt.Errorf("render %s %q: %w", c.Type, c.ID, err)
	}
	return template.HTML(buf.String()), nil
}

type pageContext struct {
	Survey model.Survey
	Fields []template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateText))

// Page renders the full respondent form for a survey. answers and errs may
// be nil for a blank form.
func Page(survey model.Survey, answers map[string]any, errs map[string]string) ([]byte, error) {
	fields := make([]template.HTML, 0, len(survey.Components))
	for _, c := range survey.Components {
		html, err := Field(c, answers[c.ID], errs[c.ID])
		if err != nil {
			return nil, err
		}
		fields = append(fields, html)
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageContext{Survey: survey, Fields: fields})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
