package renderer

// Shared label/description/error wrapper plus one control template per
// component type. Control markup mirrors the builder's preview surface.
const fieldTemplateText = `
{{define "head"}}
<label class="field-label" for="{{.C.ID}}">{{.C.Label}}{{if .C.Required}}<span class="required">*</span>{{end}}</label>
{{if .C.Description}}<p class="field-description">{{.C.Description}}</p>{{end}}
{{end}}

{{define "foot"}}
{{if .Error}}<p class="field-error">{{.Error}}</p>{{end}}
{{end}}

{{define "text-input"}}
<div class="field" data-type="text-input">
{{template "head" .}}
<input type="text" id="{{.C.ID}}" name="{{.C.ID}}" value="{{answerText .Value}}" placeholder="{{.C.Placeholder}}">
{{template "foot" .}}
</div>
{{end}}

{{define "email"}}
<div class="field" data-type="email">
{{template "head" .}}
<input type="email" id="{{.C.ID}}" name="{{.C.ID}}" value="{{answerText .Value}}" placeholder="{{.C.Placeholder}}">
{{template "foot" .}}
</div>
{{end}}

{{define "phone"}}
<div class="field" data-type="phone">
{{template "head" .}}
<input type="tel" id="{{.C.ID}}" name="{{.C.ID}}" value="{{answerText .Value}}" placeholder="{{.C.Placeholder}}">
{{template "foot" .}}
</div>
{{end}}

{{define "number"}}
<div class="field" data-type="number">
{{template "head" .}}
<input type="number" id="{{.C.ID}}" name="{{.C.ID}}" value="{{answerText .Value}}" placeholder="{{.C.Placeholder}}"{{if .C.Min}} min="{{bound .C.Min}}"{{end}}{{if .C.Max}} max="{{bound .C.Max}}"{{end}}>
{{template "foot" .}}
</div>
{{end}}

{{define "textarea"}}
<div class="field" data-type="textarea">
{{template "head" .}}
<textarea id="{{.C.ID}}" name="{{.C.ID}}" rows="4" placeholder="{{.C.Placeholder}}">{{answerText .Value}}</textarea>
{{template "foot" .}}
</div>
{{end}}

{{define "multiple-choice"}}
<div class="field" data-type="multiple-choice">
{{template "head" .}}
{{$ctx := .}}
{{range .C.Options}}
<label class="option"><input type="radio" name="{{$ctx.C.ID}}" value="{{.}}"{{if selected $ctx.Value .}} checked{{end}}> {{.}}</label>
{{end}}
{{template "foot" .}}
</div>
{{end}}

{{define "checkboxes"}}
<div class="field" data-type="checkboxes">
{{template "head" .}}
{{$ctx := .}}
{{range .C.Options}}
<label class="option"><input type="checkbox" name="{{$ctx.C.ID}}" value="{{.}}"{{if selected $ctx.Value .}} checked{{end}}> {{.}}</label>
{{end}}
{{template "foot" .}}
</div>
{{end}}

{{define "dropdown"}}
<div class="field" data-type="dropdown">
{{template "head" .}}
{{$ctx := .}}
<select id="{{.C.ID}}" name="{{.C.ID}}">
<option value="">Select an option...</option>
{{range .C.Options}}
<option value="{{.}}"{{if selected $ctx.Value .}} selected{{end}}>{{.}}</option>
{{end}}
</select>
{{template "foot" .}}
</div>
{{end}}

{{define "star-rating"}}
<div class="field" data-type="star-rating">
{{template "head" .}}
{{$ctx := .}}
<div class="stars">
{{range seq 1 (intOr .C.Max 5)}}
<label class="star"><input type="radio" name="{{$ctx.C.ID}}" value="{{.}}"{{if eq (answerText $ctx.Value) (printf "%d" .)}} checked{{end}}>&#9733;</label>
{{end}}
</div>
{{template "foot" .}}
</div>
{{end}}

{{define "scale"}}
<div class="field" data-type="scale">
{{template "head" .}}
{{$ctx := .}}
<div class="scale">
{{range seq (intOr .C.Min 1) (intOr .C.Max 10)}}
<label class="scale-step"><input type="radio" name="{{$ctx.C.ID}}" value="{{.}}"{{if eq (answerText $ctx.Value) (printf "%d" .)}} checked{{end}}>{{.}}</label>
{{end}}
</div>
{{template "foot" .}}
</div>
{{end}}

{{define "nps"}}
<div class="field" data-type="nps">
{{template "head" .}}
{{$ctx := .}}
<div class="nps">
{{range seq 0 10}}
<label class="nps-step"><input type="radio" name="{{$ctx.C.ID}}" value="{{.}}"{{if eq (answerText $ctx.Value) (printf "%d" .)}} checked{{end}}>{{.}}</label>
{{end}}
</div>
<div class="nps-legend"><span>Not likely</span><span>Very likely</span></div>
{{template "foot" .}}
</div>
{{end}}

{{define "date"}}
<div class="field" data-type="date">
{{template "head" .}}
<input type="date" id="{{.C.ID}}" name="{{.C.ID}}" value="{{answerText .Value}}">
{{template "foot" .}}
</div>
{{end}}

{{define "time"}}
<div class="field" data-type="time">
{{template "head" .}}
<input type="time" id="{{.C.ID}}" name="{{.C.ID}}" value="{{answerText .Value}}">
{{template "foot" .}}
</div>
{{end}}

{{define "yes-no"}}
<div class="field" data-type="yes-no">
{{template "head" .}}
{{$ctx := .}}
<label class="option"><input type="radio" name="{{.C.ID}}" value="Yes"{{if selected $ctx.Value "Yes"}} checked{{end}}> Yes</label>
<label class="option"><input type="radio" name="{{.C.ID}}" value="No"{{if selected $ctx.Value "No"}} checked{{end}}> No</label>
{{template "foot" .}}
</div>
{{end}}

{{define "emoji"}}
<div class="field" data-type="emoji">
{{template "head" .}}
{{$ctx := .}}
<div class="emoji-row">
{{range $i, $e := .C.Options}}
<label class="emoji"><input type="radio" name="{{$ctx.C.ID}}" value="{{$e}}"{{if selected $ctx.Value $e}} checked{{end}}>{{$e}}</label>
{{end}}
</div>
{{template "foot" .}}
</div>
{{end}}

{{define "file-upload"}}
<div class="field" data-type="file-upload">
{{template "head" .}}
<input type="file" id="{{.C.ID}}" name="{{.C.ID}}">
{{template "foot" .}}
</div>
{{end}}

{{define "matrix"}}
<div class="field" data-type="matrix">
{{template "head" .}}
{{$ctx := .}}
<table class="matrix">
<tr><th></th>{{range .C.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range $row := .C.Rows}}
<tr><th>{{$row}}</th>
{{range $col := $ctx.C.Columns}}
<td><input type="radio" name="{{$ctx.C.ID}}.{{$row}}" value="{{$col}}"{{if eq (matrixPick $ctx.Value $row) $col}} checked{{end}}></td>
{{end}}
</tr>
{{end}}
</table>
{{template "foot" .}}
</div>
{{end}}

{{define "ranking"}}
<div class="field" data-type="ranking">
{{template "head" .}}
<ol class="ranking">
{{range .C.Options}}
<li draggable="true" data-value="{{.}}">{{.}}</li>
{{end}}
</ol>
<input type="hidden" id="{{.C.ID}}" name="{{.C.ID}}" value="{{answerText .Value}}">
{{template "foot" .}}
</div>
{{end}}

{{define "heading"}}
<h2 class="content heading">{{.C.Label}}</h2>
{{end}}

{{define "paragraph"}}
<p class="content paragraph">{{.C.Label}}</p>
{{end}}

{{define "divider"}}
<hr class="content divider">
{{end}}

{{define "image"}}
<figure class="content image">
<img src="{{.C.ImageURL}}" alt="{{.C.Label}}">
{{if .C.Label}}<figcaption>{{.C.Label}}</figcaption>{{end}}
</figure>
{{end}}
`

const pageTemplateText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Survey.Title}}</title>
</head>
<body>
<main class="survey">
<header>
<h1>{{.Survey.Title}}</h1>
{{if .Survey.Description}}<p class="survey-description">{{.Survey.Description}}</p>{{end}}
</header>
<form method="post" action="/api/surveys/{{.Survey.ID}}/responses">
{{range .Fields}}
{{.}}
{{end}}
<button type="submit">Submit Survey</button>
</form>
</main>
</body>
</html>
`
