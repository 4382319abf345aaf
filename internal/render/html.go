package render

import (
	"html/template"
	"io"
)

var listTmpl = template.Must(template.New("list").Parse(`{{- if .Empty -}}
<div class="empty-state">{{ .EmptyText }}</div>
<ul id="checklist" style="display: none"></ul>
{{- else -}}
<ul id="checklist">
{{- range .Rows }}
  <li class="checklist-item{{ if .Completed }} completed{{ end }}" data-id="{{ .ID }}">
    <input type="checkbox" class="checkbox"{{ if .Completed }} checked{{ end }}>
    {{- if .Editing }}
    <input type="text" class="edit-input" value="{{ .Draft }}">
    <div class="item-controls">
      <button class="edit-btn cancel-btn">Cancel</button>
      <button class="edit-btn save-btn">Save</button>
    </div>
    {{- else }}
    <span class="item-text">{{ .Text }}</span>
    <div class="item-controls">
      <button class="edit-btn">Edit</button>
      <button class="delete-btn">Delete</button>
    </div>
    {{- end }}
  </li>
{{- end }}
</ul>
{{- end }}
{{- if .ShareURL }}
<input type="text" id="share-link" readonly value="{{ .ShareURL }}">
{{- end }}
`))

// HTML writes m as the checklist markup. Item text is escaped.
func HTML(w io.Writer, m Model) error {
	return listTmpl.Execute(w, m)
}
