package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	subjectNewLead         = "Novo contacto recebido"
	subjectStageChangedFmt = "Contacto %s mudou de fase"
	subjectTaskReminderFmt = "Lembrete: %s"
)

// NewLeadData feeds the new-lead template.
type NewLeadData struct {
	LeadID   string
	LeadName string
	Source   string
	LeadURL  string
}

// StageChangedData feeds the stage-change template.
type StageChangedData struct {
	LeadID    string
	LeadName  string
	OldStatus string
	NewStatus string
	LeadURL   string
}

// TaskReminderData feeds the task-reminder template.
type TaskReminderData struct {
	Title string
	DueAt string
}

var templates = template.Must(template.New("email").Parse(`
{{define "layout_top"}}<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#1f2933;margin:0;padding:24px;background:#f5f6f8">
<div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px">{{end}}

{{define "layout_bottom"}}</div>
</body>
</html>{{end}}

{{define "new_lead"}}{{template "layout_top"}}
<h2>Novo contacto</h2>
<p><strong>{{.LeadName}}</strong> acabou de entrar no funil{{if .Source}} via {{.Source}}{{end}}.</p>
<p><a href="{{.LeadURL}}" style="color:#1d4ed8">Abrir ficha do contacto</a></p>
{{template "layout_bottom"}}{{end}}

{{define "stage_changed"}}{{template "layout_top"}}
<h2>Mudança de fase</h2>
<p><strong>{{.LeadName}}</strong> passou de <strong>{{.OldStatus}}</strong> para <strong>{{.NewStatus}}</strong>.</p>
<p><a href="{{.LeadURL}}" style="color:#1d4ed8">Abrir ficha do contacto</a></p>
{{template "layout_bottom"}}{{end}}

{{define "task_reminder"}}{{template "layout_top"}}
<h2>Lembrete de tarefa</h2>
<p><strong>{{.Title}}</strong> está agendada para {{.DueAt}}.</p>
{{template "layout_bottom"}}{{end}}
`))

func renderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
