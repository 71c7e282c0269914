package email

import (
	"bytes"
	"fmt"
	"html/template"

	"helpdesk/internal/domain/notification"
)

// Audience selects which variant of a notification template to render.
type Audience string

const (
	AudienceAdmin  Audience = "admin"
	AudienceClient Audience = "client"
)

// TemplateData carries everything the notification templates can reference.
// Optional fields left empty are replaced with display placeholders before
// rendering.
type TemplateData struct {
	TicketID    uint
	Subject     string
	Description string
	Priority    string
	Status      string
	ClientName  string
	Company     string
	AgentName   string
	ElapsedTime string
	Message     string
	ReturnCount int
	BaseURL     string
}

const (
	placeholderNotInformed = "Not informed"
	placeholderNA          = "N/A"
)

type templateKey struct {
	kind     notification.EventKind
	audience Audience
}

const baseLayout = `<html>
<body>
{{block "content" .}}{{end}}
<p><a href="{{.BaseURL}}/tickets/{{.TicketID}}">View ticket #{{.TicketID}}</a></p>
</body>
</html>`

var templateBodies = map[templateKey]string{
	{notification.EventTicketCreated, AudienceAdmin}: `{{define "content"}}
<h2>New ticket opened</h2>
<p>Ticket #{{.TicketID}}: <strong>{{.Subject}}</strong></p>
<p>Priority: {{.Priority}}</p>
<p>Opened by: {{.ClientName}} ({{.Company}})</p>
<p>{{.Description}}</p>
{{end}}`,

	{notification.EventTicketCreated, AudienceClient}: `{{define "content"}}
<h2>We received your ticket</h2>
<p>Your ticket #{{.TicketID}} <strong>{{.Subject}}</strong> was registered with priority {{.Priority}}.</p>
<p>Our team will start working on it shortly.</p>
{{end}}`,

	{notification.EventTicketConcluded, AudienceClient}: `{{define "content"}}
<h2>Your ticket was resolved</h2>
<p>Ticket #{{.TicketID}}: <strong>{{.Subject}}</strong></p>
<p>Status: {{.Status}}</p>
<p>Handled by: {{.AgentName}}</p>
<p>Service time: {{.ElapsedTime}}</p>
<p>{{.Message}}</p>
<p>Please confirm the resolution or return the ticket if the issue persists.</p>
{{end}}`,

	{notification.EventTicketReturned, AudienceAdmin}: `{{define "content"}}
<h2>Ticket returned by the client</h2>
<p>Ticket #{{.TicketID}}: <strong>{{.Subject}}</strong> (return {{.ReturnCount}})</p>
<p>Client: {{.ClientName}} ({{.Company}})</p>
<p>{{.Message}}</p>
{{end}}`,

	{notification.EventTicketReturned, AudienceClient}: `{{define "content"}}
<h2>Your ticket was reopened</h2>
<p>Ticket #{{.TicketID}}: <strong>{{.Subject}}</strong> is back in progress.</p>
<p>{{.Message}}</p>
{{end}}`,

	{notification.EventTicketFinalized, AudienceAdmin}: `{{define "content"}}
<h2>Ticket closed</h2>
<p>Ticket #{{.TicketID}}: <strong>{{.Subject}}</strong> was confirmed and finalized by {{.ClientName}}.</p>
<p>Handled by: {{.AgentName}}</p>
<p>Service time: {{.ElapsedTime}}</p>
{{end}}`,

	{notification.EventAgentFollowUp, AudienceClient}: `{{define "content"}}
<h2>Update on your ticket</h2>
<p>Ticket #{{.TicketID}}: <strong>{{.Subject}}</strong></p>
<p>{{.AgentName}} wrote:</p>
<p>{{.Message}}</p>
{{end}}`,

	{notification.EventInteractionMessage, AudienceAdmin}: `{{define "content"}}
<h2>New message on a ticket</h2>
<p>Ticket #{{.TicketID}}: <strong>{{.Subject}}</strong></p>
<p>{{.ClientName}} ({{.Company}}) wrote:</p>
<p>{{.Message}}</p>
{{end}}`,
}

var templateSubjects = map[templateKey]string{
	{notification.EventTicketCreated, AudienceAdmin}:      "[Helpdesk] New ticket #%d: %s",
	{notification.EventTicketCreated, AudienceClient}:     "[Helpdesk] Ticket #%d registered: %s",
	{notification.EventTicketConcluded, AudienceClient}:   "[Helpdesk] Ticket #%d resolved: %s",
	{notification.EventTicketReturned, AudienceAdmin}:     "[Helpdesk] Ticket #%d returned: %s",
	{notification.EventTicketReturned, AudienceClient}:    "[Helpdesk] Ticket #%d reopened: %s",
	{notification.EventTicketFinalized, AudienceAdmin}:    "[Helpdesk] Ticket #%d finalized: %s",
	{notification.EventAgentFollowUp, AudienceClient}:     "[Helpdesk] Update on ticket #%d: %s",
	{notification.EventInteractionMessage, AudienceAdmin}: "[Helpdesk] New message on ticket #%d: %s",
}

// Renderer produces notification subjects and HTML bodies. Rendering is pure:
// identical inputs yield byte-identical output, and all interpolated values
// are escaped by html/template.
type Renderer struct {
	templates map[templateKey]*template.Template
}

func NewRenderer() *Renderer {
	templates := make(map[templateKey]*template.Template, len(templateBodies))
	for key, body := range templateBodies {
		name := fmt.Sprintf("%s_%s", key.kind, key.audience)
		tmpl := template.Must(template.New(name).Parse(baseLayout))
		template.Must(tmpl.Parse(body))
		templates[key] = tmpl
	}
	return &Renderer{templates: templates}
}

// Audiences reports which audiences a given event kind renders for.
func (r *Renderer) Audiences(kind notification.EventKind) []Audience {
	var audiences []Audience
	for _, a := range []Audience{AudienceAdmin, AudienceClient} {
		if _, ok := r.templates[templateKey{kind, a}]; ok {
			audiences = append(audiences, a)
		}
	}
	return audiences
}

func (r *Renderer) Render(kind notification.EventKind, audience Audience, data TemplateData) (subject, htmlBody string, err error) {
	key := templateKey{kind, audience}
	tmpl, ok := r.templates[key]
	if !ok {
		return "", "", fmt.Errorf("no %s template for event %s", audience, kind)
	}

	subjectFormat, ok := templateSubjects[key]
	if !ok {
		return "", "", fmt.Errorf("no %s subject for event %s", audience, kind)
	}

	normalized := data
	if normalized.Company == "" {
		normalized.Company = placeholderNotInformed
	}
	if normalized.AgentName == "" {
		normalized.AgentName = placeholderNA
	}
	if normalized.ElapsedTime == "" {
		normalized.ElapsedTime = placeholderNA
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, normalized); err != nil {
		return "", "", fmt.Errorf("failed to render %s template for event %s: %w", audience, kind, err)
	}

	return fmt.Sprintf(subjectFormat, normalized.TicketID, normalized.Subject), buf.String(), nil
}
