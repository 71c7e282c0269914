package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/notification"
)

func testTemplateData() TemplateData {
	return TemplateData{
		TicketID:    12,
		Subject:     "printer offline",
		Description: "the office printer stopped responding",
		Priority:    "High",
		Status:      "In Progress",
		ClientName:  "alice",
		Company:     "Acme",
		AgentName:   "bob",
		ElapsedTime: "1h 30m",
		Message:     "replaced the toner",
		ReturnCount: 1,
		BaseURL:     "http://localhost:8080",
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	subject, body, err := r.Render(notification.EventTicketCreated, AudienceAdmin, testTemplateData())
	require.NoError(t, err)

	assert.Equal(t, "[Helpdesk] New ticket #12: printer offline", subject)
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "http://localhost:8080/tickets/12")
}

func TestRenderer_ConcludedBodyShowsStatus(t *testing.T) {
	r := NewRenderer()
	data := testTemplateData()
	data.Status = "Awaiting Confirmation"

	_, body, err := r.Render(notification.EventTicketConcluded, AudienceClient, data)
	require.NoError(t, err)

	assert.Contains(t, body, "Awaiting Confirmation")
	assert.Contains(t, body, "bob")
	assert.Contains(t, body, "1h 30m")
}

func TestRenderer_RenderIsPure(t *testing.T) {
	r := NewRenderer()
	data := testTemplateData()

	for _, kind := range []notification.EventKind{
		notification.EventTicketCreated,
		notification.EventTicketConcluded,
		notification.EventTicketReturned,
		notification.EventTicketFinalized,
		notification.EventAgentFollowUp,
		notification.EventInteractionMessage,
	} {
		for _, audience := range r.Audiences(kind) {
			subject1, body1, err := r.Render(kind, audience, data)
			require.NoError(t, err)
			subject2, body2, err := r.Render(kind, audience, data)
			require.NoError(t, err)

			assert.Equal(t, subject1, subject2)
			assert.Equal(t, body1, body2)
		}
	}
}

func TestRenderer_EscapesInterpolatedValues(t *testing.T) {
	r := NewRenderer()
	data := testTemplateData()
	data.Subject = `<script>alert("x")</script>`
	data.Message = `<img src=x onerror=alert(1)>`

	_, body, err := r.Render(notification.EventTicketConcluded, AudienceClient, data)
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderer_PlaceholdersForMissingFields(t *testing.T) {
	r := NewRenderer()
	data := testTemplateData()
	data.Company = ""
	data.AgentName = ""
	data.ElapsedTime = ""

	_, body, err := r.Render(notification.EventTicketCreated, AudienceAdmin, data)
	require.NoError(t, err)
	assert.Contains(t, body, "Not informed")

	_, body, err = r.Render(notification.EventTicketConcluded, AudienceClient, data)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(body, "N/A"), "agent and elapsed time both degrade to N/A")
}

func TestRenderer_UnknownVariant(t *testing.T) {
	r := NewRenderer()

	_, _, err := r.Render(notification.EventTicketConcluded, AudienceAdmin, testTemplateData())
	assert.Error(t, err, "concluded has no admin variant")
}

func TestRenderer_Audiences(t *testing.T) {
	r := NewRenderer()

	assert.ElementsMatch(t,
		[]Audience{AudienceAdmin, AudienceClient},
		r.Audiences(notification.EventTicketCreated))
	assert.ElementsMatch(t,
		[]Audience{AudienceClient},
		r.Audiences(notification.EventTicketConcluded))
	assert.ElementsMatch(t,
		[]Audience{AudienceAdmin},
		r.Audiences(notification.EventTicketFinalized))
}
