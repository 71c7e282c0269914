package notification

import (
	"time"

	"helpdesk/internal/shared/biztime"
)

// bodyPrefixLen bounds how much of a message body the audit trail keeps.
const bodyPrefixLen = 200

// DeliveryDetails is the structured diagnostic payload stored alongside an
// audit row. ErrorChain lists the wrapped errors outermost-first.
type DeliveryDetails struct {
	Status     string   `json:"status"`
	ErrorChain []string `json:"error_chain,omitempty"`
}

// DeliveryRecord is the audit row written after every terminal delivery
// attempt, shown on the ticket detail page for agents.
type DeliveryRecord struct {
	ID         uint
	Recipient  string
	Subject    string
	BodyPrefix string
	TicketID   *uint
	Kind       EventKind
	Success    bool
	Simulated  bool
	Attempts   int
	ErrorText  string
	Details    *DeliveryDetails
	CreatedAt  time.Time
}

// NewDeliveryRecord builds an audit row from a terminal delivery outcome.
func NewDeliveryRecord(
	recipient string,
	subject string,
	body string,
	ticketID *uint,
	kind EventKind,
	success bool,
	simulated bool,
	attempts int,
	errorText string,
	details *DeliveryDetails,
) *DeliveryRecord {
	prefix := body
	if len(prefix) > bodyPrefixLen {
		prefix = prefix[:bodyPrefixLen]
	}

	return &DeliveryRecord{
		Recipient:  recipient,
		Subject:    subject,
		BodyPrefix: prefix,
		TicketID:   ticketID,
		Kind:       kind,
		Success:    success,
		Simulated:  simulated,
		Attempts:   attempts,
		ErrorText:  errorText,
		Details:    details,
		CreatedAt:  biztime.NowUTC(),
	}
}
