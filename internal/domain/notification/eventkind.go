package notification

import "fmt"

// EventKind names a ticket lifecycle event that produces notifications.
type EventKind string

const (
	EventTicketCreated      EventKind = "ticket_created"
	EventTicketConcluded    EventKind = "ticket_concluded"
	EventTicketReturned     EventKind = "ticket_returned"
	EventTicketFinalized    EventKind = "ticket_finalized"
	EventAgentFollowUp      EventKind = "agent_followup"
	EventInteractionMessage EventKind = "interaction_message"
)

var validEventKinds = map[EventKind]bool{
	EventTicketCreated:      true,
	EventTicketConcluded:    true,
	EventTicketReturned:     true,
	EventTicketFinalized:    true,
	EventAgentFollowUp:      true,
	EventInteractionMessage: true,
}

func (k EventKind) String() string {
	return string(k)
}

func (k EventKind) IsValid() bool {
	return validEventKinds[k]
}

func NewEventKind(s string) (EventKind, error) {
	k := EventKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid notification event kind: %s", s)
	}
	return k, nil
}
