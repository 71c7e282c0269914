package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusNew                  TicketStatus = "new"
	StatusInProgress           TicketStatus = "in_progress"
	StatusAwaitingConfirmation TicketStatus = "awaiting_confirmation"
	StatusFinalized            TicketStatus = "finalized"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusNew:                  true,
	StatusInProgress:           true,
	StatusAwaitingConfirmation: true,
	StatusFinalized:            true,
}

// ticketStatusTransitions encodes the ticket lifecycle. The return transition
// (awaiting_confirmation back to in_progress) is the client rejecting the
// conclusion; finalized is terminal.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusNew: {
		StatusInProgress,
	},
	StatusInProgress: {
		StatusAwaitingConfirmation,
	},
	StatusAwaitingConfirmation: {
		StatusFinalized,
		StatusInProgress,
	},
	StatusFinalized: {},
}

var ticketStatusDisplayNames = map[TicketStatus]string{
	StatusNew:                  "New",
	StatusInProgress:           "In Progress",
	StatusAwaitingConfirmation: "Awaiting Confirmation",
	StatusFinalized:            "Finalized",
}

func (ts TicketStatus) String() string {
	return string(ts)
}

// DisplayName returns the human-readable form used on pages and in e-mails.
func (ts TicketStatus) DisplayName() string {
	if name, ok := ticketStatusDisplayNames[ts]; ok {
		return name
	}
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowedTransitions, ok := ticketStatusTransitions[ts]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsNew() bool {
	return ts == StatusNew
}

func (ts TicketStatus) IsInProgress() bool {
	return ts == StatusInProgress
}

func (ts TicketStatus) IsAwaitingConfirmation() bool {
	return ts == StatusAwaitingConfirmation
}

func (ts TicketStatus) IsFinalized() bool {
	return ts == StatusFinalized
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
