package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

// Interaction is a single message in a ticket's append-only thread.
type Interaction struct {
	id         uint
	ticketID   uint
	authorID   uint
	authorRole vo.AuthorRole
	kind       vo.InteractionKind
	message    string
	createdAt  time.Time
}

func NewInteraction(
	ticketID uint,
	authorID uint,
	authorRole vo.AuthorRole,
	kind vo.InteractionKind,
	message string,
) (*Interaction, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if !authorRole.IsValid() {
		return nil, fmt.Errorf("invalid author role")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid interaction kind")
	}
	if len(message) == 0 {
		return nil, fmt.Errorf("message cannot be empty")
	}
	if len(message) > 5000 {
		return nil, fmt.Errorf("message exceeds maximum length of 5000 characters")
	}

	return &Interaction{
		ticketID:   ticketID,
		authorID:   authorID,
		authorRole: authorRole,
		kind:       kind,
		message:    message,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructInteraction(
	id uint,
	ticketID uint,
	authorID uint,
	authorRole vo.AuthorRole,
	kind vo.InteractionKind,
	message string,
	createdAt time.Time,
) (*Interaction, error) {
	if id == 0 {
		return nil, fmt.Errorf("interaction ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	return &Interaction{
		id:         id,
		ticketID:   ticketID,
		authorID:   authorID,
		authorRole: authorRole,
		kind:       kind,
		message:    message,
		createdAt:  createdAt,
	}, nil
}

func (i *Interaction) ID() uint {
	return i.id
}

func (i *Interaction) TicketID() uint {
	return i.ticketID
}

func (i *Interaction) AuthorID() uint {
	return i.authorID
}

func (i *Interaction) AuthorRole() vo.AuthorRole {
	return i.authorRole
}

func (i *Interaction) Kind() vo.InteractionKind {
	return i.kind
}

func (i *Interaction) Message() string {
	return i.message
}

func (i *Interaction) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Interaction) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("interaction ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("interaction ID cannot be zero")
	}
	i.id = id
	return nil
}
