package ticket

import (
	"context"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filters TicketFilter) ([]*Ticket, int64, error)
	GetUserTickets(ctx context.Context, userID uint, filters TicketFilter) ([]*Ticket, int64, error)
}

type TicketFilter struct {
	Status    *vo.TicketStatus
	Priority  *vo.Priority
	CreatorID *uint
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type InteractionRepository interface {
	Save(ctx context.Context, interaction *Interaction) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Interaction, error)
}
