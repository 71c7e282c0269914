package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetTicketCommand struct {
	TicketID uint
	ViewerID uint
	IsAgent  bool
}

type GetTicketResult struct {
	Ticket *ticket.Ticket
}

// GetTicketUseCase loads a single ticket with its interaction thread,
// enforcing that clients only see their own tickets.
type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, cmd GetTicketCommand) (*GetTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if !t.CanBeViewedBy(cmd.ViewerID, cmd.IsAgent) {
		return nil, apperrors.NewForbiddenError("you do not have access to this ticket")
	}

	return &GetTicketResult{Ticket: t}, nil
}
