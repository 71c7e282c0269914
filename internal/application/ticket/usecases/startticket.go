package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type StartTicketCommand struct {
	TicketID uint
	AgentID  uint
}

type StartTicketResult struct {
	Ticket *ticket.Ticket
}

// StartTicketUseCase moves a new ticket into progress and assigns the acting
// agent. No notification fires for this transition.
type StartTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewStartTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *StartTicketUseCase {
	return &StartTicketUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *StartTicketUseCase) Execute(ctx context.Context, cmd StartTicketCommand) (*StartTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.AgentID == 0 {
		return nil, apperrors.NewValidationError("agent ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if err := t.Start(cmd.AgentID); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to start ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	uc.logger.Infow("ticket started", "ticket_id", t.ID(), "agent_id", cmd.AgentID)

	return &StartTicketResult{Ticket: t}, nil
}
