package usecases

import (
	"context"
	"fmt"

	appnotif "helpdesk/internal/application/notification"
	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type FinalizeTicketCommand struct {
	TicketID uint
	ClientID uint
}

type FinalizeTicketResult struct {
	Ticket        *ticket.Ticket
	Notifications appnotif.Result
}

// FinalizeTicketUseCase closes an awaiting-confirmation ticket on the
// client's confirmation and notifies the admin inbox.
type FinalizeTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	notifier   TicketNotifier
	logger     logger.Interface
}

func NewFinalizeTicketUseCase(
	ticketRepo ticket.TicketRepository,
	notifier TicketNotifier,
	logger logger.Interface,
) *FinalizeTicketUseCase {
	return &FinalizeTicketUseCase{
		ticketRepo: ticketRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *FinalizeTicketUseCase) Execute(ctx context.Context, cmd FinalizeTicketCommand) (*FinalizeTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ClientID == 0 {
		return nil, apperrors.NewValidationError("client ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if t.CreatorID() != cmd.ClientID {
		return nil, apperrors.NewForbiddenError("only the ticket owner can finalize it")
	}

	if err := t.Finalize(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to finalize ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	uc.logger.Infow("ticket finalized", "ticket_id", t.ID(), "client_id", cmd.ClientID)

	notifications := uc.notifier.TicketFinalized(ctx, t.ID())

	return &FinalizeTicketResult{Ticket: t, Notifications: notifications}, nil
}
