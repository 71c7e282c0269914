package usecases

import (
	"context"
	"fmt"

	appnotif "helpdesk/internal/application/notification"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ReturnTicketCommand struct {
	TicketID uint
	ClientID uint
	Message  string
}

type ReturnTicketResult struct {
	Ticket        *ticket.Ticket
	Notifications appnotif.Result
}

// ReturnTicketUseCase sends an awaiting-confirmation ticket back into
// progress on the client's request, bumping the return counter and recording
// the client's reason as a return interaction. Both sides are notified.
type ReturnTicketUseCase struct {
	ticketRepo      ticket.TicketRepository
	interactionRepo ticket.InteractionRepository
	tx              Transactor
	notifier        TicketNotifier
	logger          logger.Interface
}

func NewReturnTicketUseCase(
	ticketRepo ticket.TicketRepository,
	interactionRepo ticket.InteractionRepository,
	tx Transactor,
	notifier TicketNotifier,
	logger logger.Interface,
) *ReturnTicketUseCase {
	return &ReturnTicketUseCase{
		ticketRepo:      ticketRepo,
		interactionRepo: interactionRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          logger,
	}
}

func (uc *ReturnTicketUseCase) Execute(ctx context.Context, cmd ReturnTicketCommand) (*ReturnTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.ClientID == 0 {
		return nil, apperrors.NewValidationError("client ID is required")
	}
	if cmd.Message == "" {
		return nil, apperrors.NewValidationError("a reason for returning the ticket is required")
	}

	var t *ticket.Ticket
	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = uc.ticketRepo.GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if t.CreatorID() != cmd.ClientID {
			return apperrors.NewForbiddenError("only the ticket owner can return it")
		}

		if err := t.Return(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		reason, err := ticket.NewInteraction(
			t.ID(), cmd.ClientID, vo.AuthorClient, vo.InteractionReturn, cmd.Message,
		)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		if err := uc.interactionRepo.Save(txCtx, reason); err != nil {
			return fmt.Errorf("failed to save return interaction: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to return ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket returned",
		"ticket_id", t.ID(), "client_id", cmd.ClientID, "return_count", t.ReturnCount())

	notifications := uc.notifier.TicketReturned(ctx, t.ID(), cmd.Message)

	return &ReturnTicketResult{Ticket: t, Notifications: notifications}, nil
}
