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

type CreateTicketCommand struct {
	Subject     string
	Description string
	Priority    string
	CreatorID   uint
}

type CreateTicketResult struct {
	Ticket        *ticket.Ticket
	Notifications appnotif.Result
}

// CreateTicketUseCase registers a new ticket with status "new", records the
// opening interaction in the same transaction and notifies the admin inbox
// and the submitting client.
type CreateTicketUseCase struct {
	ticketRepo      ticket.TicketRepository
	interactionRepo ticket.InteractionRepository
	tx              Transactor
	notifier        TicketNotifier
	logger          logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	interactionRepo ticket.InteractionRepository,
	tx Transactor,
	notifier TicketNotifier,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:      ticketRepo,
		interactionRepo: interactionRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	t, err := ticket.NewTicket(cmd.Subject, cmd.Description, priority, cmd.CreatorID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Save(txCtx, t); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}

		opening, err := ticket.NewInteraction(
			t.ID(), cmd.CreatorID, vo.AuthorClient, vo.InteractionOpen, cmd.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to build opening interaction: %w", err)
		}
		if err := uc.interactionRepo.Save(txCtx, opening); err != nil {
			return fmt.Errorf("failed to save opening interaction: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket",
			"creator_id", cmd.CreatorID, "subject", cmd.Subject, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created",
		"ticket_id", t.ID(), "creator_id", cmd.CreatorID, "priority", priority)

	notifications := uc.notifier.TicketCreated(ctx, t.ID())

	return &CreateTicketResult{Ticket: t, Notifications: notifications}, nil
}
