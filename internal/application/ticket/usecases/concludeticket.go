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

type ConcludeTicketCommand struct {
	TicketID       uint
	AgentID        uint
	Message        string
	ElapsedSeconds int64
}

type ConcludeTicketResult struct {
	Ticket        *ticket.Ticket
	Notifications appnotif.Result
}

// ConcludeTicketUseCase moves an in-progress ticket to awaiting confirmation,
// records the conclusion interaction and elapsed service time, and notifies
// the client.
type ConcludeTicketUseCase struct {
	ticketRepo      ticket.TicketRepository
	interactionRepo ticket.InteractionRepository
	tx              Transactor
	notifier        TicketNotifier
	logger          logger.Interface
}

func NewConcludeTicketUseCase(
	ticketRepo ticket.TicketRepository,
	interactionRepo ticket.InteractionRepository,
	tx Transactor,
	notifier TicketNotifier,
	logger logger.Interface,
) *ConcludeTicketUseCase {
	return &ConcludeTicketUseCase{
		ticketRepo:      ticketRepo,
		interactionRepo: interactionRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          logger,
	}
}

func (uc *ConcludeTicketUseCase) Execute(ctx context.Context, cmd ConcludeTicketCommand) (*ConcludeTicketResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	var t *ticket.Ticket
	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = uc.ticketRepo.GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := t.Conclude(cmd.AgentID, cmd.ElapsedSeconds); err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		conclusion, err := ticket.NewInteraction(
			t.ID(), cmd.AgentID, vo.AuthorAgent, vo.InteractionConclusion, cmd.Message,
		)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		if err := uc.interactionRepo.Save(txCtx, conclusion); err != nil {
			return fmt.Errorf("failed to save conclusion interaction: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to conclude ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket concluded",
		"ticket_id", t.ID(), "agent_id", cmd.AgentID, "elapsed_seconds", cmd.ElapsedSeconds)

	notifications := uc.notifier.TicketConcluded(ctx, t.ID(), cmd.Message)

	return &ConcludeTicketResult{Ticket: t, Notifications: notifications}, nil
}

func (uc *ConcludeTicketUseCase) validateCommand(cmd ConcludeTicketCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.AgentID == 0 {
		return apperrors.NewValidationError("agent ID is required")
	}
	if cmd.Message == "" {
		return apperrors.NewValidationError("conclusion message is required")
	}
	if cmd.ElapsedSeconds < 0 {
		return apperrors.NewValidationError("elapsed time cannot be negative")
	}
	return nil
}
