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

type AddInteractionCommand struct {
	TicketID uint
	AuthorID uint
	IsAgent  bool
	Message  string
}

type AddInteractionResult struct {
	Interaction   *ticket.Interaction
	Notifications appnotif.Result
}

// AddInteractionUseCase appends a free-form message to a ticket thread and
// notifies the counterparty: the client when an agent writes, the admin
// inbox when the client does.
type AddInteractionUseCase struct {
	ticketRepo      ticket.TicketRepository
	interactionRepo ticket.InteractionRepository
	notifier        TicketNotifier
	logger          logger.Interface
}

func NewAddInteractionUseCase(
	ticketRepo ticket.TicketRepository,
	interactionRepo ticket.InteractionRepository,
	notifier TicketNotifier,
	logger logger.Interface,
) *AddInteractionUseCase {
	return &AddInteractionUseCase{
		ticketRepo:      ticketRepo,
		interactionRepo: interactionRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

func (uc *AddInteractionUseCase) Execute(ctx context.Context, cmd AddInteractionCommand) (*AddInteractionResult, error) {
	if cmd.TicketID == 0 {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.AuthorID == 0 {
		return nil, apperrors.NewValidationError("author ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if !cmd.IsAgent && t.CreatorID() != cmd.AuthorID {
		return nil, apperrors.NewForbiddenError("only the ticket owner can comment on it")
	}

	role := vo.AuthorClient
	if cmd.IsAgent {
		role = vo.AuthorAgent
	}

	interaction, err := ticket.NewInteraction(
		cmd.TicketID, cmd.AuthorID, role, vo.InteractionMessage, cmd.Message,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	// AddInteraction enforces the thread rules (no messages on finalized
	// tickets) without requiring a ticket row update.
	if err := t.AddInteraction(interaction); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.interactionRepo.Save(ctx, interaction); err != nil {
		uc.logger.Errorw("failed to save interaction",
			"ticket_id", cmd.TicketID, "author_id", cmd.AuthorID, "error", err)
		return nil, fmt.Errorf("failed to save interaction: %w", err)
	}

	uc.logger.Infow("interaction added",
		"ticket_id", cmd.TicketID, "author_id", cmd.AuthorID, "role", role)

	var notifications appnotif.Result
	if cmd.IsAgent {
		notifications = uc.notifier.AgentFollowUp(ctx, cmd.TicketID, cmd.Message)
	} else {
		notifications = uc.notifier.InteractionAdded(ctx, cmd.TicketID, cmd.Message)
	}

	return &AddInteractionResult{Interaction: interaction, Notifications: notifications}, nil
}
