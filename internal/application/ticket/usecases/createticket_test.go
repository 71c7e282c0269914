package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	apperrors "helpdesk/internal/shared/errors"
)

func TestCreateTicketUseCase_Execute(t *testing.T) {
	ticketRepo := &mockTicketRepo{}
	interactionRepo := &mockInteractionRepo{}
	notifier := &mockNotifier{}
	uc := NewCreateTicketUseCase(ticketRepo, interactionRepo, passthroughTransactor{}, notifier, testLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Subject:     "Printer offline",
		Description: "The office printer does not respond.",
		Priority:    "high",
		CreatorID:   7,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Ticket)
	assert.Equal(t, vo.StatusNew, result.Ticket.Status())
	assert.Equal(t, vo.PriorityHigh, result.Ticket.Priority())
	assert.Equal(t, uint(7), result.Ticket.CreatorID())
	assert.Equal(t, 0, result.Ticket.ReturnCount())

	require.Len(t, ticketRepo.saved, 1)
	require.Len(t, interactionRepo.saved, 1)
	opening := interactionRepo.saved[0]
	assert.Equal(t, result.Ticket.ID(), opening.TicketID())
	assert.Equal(t, vo.InteractionOpen, opening.Kind())
	assert.Equal(t, vo.AuthorClient, opening.AuthorRole())
	assert.Equal(t, "The office printer does not respond.", opening.Message())

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notifierCall{method: "TicketCreated", ticketID: result.Ticket.ID()}, notifier.calls[0])
}

func TestCreateTicketUseCase_ValidationFailuresSaveNothing(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateTicketCommand
	}{
		{
			name: "unknown priority",
			cmd:  CreateTicketCommand{Subject: "s", Description: "d", Priority: "critical", CreatorID: 7},
		},
		{
			name: "empty subject",
			cmd:  CreateTicketCommand{Description: "d", Priority: "low", CreatorID: 7},
		},
		{
			name: "empty description",
			cmd:  CreateTicketCommand{Subject: "s", Priority: "low", CreatorID: 7},
		},
		{
			name: "missing creator",
			cmd:  CreateTicketCommand{Subject: "s", Description: "d", Priority: "low"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketRepo := &mockTicketRepo{}
			interactionRepo := &mockInteractionRepo{}
			notifier := &mockNotifier{}
			uc := NewCreateTicketUseCase(ticketRepo, interactionRepo, passthroughTransactor{}, notifier, testLogger())

			result, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Nil(t, result)
			assert.Empty(t, ticketRepo.saved)
			assert.Empty(t, interactionRepo.saved)
			assert.Empty(t, notifier.calls)
		})
	}
}

func TestCreateTicketUseCase_SaveFailureSkipsNotification(t *testing.T) {
	ticketRepo := &mockTicketRepo{
		saveFn: func(ctx context.Context, _ *ticket.Ticket) error {
			return errors.New("disk full")
		},
	}
	interactionRepo := &mockInteractionRepo{}
	notifier := &mockNotifier{}
	uc := NewCreateTicketUseCase(ticketRepo, interactionRepo, passthroughTransactor{}, notifier, testLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Subject:     "Printer offline",
		Description: "The office printer does not respond.",
		Priority:    "low",
		CreatorID:   7,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, interactionRepo.saved)
	assert.Empty(t, notifier.calls)
}
