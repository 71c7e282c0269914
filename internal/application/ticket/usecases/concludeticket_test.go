package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	apperrors "helpdesk/internal/shared/errors"
)

func TestConcludeTicketUseCase_Execute(t *testing.T) {
	tk := ticketFixture(t, 5, 7)
	require.NoError(t, tk.Start(42))
	ticketRepo := &mockTicketRepo{
		getByIDFn: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	interactionRepo := &mockInteractionRepo{}
	notifier := &mockNotifier{}
	uc := NewConcludeTicketUseCase(ticketRepo, interactionRepo, passthroughTransactor{}, notifier, testLogger())

	result, err := uc.Execute(context.Background(), ConcludeTicketCommand{
		TicketID:       5,
		AgentID:        42,
		Message:        "Replaced the toner cartridge.",
		ElapsedSeconds: 1800,
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusAwaitingConfirmation, result.Ticket.Status())
	require.NotNil(t, result.Ticket.ElapsedSeconds())
	assert.Equal(t, int64(1800), *result.Ticket.ElapsedSeconds())
	assert.NotNil(t, result.Ticket.ConcludedAt())

	require.Len(t, ticketRepo.updated, 1)
	require.Len(t, interactionRepo.saved, 1)
	conclusion := interactionRepo.saved[0]
	assert.Equal(t, vo.InteractionConclusion, conclusion.Kind())
	assert.Equal(t, vo.AuthorAgent, conclusion.AuthorRole())
	assert.Equal(t, "Replaced the toner cartridge.", conclusion.Message())

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notifierCall{
		method:   "TicketConcluded",
		ticketID: 5,
		message:  "Replaced the toner cartridge.",
	}, notifier.calls[0])
}

func TestConcludeTicketUseCase_ValidatesCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  ConcludeTicketCommand
	}{
		{"missing ticket id", ConcludeTicketCommand{AgentID: 42, Message: "m"}},
		{"missing agent id", ConcludeTicketCommand{TicketID: 5, Message: "m"}},
		{"missing message", ConcludeTicketCommand{TicketID: 5, AgentID: 42}},
		{"negative elapsed", ConcludeTicketCommand{TicketID: 5, AgentID: 42, Message: "m", ElapsedSeconds: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &mockNotifier{}
			uc := NewConcludeTicketUseCase(&mockTicketRepo{}, &mockInteractionRepo{}, passthroughTransactor{}, notifier, testLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Empty(t, notifier.calls)
		})
	}
}

func TestConcludeTicketUseCase_RejectsTicketNotInProgress(t *testing.T) {
	tk := ticketFixture(t, 5, 7)
	ticketRepo := &mockTicketRepo{
		getByIDFn: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	notifier := &mockNotifier{}
	uc := NewConcludeTicketUseCase(ticketRepo, &mockInteractionRepo{}, passthroughTransactor{}, notifier, testLogger())

	_, err := uc.Execute(context.Background(), ConcludeTicketCommand{
		TicketID: 5, AgentID: 42, Message: "done", ElapsedSeconds: 60,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, ticketRepo.updated)
	assert.Empty(t, notifier.calls)
}
