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

func TestReturnTicketUseCase_Execute(t *testing.T) {
	tk := awaitingTicketFixture(t, 5, 7)
	ticketRepo := &mockTicketRepo{
		getByIDFn: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	interactionRepo := &mockInteractionRepo{}
	notifier := &mockNotifier{}
	uc := NewReturnTicketUseCase(ticketRepo, interactionRepo, passthroughTransactor{}, notifier, testLogger())

	result, err := uc.Execute(context.Background(), ReturnTicketCommand{
		TicketID: 5,
		ClientID: 7,
		Message:  "The printer stopped again this morning.",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, result.Ticket.Status())
	assert.Equal(t, 1, result.Ticket.ReturnCount())
	assert.Nil(t, result.Ticket.ConcludedAt())

	require.Len(t, interactionRepo.saved, 1)
	assert.Equal(t, vo.InteractionReturn, interactionRepo.saved[0].Kind())
	assert.Equal(t, vo.AuthorClient, interactionRepo.saved[0].AuthorRole())

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "TicketReturned", notifier.calls[0].method)
	assert.Equal(t, "The printer stopped again this morning.", notifier.calls[0].message)
}

func TestReturnTicketUseCase_EachReturnBumpsCounter(t *testing.T) {
	tk := awaitingTicketFixture(t, 5, 7)
	ticketRepo := &mockTicketRepo{
		getByIDFn: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc := NewReturnTicketUseCase(ticketRepo, &mockInteractionRepo{}, passthroughTransactor{}, &mockNotifier{}, testLogger())

	_, err := uc.Execute(context.Background(), ReturnTicketCommand{TicketID: 5, ClientID: 7, Message: "still broken"})
	require.NoError(t, err)

	require.NoError(t, tk.Conclude(2, 300))
	_, err = uc.Execute(context.Background(), ReturnTicketCommand{TicketID: 5, ClientID: 7, Message: "and again"})
	require.NoError(t, err)

	assert.Equal(t, 2, tk.ReturnCount())
}

func TestReturnTicketUseCase_OnlyOwnerCanReturn(t *testing.T) {
	tk := awaitingTicketFixture(t, 5, 7)
	ticketRepo := &mockTicketRepo{
		getByIDFn: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	notifier := &mockNotifier{}
	uc := NewReturnTicketUseCase(ticketRepo, &mockInteractionRepo{}, passthroughTransactor{}, notifier, testLogger())

	_, err := uc.Execute(context.Background(), ReturnTicketCommand{TicketID: 5, ClientID: 99, Message: "not mine"})

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	assert.Equal(t, 0, tk.ReturnCount())
	assert.Empty(t, notifier.calls)
}

func TestReturnTicketUseCase_RequiresMessage(t *testing.T) {
	uc := NewReturnTicketUseCase(&mockTicketRepo{}, &mockInteractionRepo{}, passthroughTransactor{}, &mockNotifier{}, testLogger())

	_, err := uc.Execute(context.Background(), ReturnTicketCommand{TicketID: 5, ClientID: 7})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
