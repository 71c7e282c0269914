package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/ticket"
	apperrors "helpdesk/internal/shared/errors"
)

func TestGetTicketUseCase_Execute(t *testing.T) {
	tk := ticketFixture(t, 5, 7)
	ticketRepo := &mockTicketRepo{
		getByIDFn: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc := NewGetTicketUseCase(ticketRepo, testLogger())

	tests := []struct {
		name      string
		cmd       GetTicketCommand
		forbidden bool
	}{
		{"owner sees own ticket", GetTicketCommand{TicketID: 5, ViewerID: 7}, false},
		{"agent sees any ticket", GetTicketCommand{TicketID: 5, ViewerID: 42, IsAgent: true}, false},
		{"other client is rejected", GetTicketCommand{TicketID: 5, ViewerID: 99}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(context.Background(), tt.cmd)
			if tt.forbidden {
				require.Error(t, err)
				appErr := apperrors.GetAppError(err)
				require.NotNil(t, appErr)
				assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(5), result.Ticket.ID())
		})
	}
}

func TestGetTicketUseCase_RequiresTicketID(t *testing.T) {
	uc := NewGetTicketUseCase(&mockTicketRepo{}, testLogger())

	_, err := uc.Execute(context.Background(), GetTicketCommand{ViewerID: 7})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
