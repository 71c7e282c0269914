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

func TestListTicketsUseCase_AgentSeesAllTickets(t *testing.T) {
	var captured ticket.TicketFilter
	ticketRepo := &mockTicketRepo{
		listFn: func(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			captured = filters
			return []*ticket.Ticket{ticketFixture(t, 1, 7)}, 1, nil
		},
	}
	uc := NewListTicketsUseCase(ticketRepo, testLogger())

	result, err := uc.Execute(context.Background(), ListTicketsCommand{
		ViewerID: 42,
		IsAgent:  true,
		Status:   "new",
		Priority: "high",
		Page:     2,
		PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.PageSize)

	require.NotNil(t, captured.Status)
	assert.Equal(t, vo.StatusNew, *captured.Status)
	require.NotNil(t, captured.Priority)
	assert.Equal(t, vo.PriorityHigh, *captured.Priority)
}

func TestListTicketsUseCase_ClientOnlySeesOwnTickets(t *testing.T) {
	var capturedUserID uint
	ticketRepo := &mockTicketRepo{
		getUserTicketsFn: func(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			capturedUserID = userID
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(ticketRepo, testLogger())

	_, err := uc.Execute(context.Background(), ListTicketsCommand{ViewerID: 7})

	require.NoError(t, err)
	assert.Equal(t, uint(7), capturedUserID)
}

func TestListTicketsUseCase_ClampsPagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 1, 500, 1, 20},
		{"in range", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketRepo := &mockTicketRepo{
				listFn: func(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
					assert.Equal(t, tt.wantPage, filters.Page)
					assert.Equal(t, tt.wantPageSize, filters.PageSize)
					return nil, 0, nil
				},
			}
			uc := NewListTicketsUseCase(ticketRepo, testLogger())

			result, err := uc.Execute(context.Background(), ListTicketsCommand{
				IsAgent:  true,
				Page:     tt.page,
				PageSize: tt.pageSize,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, result.Page)
			assert.Equal(t, tt.wantPageSize, result.PageSize)
		})
	}
}

func TestListTicketsUseCase_RejectsUnknownFilters(t *testing.T) {
	uc := NewListTicketsUseCase(&mockTicketRepo{}, testLogger())

	_, err := uc.Execute(context.Background(), ListTicketsCommand{IsAgent: true, Status: "reopened"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListTicketsCommand{IsAgent: true, Priority: "critical"})
	assert.True(t, apperrors.IsValidationError(err))
}
