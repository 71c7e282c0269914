package usecases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	appnotif "helpdesk/internal/application/notification"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/logger"
)

// ticketFixture builds a persisted-looking ticket in status "new".
func ticketFixture(t *testing.T, id, creatorID uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket("Printer offline", "The office printer does not respond.", vo.PriorityMedium, creatorID)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(id))
	return tk
}

// awaitingTicketFixture builds a ticket concluded by agent 2 and awaiting
// the client's confirmation.
func awaitingTicketFixture(t *testing.T, id, creatorID uint) *ticket.Ticket {
	t.Helper()
	tk := ticketFixture(t, id, creatorID)
	require.NoError(t, tk.Start(2))
	require.NoError(t, tk.Conclude(2, 900))
	return tk
}

type mockTicketRepo struct {
	saveFn           func(ctx context.Context, t *ticket.Ticket) error
	updateFn         func(ctx context.Context, t *ticket.Ticket) error
	getByIDFn        func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	listFn           func(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	getUserTicketsFn func(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error)

	saved   []*ticket.Ticket
	updated []*ticket.Ticket
}

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error {
	m.saved = append(m.saved, t)
	if m.saveFn != nil {
		return m.saveFn(ctx, t)
	}
	return t.SetID(uint(len(m.saved)))
}

func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updated = append(m.updated, t)
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, ticketID)
	}
	return nil, errors.New("unexpected GetByID call")
}

func (m *mockTicketRepo) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, 0, errors.New("unexpected List call")
}

func (m *mockTicketRepo) GetUserTickets(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.getUserTicketsFn != nil {
		return m.getUserTicketsFn(ctx, userID, filters)
	}
	return nil, 0, errors.New("unexpected GetUserTickets call")
}

type mockInteractionRepo struct {
	saveFn func(ctx context.Context, interaction *ticket.Interaction) error

	saved []*ticket.Interaction
}

func (m *mockInteractionRepo) Save(ctx context.Context, interaction *ticket.Interaction) error {
	m.saved = append(m.saved, interaction)
	if m.saveFn != nil {
		return m.saveFn(ctx, interaction)
	}
	return nil
}

func (m *mockInteractionRepo) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Interaction, error) {
	var out []*ticket.Interaction
	for _, i := range m.saved {
		if i.TicketID() == ticketID {
			out = append(out, i)
		}
	}
	return out, nil
}

// passthroughTransactor runs the function directly, without a database.
type passthroughTransactor struct{}

func (passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifierCall struct {
	method   string
	ticketID uint
	message  string
}

type mockNotifier struct {
	calls []notifierCall
}

func (m *mockNotifier) record(method string, ticketID uint, message string) appnotif.Result {
	m.calls = append(m.calls, notifierCall{method: method, ticketID: ticketID, message: message})
	return appnotif.Result{}
}

func (m *mockNotifier) TicketCreated(ctx context.Context, ticketID uint) appnotif.Result {
	return m.record("TicketCreated", ticketID, "")
}

func (m *mockNotifier) TicketConcluded(ctx context.Context, ticketID uint, message string) appnotif.Result {
	return m.record("TicketConcluded", ticketID, message)
}

func (m *mockNotifier) TicketReturned(ctx context.Context, ticketID uint, message string) appnotif.Result {
	return m.record("TicketReturned", ticketID, message)
}

func (m *mockNotifier) TicketFinalized(ctx context.Context, ticketID uint) appnotif.Result {
	return m.record("TicketFinalized", ticketID, "")
}

func (m *mockNotifier) AgentFollowUp(ctx context.Context, ticketID uint, message string) appnotif.Result {
	return m.record("AgentFollowUp", ticketID, message)
}

func (m *mockNotifier) InteractionAdded(ctx context.Context, ticketID uint, message string) appnotif.Result {
	return m.record("InteractionAdded", ticketID, message)
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
