package usecases

import (
	"context"

	appnotif "helpdesk/internal/application/notification"
)

// Transactor runs a function inside a database transaction. The shared db
// TransactionManager is the production implementation.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TicketNotifier publishes ticket lifecycle notifications. Implementations
// must be non-blocking and must never make the triggering mutation fail.
type TicketNotifier interface {
	TicketCreated(ctx context.Context, ticketID uint) appnotif.Result
	TicketConcluded(ctx context.Context, ticketID uint, message string) appnotif.Result
	TicketReturned(ctx context.Context, ticketID uint, message string) appnotif.Result
	TicketFinalized(ctx context.Context, ticketID uint) appnotif.Result
	AgentFollowUp(ctx context.Context, ticketID uint, message string) appnotif.Result
	InteractionAdded(ctx context.Context, ticketID uint, message string) appnotif.Result
}

// Executor interfaces let the web handlers depend on exactly the usecases
// they call.

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type StartTicketExecutor interface {
	Execute(ctx context.Context, cmd StartTicketCommand) (*StartTicketResult, error)
}

type ConcludeTicketExecutor interface {
	Execute(ctx context.Context, cmd ConcludeTicketCommand) (*ConcludeTicketResult, error)
}

type ReturnTicketExecutor interface {
	Execute(ctx context.Context, cmd ReturnTicketCommand) (*ReturnTicketResult, error)
}

type FinalizeTicketExecutor interface {
	Execute(ctx context.Context, cmd FinalizeTicketCommand) (*FinalizeTicketResult, error)
}

type AddInteractionExecutor interface {
	Execute(ctx context.Context, cmd AddInteractionCommand) (*AddInteractionResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, cmd GetTicketCommand) (*GetTicketResult, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error)
}
