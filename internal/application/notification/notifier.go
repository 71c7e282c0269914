// Package notification orchestrates ticket lifecycle notifications: it
// resolves recipients, renders templates and hands messages to the dispatch
// queue. Notification failure never affects the triggering ticket mutation.
package notification

import (
	"context"
	"fmt"

	domain "helpdesk/internal/domain/notification"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/shared/logger"
)

// Enqueuer is the outbound side of the dispatch queue.
type Enqueuer interface {
	Enqueue(msg email.Message) <-chan email.Outcome
}

// Delivery is one message handed to the queue; Outcome resolves once the
// delivery reaches a terminal state.
type Delivery struct {
	Audience  email.Audience
	Recipient string
	Kind      domain.EventKind
	Outcome   <-chan email.Outcome
}

// Skip explains why a notification was not attempted. Skips are expected
// outcomes (missing records, unconfigured addresses), not errors.
type Skip struct {
	Audience email.Audience
	Kind     domain.EventKind
	Reason   string
}

// Result reports everything a notification event produced.
type Result struct {
	Deliveries []Delivery
	Skipped    []Skip
}

// Config carries the addressing the notifier needs beyond what the tickets
// themselves hold.
type Config struct {
	AdminAddress string
	BaseURL      string
}

type Notifier struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	renderer   *email.Renderer
	queue      Enqueuer
	cfg        Config
	logger     logger.Interface
}

func NewNotifier(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	renderer *email.Renderer,
	queue Enqueuer,
	cfg Config,
	log logger.Interface,
) *Notifier {
	return &Notifier{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		renderer:   renderer,
		queue:      queue,
		cfg:        cfg,
		logger:     log.Named("notifier"),
	}
}

// TicketCreated notifies the admin inbox and the submitting client.
func (n *Notifier) TicketCreated(ctx context.Context, ticketID uint) Result {
	return n.notify(ctx, domain.EventTicketCreated, ticketID, "")
}

// TicketConcluded notifies the client that their ticket awaits confirmation.
func (n *Notifier) TicketConcluded(ctx context.Context, ticketID uint, message string) Result {
	return n.notify(ctx, domain.EventTicketConcluded, ticketID, message)
}

// TicketReturned notifies both sides that the client sent the ticket back.
func (n *Notifier) TicketReturned(ctx context.Context, ticketID uint, message string) Result {
	return n.notify(ctx, domain.EventTicketReturned, ticketID, message)
}

// TicketFinalized notifies the admin inbox that the client confirmed.
func (n *Notifier) TicketFinalized(ctx context.Context, ticketID uint) Result {
	return n.notify(ctx, domain.EventTicketFinalized, ticketID, "")
}

// AgentFollowUp notifies the client about an agent message on their ticket.
func (n *Notifier) AgentFollowUp(ctx context.Context, ticketID uint, message string) Result {
	return n.notify(ctx, domain.EventAgentFollowUp, ticketID, message)
}

// InteractionAdded notifies the admin inbox about a client message.
func (n *Notifier) InteractionAdded(ctx context.Context, ticketID uint, message string) Result {
	return n.notify(ctx, domain.EventInteractionMessage, ticketID, message)
}

func (n *Notifier) notify(ctx context.Context, kind domain.EventKind, ticketID uint, message string) Result {
	var result Result

	t, err := n.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		reason := fmt.Sprintf("ticket %d not found: %v", ticketID, err)
		n.logger.Warnw("notification skipped", "kind", kind, "reason", reason)
		for _, audience := range n.renderer.Audiences(kind) {
			result.Skipped = append(result.Skipped, Skip{Audience: audience, Kind: kind, Reason: reason})
		}
		return result
	}

	creator, err := n.userRepo.GetByID(ctx, t.CreatorID())
	if err != nil {
		reason := fmt.Sprintf("ticket %d creator not found: %v", ticketID, err)
		n.logger.Warnw("notification skipped", "kind", kind, "reason", reason)
		for _, audience := range n.renderer.Audiences(kind) {
			result.Skipped = append(result.Skipped, Skip{Audience: audience, Kind: kind, Reason: reason})
		}
		return result
	}

	data := n.buildData(ctx, t, creator, message)

	for _, audience := range n.renderer.Audiences(kind) {
		recipient, reason := n.recipientFor(audience, creator)
		if reason != "" {
			n.logger.Warnw("notification skipped",
				"kind", kind, "audience", audience, "reason", reason)
			result.Skipped = append(result.Skipped, Skip{Audience: audience, Kind: kind, Reason: reason})
			continue
		}

		subject, body, err := n.renderer.Render(kind, audience, data)
		if err != nil {
			reason := fmt.Sprintf("render failed: %v", err)
			n.logger.Errorw("notification skipped",
				"kind", kind, "audience", audience, "reason", reason)
			result.Skipped = append(result.Skipped, Skip{Audience: audience, Kind: kind, Reason: reason})
			continue
		}

		id := t.ID()
		outcome := n.queue.Enqueue(email.Message{
			Recipient: recipient,
			Subject:   subject,
			HTMLBody:  body,
			TicketID:  &id,
			Kind:      kind,
		})
		result.Deliveries = append(result.Deliveries, Delivery{
			Audience:  audience,
			Recipient: recipient,
			Kind:      kind,
			Outcome:   outcome,
		})
	}

	return result
}

func (n *Notifier) recipientFor(audience email.Audience, creator *user.User) (string, string) {
	switch audience {
	case email.AudienceAdmin:
		if n.cfg.AdminAddress == "" {
			return "", "admin address not configured"
		}
		return n.cfg.AdminAddress, ""
	case email.AudienceClient:
		if creator.Email() == nil {
			return "", fmt.Sprintf("user %s has no email address", creator.Username())
		}
		return creator.Email().String(), ""
	}
	return "", fmt.Sprintf("unknown audience %q", audience)
}

func (n *Notifier) buildData(ctx context.Context, t *ticket.Ticket, creator *user.User, message string) email.TemplateData {
	data := email.TemplateData{
		TicketID:    t.ID(),
		Subject:     t.Subject(),
		Description: t.Description(),
		Priority:    t.Priority().DisplayName(),
		Status:      t.Status().DisplayName(),
		ClientName:  creator.Username(),
		Company:     creator.Company(),
		ElapsedTime: formatElapsed(t.ElapsedSeconds()),
		Message:     message,
		ReturnCount: t.ReturnCount(),
		BaseURL:     n.cfg.BaseURL,
	}

	if t.AssigneeID() != nil {
		if agent, err := n.userRepo.GetByID(ctx, *t.AssigneeID()); err == nil {
			data.AgentName = agent.Username()
		}
	}

	return data
}

// formatElapsed renders service time as "1h 23m"; nil degrades to the
// renderer's N/A placeholder.
func formatElapsed(seconds *int64) string {
	if seconds == nil {
		return ""
	}
	s := *seconds
	if s < 0 {
		s = 0
	}
	hours := s / 3600
	minutes := (s % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
