package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

// Ticket is the aggregate root for a support request. Status only moves
// through the lifecycle encoded in valueobjects.TicketStatus; every mutator
// validates the current state before writing.
type Ticket struct {
	id             uint
	subject        string
	description    string
	priority       vo.Priority
	status         vo.TicketStatus
	creatorID      uint
	assigneeID     *uint
	elapsedSeconds *int64
	returnCount    int
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	concludedAt    *time.Time
	finalizedAt    *time.Time
	interactions   []*Interaction
}

func NewTicket(
	subject string,
	description string,
	priority vo.Priority,
	creatorID uint,
) (*Ticket, error) {
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if len(subject) > 200 {
		return nil, fmt.Errorf("subject exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		subject:      subject,
		description:  description,
		priority:     priority,
		status:       vo.StatusNew,
		creatorID:    creatorID,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
		interactions: []*Interaction{},
	}, nil
}

func ReconstructTicket(
	id uint,
	subject string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	creatorID uint,
	assigneeID *uint,
	elapsedSeconds *int64,
	returnCount int,
	version int,
	createdAt, updatedAt time.Time,
	concludedAt, finalizedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &Ticket{
		id:             id,
		subject:        subject,
		description:    description,
		priority:       priority,
		status:         status,
		creatorID:      creatorID,
		assigneeID:     assigneeID,
		elapsedSeconds: elapsedSeconds,
		returnCount:    returnCount,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		concludedAt:    concludedAt,
		finalizedAt:    finalizedAt,
		interactions:   []*Interaction{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) ElapsedSeconds() *int64 {
	return t.elapsedSeconds
}

func (t *Ticket) ReturnCount() int {
	return t.returnCount
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ConcludedAt() *time.Time {
	return t.concludedAt
}

func (t *Ticket) FinalizedAt() *time.Time {
	return t.finalizedAt
}

func (t *Ticket) Interactions() []*Interaction {
	interactionsCopy := make([]*Interaction, len(t.interactions))
	copy(interactionsCopy, t.interactions)
	return interactionsCopy
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// Start moves a new ticket into in_progress and assigns the acting agent.
func (t *Ticket) Start(agentID uint) error {
	if agentID == 0 {
		return fmt.Errorf("agent ID cannot be zero")
	}
	if !t.status.CanTransitionTo(vo.StatusInProgress) || !t.status.IsNew() {
		return fmt.Errorf("cannot start ticket with status %s", t.status)
	}

	t.status = vo.StatusInProgress
	t.assigneeID = &agentID
	t.touch()

	return nil
}

// Conclude moves an in_progress ticket to awaiting_confirmation, recording
// the agent's total service time. The ticket stays open until the client
// either finalizes or returns it.
func (t *Ticket) Conclude(agentID uint, elapsedSeconds int64) error {
	if agentID == 0 {
		return fmt.Errorf("agent ID cannot be zero")
	}
	if !t.status.CanTransitionTo(vo.StatusAwaitingConfirmation) {
		return fmt.Errorf("cannot conclude ticket with status %s", t.status)
	}

	t.status = vo.StatusAwaitingConfirmation
	t.assigneeID = &agentID
	if elapsedSeconds > 0 {
		t.elapsedSeconds = &elapsedSeconds
	}
	now := biztime.NowUTC()
	t.concludedAt = &now
	t.touch()

	return nil
}

// Return is the client rejecting a conclusion: the ticket goes back to
// in_progress and the return counter increments.
func (t *Ticket) Return() error {
	if !t.status.IsAwaitingConfirmation() {
		return fmt.Errorf("only tickets awaiting confirmation can be returned, current status is %s", t.status)
	}

	t.status = vo.StatusInProgress
	t.returnCount++
	t.concludedAt = nil
	t.touch()

	return nil
}

// Finalize is the client accepting a conclusion. Finalized is terminal.
func (t *Ticket) Finalize() error {
	if !t.status.CanTransitionTo(vo.StatusFinalized) {
		return fmt.Errorf("cannot finalize ticket with status %s", t.status)
	}

	t.status = vo.StatusFinalized
	now := biztime.NowUTC()
	t.finalizedAt = &now
	t.touch()

	return nil
}

func (t *Ticket) AddInteraction(interaction *Interaction) error {
	if interaction == nil {
		return fmt.Errorf("interaction cannot be nil")
	}
	if interaction.TicketID() != t.id {
		return fmt.Errorf("interaction ticket ID mismatch")
	}
	if t.status.IsFinalized() {
		return fmt.Errorf("cannot add interactions to a finalized ticket")
	}

	t.interactions = append(t.interactions, interaction)
	t.touch()

	return nil
}

// AttachInteraction reattaches a stored interaction during reconstruction.
// Unlike AddInteraction it performs no lifecycle checks and does not bump the
// update timestamp.
func (t *Ticket) AttachInteraction(interaction *Interaction) error {
	if interaction == nil {
		return fmt.Errorf("interaction cannot be nil")
	}
	if interaction.TicketID() != t.id {
		return fmt.Errorf("interaction ticket ID mismatch")
	}
	t.interactions = append(t.interactions, interaction)
	return nil
}

func (t *Ticket) CanBeViewedBy(userID uint, isAgent bool) bool {
	if isAgent {
		return true
	}
	return t.creatorID == userID
}

func (t *Ticket) Validate() error {
	if len(t.subject) == 0 {
		return fmt.Errorf("subject is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	return nil
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
	t.version++
}
