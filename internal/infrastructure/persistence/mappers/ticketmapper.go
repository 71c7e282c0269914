package mappers

import (
	"fmt"
	"time"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	InteractionToModel(i *ticket.Interaction) *models.InteractionModel
	InteractionToDomain(model *models.InteractionModel) (*ticket.Interaction, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:          t.ID(),
		Subject:     t.Subject(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		ReturnCount: t.ReturnCount(),
		Version:     t.Version(),
		CreatedAt:   t.CreatedAt().UnixMilli(),
		UpdatedAt:   t.UpdatedAt().UnixMilli(),
	}

	if t.ElapsedSeconds() != nil {
		elapsed := *t.ElapsedSeconds()
		model.ElapsedSeconds = &elapsed
	}

	if t.ConcludedAt() != nil {
		concluded := t.ConcludedAt().UnixMilli()
		model.ConcludedAt = &concluded
	}

	if t.FinalizedAt() != nil {
		finalized := t.FinalizedAt().UnixMilli()
		model.FinalizedAt = &finalized
	}

	return model
}

// ToDomain converts a ticket persistence model to a domain entity.
// Interactions must be loaded separately by the repository.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("failed to map ticket %d: %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to map ticket %d: %w", model.ID, err)
	}

	var concludedAt, finalizedAt *time.Time
	if model.ConcludedAt != nil {
		t := time.UnixMilli(*model.ConcludedAt).UTC()
		concludedAt = &t
	}
	if model.FinalizedAt != nil {
		t := time.UnixMilli(*model.FinalizedAt).UTC()
		finalizedAt = &t
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Subject,
		model.Description,
		priority,
		status,
		model.CreatorID,
		model.AssigneeID,
		model.ElapsedSeconds,
		model.ReturnCount,
		model.Version,
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
		concludedAt,
		finalizedAt,
	)
}

func (m *TicketMapperImpl) InteractionToModel(i *ticket.Interaction) *models.InteractionModel {
	return &models.InteractionModel{
		ID:         i.ID(),
		TicketID:   i.TicketID(),
		AuthorID:   i.AuthorID(),
		AuthorRole: i.AuthorRole().String(),
		Kind:       i.Kind().String(),
		Message:    i.Message(),
		CreatedAt:  i.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) InteractionToDomain(model *models.InteractionModel) (*ticket.Interaction, error) {
	role, err := vo.NewAuthorRole(model.AuthorRole)
	if err != nil {
		return nil, fmt.Errorf("failed to map interaction %d: %w", model.ID, err)
	}
	kind, err := vo.NewInteractionKind(model.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to map interaction %d: %w", model.ID, err)
	}

	return ticket.ReconstructInteraction(
		model.ID,
		model.TicketID,
		model.AuthorID,
		role,
		kind,
		model.Message,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}
