package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type InteractionRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *InteractionRepository) Save(ctx context.Context, interaction *ticket.Interaction) error {
	model := r.mapper.InteractionToModel(interaction)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	if err := interaction.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *InteractionRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Interaction, error) {
	var rows []models.InteractionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	interactions := make([]*ticket.Interaction, 0, len(rows))
	for i := range rows {
		interaction, err := r.mapper.InteractionToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}

	return interactions, nil
}
