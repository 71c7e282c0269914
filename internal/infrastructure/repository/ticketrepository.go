package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
)

// allowedTicketOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]bool{
	"id":           true,
	"subject":      true,
	"status":       true,
	"priority":     true,
	"creator_id":   true,
	"assignee_id":  true,
	"return_count": true,
	"created_at":   true,
	"updated_at":   true,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("subject", "description", "priority", "status", "assignee_id",
			"elapsed_seconds", "return_count", "version", "updated_at",
			"concluded_at", "finalized_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	if err := r.loadInteractions(ctx, t, model.ID); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *TicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})
	tx = applyTicketFilters(tx, filters)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	tx = applyTicketOrdering(tx, filters)
	tx = applyTicketPagination(tx, filters)

	var rows []models.TicketModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}

	return tickets, total, nil
}

func (r *TicketRepository) GetUserTickets(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	filters.CreatorID = &userID
	return r.List(ctx, filters)
}

func (r *TicketRepository) loadInteractions(ctx context.Context, t *ticket.Ticket, ticketID uint) error {
	var rows []models.InteractionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load interactions: %w", err)
	}

	for i := range rows {
		interaction, err := r.mapper.InteractionToDomain(&rows[i])
		if err != nil {
			return err
		}
		if err := t.AttachInteraction(interaction); err != nil {
			return err
		}
	}

	return nil
}

func applyTicketFilters(tx *gorm.DB, filters ticket.TicketFilter) *gorm.DB {
	if filters.Status != nil {
		tx = tx.Where("status = ?", filters.Status.String())
	}
	if filters.Priority != nil {
		tx = tx.Where("priority = ?", filters.Priority.String())
	}
	if filters.CreatorID != nil {
		tx = tx.Where("creator_id = ?", *filters.CreatorID)
	}
	return tx
}

func applyTicketOrdering(tx *gorm.DB, filters ticket.TicketFilter) *gorm.DB {
	sortBy := filters.SortBy
	if !allowedTicketOrderByFields[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}
	return tx.Order(fmt.Sprintf("%s %s", sortBy, order))
}

func applyTicketPagination(tx *gorm.DB, filters ticket.TicketFilter) *gorm.DB {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return tx.Offset((page - 1) * pageSize).Limit(pageSize)
}
