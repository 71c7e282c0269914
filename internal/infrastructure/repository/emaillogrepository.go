package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/notification"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type EmailLogRepository struct {
	db     *gorm.DB
	mapper mappers.EmailLogMapper
}

func NewEmailLogRepository(db *gorm.DB) *EmailLogRepository {
	return &EmailLogRepository{
		db:     db,
		mapper: mappers.NewEmailLogMapper(),
	}
}

func (r *EmailLogRepository) Save(ctx context.Context, record *notification.DeliveryRecord) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save delivery record: %w", err)
	}

	record.ID = model.ID
	return nil
}

func (r *EmailLogRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*notification.DeliveryRecord, error) {
	var rows []models.EmailLogModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list delivery records: %w", err)
	}

	records := make([]*notification.DeliveryRecord, 0, len(rows))
	for i := range rows {
		records = append(records, r.mapper.ToDomain(&rows[i]))
	}

	return records, nil
}

var _ notification.DeliveryRecordRepository = (*EmailLogRepository)(nil)
