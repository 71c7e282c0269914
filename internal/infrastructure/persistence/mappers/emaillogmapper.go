package mappers

import (
	"encoding/json"
	"time"

	"helpdesk/internal/domain/notification"
	"helpdesk/internal/infrastructure/persistence/models"
)

type EmailLogMapper interface {
	ToModel(r *notification.DeliveryRecord) *models.EmailLogModel
	ToDomain(model *models.EmailLogModel) *notification.DeliveryRecord
}

type EmailLogMapperImpl struct{}

func NewEmailLogMapper() EmailLogMapper {
	return &EmailLogMapperImpl{}
}

func (m *EmailLogMapperImpl) ToModel(r *notification.DeliveryRecord) *models.EmailLogModel {
	model := &models.EmailLogModel{
		ID:         r.ID,
		Recipient:  r.Recipient,
		Subject:    r.Subject,
		BodyPrefix: r.BodyPrefix,
		TicketID:   r.TicketID,
		Kind:       r.Kind.String(),
		Success:    r.Success,
		Simulated:  r.Simulated,
		Attempts:   r.Attempts,
		ErrorText:  r.ErrorText,
		CreatedAt:  r.CreatedAt.UnixMilli(),
	}

	if r.Details != nil {
		if payload, err := json.Marshal(r.Details); err == nil {
			model.Details = payload
		}
	}

	return model
}

func (m *EmailLogMapperImpl) ToDomain(model *models.EmailLogModel) *notification.DeliveryRecord {
	// Audit rows are diagnostic; an unrecognized kind is kept verbatim
	// rather than dropped.
	kind, err := notification.NewEventKind(model.Kind)
	if err != nil {
		kind = notification.EventKind(model.Kind)
	}

	var details *notification.DeliveryDetails
	if len(model.Details) > 0 {
		decoded := &notification.DeliveryDetails{}
		if err := json.Unmarshal(model.Details, decoded); err == nil {
			details = decoded
		}
	}

	return &notification.DeliveryRecord{
		ID:         model.ID,
		Recipient:  model.Recipient,
		Subject:    model.Subject,
		BodyPrefix: model.BodyPrefix,
		TicketID:   model.TicketID,
		Kind:       kind,
		Success:    model.Success,
		Simulated:  model.Simulated,
		Attempts:   model.Attempts,
		ErrorText:  model.ErrorText,
		Details:    details,
		CreatedAt:  time.UnixMilli(model.CreatedAt).UTC(),
	}
}
