package notification

import (
	"context"
	"fmt"

	domain "helpdesk/internal/domain/notification"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListTicketDeliveriesCommand struct {
	TicketID uint
}

type ListTicketDeliveriesResult struct {
	Records []*domain.DeliveryRecord
}

type ListTicketDeliveriesExecutor interface {
	Execute(ctx context.Context, cmd ListTicketDeliveriesCommand) (*ListTicketDeliveriesResult, error)
}

// ListTicketDeliveriesUseCase backs the delivery log agents see on the
// ticket detail page.
type ListTicketDeliveriesUseCase struct {
	auditRepo domain.DeliveryRecordRepository
	logger    logger.Interface
}

func NewListTicketDeliveriesUseCase(
	auditRepo domain.DeliveryRecordRepository,
	logger logger.Interface,
) *ListTicketDeliveriesUseCase {
	return &ListTicketDeliveriesUseCase{auditRepo: auditRepo, logger: logger}
}

func (uc *ListTicketDeliveriesUseCase) Execute(ctx context.Context, cmd ListTicketDeliveriesCommand) (*ListTicketDeliveriesResult, error) {
	if cmd.TicketID == 0 {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}

	records, err := uc.auditRepo.ListByTicketID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list ticket deliveries",
			"ticket_id", cmd.TicketID, "error", err)
		return nil, fmt.Errorf("failed to list ticket deliveries: %w", err)
	}

	return &ListTicketDeliveriesResult{Records: records}, nil
}
