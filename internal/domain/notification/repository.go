package notification

import "context"

// DeliveryRecordRepository persists delivery audit rows. Writes are
// best-effort: callers log and swallow errors rather than propagating them.
type DeliveryRecordRepository interface {
	Save(ctx context.Context, record *DeliveryRecord) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]*DeliveryRecord, error)
}
