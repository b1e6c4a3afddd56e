// Package worker persists record-change events into the audit trail.
package worker

import (
	"context"
	"fmt"

	"selrs/internal/amqp"
	"selrs/internal/storage"
)

// AuditWorker writes one audit_log row per consumed record-change event.
type AuditWorker struct {
	store *storage.Store
}

func NewAuditWorker(store *storage.Store) *AuditWorker {
	return &AuditWorker{store: store}
}

// HandleRecordChange processes a single record-change message. Appends are
// deduplicated on event id, so redelivery after a crash is harmless.
func (w *AuditWorker) HandleRecordChange(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	err := w.store.AppendAudit(ctx, storage.AuditEntry{
		EventID:    msg.EventID,
		Table:      msg.Table,
		RecordID:   msg.RecordID,
		Op:         msg.Op,
		OccurredAt: msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
