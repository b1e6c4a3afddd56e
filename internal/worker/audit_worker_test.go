package worker

import (
	"context"
	"testing"
	"time"

	"selrs/internal/amqp"
	"selrs/internal/storage"
)

func TestHandleRecordChange(t *testing.T) {
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	w := NewAuditWorker(store)
	ctx := context.Background()

	msg := &amqp.RecordChangeMessage{
		EventID:   "evt-abc",
		Table:     "ledger",
		RecordID:  3,
		Op:        "update",
		Timestamp: time.Now().UTC(),
	}
	if err := w.HandleRecordChange(ctx, msg); err != nil {
		t.Fatalf("handle message: %v", err)
	}

	// Redelivery of the same event must not duplicate the row.
	if err := w.HandleRecordChange(ctx, msg); err != nil {
		t.Fatalf("handle redelivered message: %v", err)
	}

	n, err := store.CountAudit(ctx, "ledger", 3)
	if err != nil {
		t.Fatalf("count audit: %v", err)
	}
	if n != 1 {
		t.Fatalf("audit rows = %d, want 1", n)
	}
}
