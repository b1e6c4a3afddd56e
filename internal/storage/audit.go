package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AuditEntry is one row of the audit trail written by the worker.
type AuditEntry struct {
	EventID    string
	Table      string
	RecordID   int64
	Op         string
	OccurredAt time.Time
}

// AppendAudit records a change event. Redelivered events are deduplicated on
// event id, so consuming the queue at-least-once stays safe.
func (s *Store) AppendAudit(ctx context.Context, e AuditEntry) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO audit_log (event_id, table_name, record_id, op, occurred_at) VALUES (?, ?, ?, ?, ?)",
		e.EventID, e.Table, e.RecordID, e.Op, e.OccurredAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.DebugContext(ctx, "Duplicate audit event ignored", "event_id", e.EventID)
		return nil
	}

	slog.InfoContext(ctx, "Audit entry recorded",
		"event_id", e.EventID, "table", e.Table, "record_id", e.RecordID, "op", e.Op)
	return nil
}

// CountAudit returns the number of audit rows for one record.
func (s *Store) CountAudit(ctx context.Context, table string, recordID int64) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM audit_log WHERE table_name = ? AND record_id = ?",
		table, recordID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return n, nil
}
