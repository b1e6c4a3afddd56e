package storage

import (
	"context"
	"fmt"
	"log/slog"

	"selrs/internal/core"
)

// The advance and loan tables share one shape and one implementation; only
// the table name differs.

const namedAccountColumns = "id, name, date, amount, payment, notes"

// ListAccounts returns advance or loan records newest-first, each with the
// derived remaining and total fields attached.
func (s *Store) ListAccounts(ctx context.Context, table core.Table) ([]Record, error) {
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}
	records, err := s.queryRecords(ctx,
		fmt.Sprintf("SELECT %s FROM %s ORDER BY date DESC, id DESC", namedAccountColumns, name))
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		attachDerived(rec)
	}
	return records, nil
}

func (s *Store) GetAccount(ctx context.Context, table core.Table, id int64) (Record, error) {
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}
	rec, err := s.queryOne(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", namedAccountColumns, name), id)
	if err != nil {
		return nil, err
	}
	attachDerived(rec)
	return rec, nil
}

func (s *Store) CreateAccount(ctx context.Context, table core.Table, a core.NamedAccount) (int64, error) {
	name, err := tableName(table)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (name, date, amount, payment, notes) VALUES (?, ?, ?, ?, ?)", name),
		a.Name, a.Date.ISO(), a.Amount, a.Payment, a.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Account record created", "table", table, "id", id, "name", a.Name)
	return id, nil
}

func (s *Store) UpdateAccount(ctx context.Context, table core.Table, id int64, a core.NamedAccount) error {
	name, err := tableName(table)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET name = ?, date = ?, amount = ?, payment = ?, notes = ? WHERE id = ?", name),
		a.Name, a.Date.ISO(), a.Amount, a.Payment, a.Notes, id)
	if err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}

	slog.InfoContext(ctx, "Account record updated", "table", table, "id", id)
	return nil
}

// attachDerived adds remaining = amount - payment and total = amount.
// Both are recomputed on every read and never stored.
func attachDerived(rec Record) {
	amount := recordDecimal(rec["amount"])
	payment := recordDecimal(rec["payment"])
	rec["remaining"] = renderDecimal(amount.Sub(payment))
	rec["total"] = renderDecimal(amount)
}
