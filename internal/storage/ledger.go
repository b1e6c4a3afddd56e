package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"selrs/internal/core"
)

const ledgerSelect = "SELECT id, date, revenue, expense, notes, balance FROM ledger"

// ListLedger returns ledger entries newest-first, optionally filtered to one
// year. year <= 0 means no filter.
func (s *Store) ListLedger(ctx context.Context, year int) ([]Record, error) {
	if year > 0 {
		from := fmt.Sprintf("%04d-01-01", year)
		to := fmt.Sprintf("%04d-01-01", year+1)
		return s.queryRecords(ctx, ledgerSelect+" WHERE date >= ? AND date < ? ORDER BY date DESC, id DESC", from, to)
	}
	return s.queryRecords(ctx, ledgerSelect+" ORDER BY date DESC, id DESC")
}

func (s *Store) GetLedger(ctx context.Context, id int64) (Record, error) {
	return s.queryOne(ctx, ledgerSelect+" WHERE id = ?", id)
}

// CreateLedger inserts a ledger entry with its running balance:
// the balance of the chronologically latest strictly-earlier entry, plus
// revenue, minus expense. The lookup and insert share one transaction so the
// pair is never observed inconsistent. Later-dated entries are not
// recomputed when an earlier date is backfilled; balances are correct
// relative to insertion order only.
func (s *Store) CreateLedger(ctx context.Context, e core.LedgerEntry) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	balance, err := runningBalance(ctx, tx, e, 0)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO ledger (date, revenue, expense, notes, balance) VALUES (?, ?, ?, ?, ?)",
		e.Date.ISO(), e.Revenue, e.Expense, e.Notes, balance)
	if err != nil {
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Ledger entry created", "id", id, "date", e.Date.ISO(), "balance", balance)
	return id, nil
}

// UpdateLedger replaces all mutable fields and recomputes the balance,
// excluding the entry itself from the previous-balance lookup. Like the
// original API, updating a missing id is not an error.
func (s *Store) UpdateLedger(ctx context.Context, id int64, e core.LedgerEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	balance, err := runningBalance(ctx, tx, e, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE ledger SET date = ?, revenue = ?, expense = ?, notes = ?, balance = ? WHERE id = ?",
		e.Date.ISO(), e.Revenue, e.Expense, e.Notes, balance, id)
	if err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Ledger entry updated", "id", id, "date", e.Date.ISO(), "balance", balance)
	return nil
}

// runningBalance computes previous_balance + revenue - expense, where the
// previous balance comes from the latest entry dated strictly before the
// given one. excludeID > 0 leaves the entry being updated out of the
// lookup. No earlier entry means a previous balance of 0.
func runningBalance(ctx context.Context, tx *sql.Tx, e core.LedgerEntry, excludeID int64) (float64, error) {
	query := "SELECT balance FROM ledger WHERE date < ? ORDER BY date DESC, id DESC LIMIT 1"
	args := []any{e.Date.ISO()}
	if excludeID > 0 {
		query = "SELECT balance FROM ledger WHERE date < ? AND id <> ? ORDER BY date DESC, id DESC LIMIT 1"
		args = append(args, excludeID)
	}

	var prev float64
	err := tx.QueryRowContext(ctx, query, args...).Scan(&prev)
	if errors.Is(err, sql.ErrNoRows) {
		prev = 0
	} else if err != nil {
		return 0, fmt.Errorf("look up previous balance: %w", err)
	}

	balance := decimal.NewFromFloat(prev).
		Add(decimal.NewFromFloat(e.Revenue)).
		Sub(decimal.NewFromFloat(e.Expense))
	f, _ := balance.Float64()
	return f, nil
}
