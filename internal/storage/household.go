package storage

import (
	"context"
	"fmt"
	"log/slog"

	"selrs/internal/core"
)

// The household and mobile-transfer tables share one shape. Balance here is
// caller-supplied, never computed.

const balanceAccountColumns = "id, date, total, balance, credit_in AS creditIn, credit_out AS creditOut, notes"

func (s *Store) ListBalanceAccounts(ctx context.Context, table core.Table) ([]Record, error) {
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}
	return s.queryRecords(ctx,
		fmt.Sprintf("SELECT %s FROM %s ORDER BY date DESC, id DESC", balanceAccountColumns, name))
}

func (s *Store) GetBalanceAccount(ctx context.Context, table core.Table, id int64) (Record, error) {
	name, err := tableName(table)
	if err != nil {
		return nil, err
	}
	return s.queryOne(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", balanceAccountColumns, name), id)
}

func (s *Store) CreateBalanceAccount(ctx context.Context, table core.Table, b core.BalanceAccount) (int64, error) {
	name, err := tableName(table)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (date, total, balance, credit_in, credit_out, notes) VALUES (?, ?, ?, ?, ?, ?)", name),
		b.Date.ISO(), b.Total, b.Balance, b.CreditIn, b.CreditOut, b.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Balance account record created", "table", table, "id", id)
	return id, nil
}

func (s *Store) UpdateBalanceAccount(ctx context.Context, table core.Table, id int64, b core.BalanceAccount) error {
	name, err := tableName(table)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET date = ?, total = ?, balance = ?, credit_in = ?, credit_out = ?, notes = ? WHERE id = ?", name),
		b.Date.ISO(), b.Total, b.Balance, b.CreditIn, b.CreditOut, b.Notes, id)
	if err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}

	slog.InfoContext(ctx, "Balance account record updated", "table", table, "id", id)
	return nil
}
