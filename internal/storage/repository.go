package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"selrs/internal/core"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed record store for all five business tables plus
// the audit log.
type Store struct {
	db *sql.DB
}

// SQL table names per API table. Identifiers interpolated into statements
// come only from this fixed map; every value is parameter-bound.
var tableNames = map[core.Table]string{
	core.TableLedger:    "ledger",
	core.TableAdvance:   "advances",
	core.TableLoan:      "loans",
	core.TableHousehold: "household_accounts",
	core.TableTransfer:  "transfer_accounts",
}

func tableName(table core.Table) (string, error) {
	name, ok := tableNames[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q", table)
	}
	return name, nil
}

// Open opens (creating if needed) the database file and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" && !strings.HasPrefix(dbPath, ":memory:") {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// in-memory databases on one handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Delete removes a record by id. A missing id is not an error: the delete
// is idempotent and reports success either way, matching the API contract.
func (s *Store) Delete(ctx context.Context, table core.Table, id int64) error {
	name, err := tableName(table)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", name), id); err != nil {
		return fmt.Errorf("delete from %s: %w", name, err)
	}
	return nil
}

// queryRecords runs a read statement and maps the rows.
func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	return mapRows(rows)
}

// queryOne runs a read statement expected to match at most one row.
func (s *Store) queryOne(ctx context.Context, query string, args ...any) (Record, error) {
	records, err := s.queryRecords(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, core.ErrNotFound
	}
	return records[0], nil
}
