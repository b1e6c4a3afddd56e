package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"selrs/internal/core"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestCreateLedgerRunningBalance(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// First entry: no earlier entry, previous balance 0.
	id1, err := s.CreateLedger(ctx, core.LedgerEntry{
		Date: mustDate(t, "2024-01-10"), Revenue: 100, Expense: 20,
	})
	if err != nil {
		t.Fatalf("create first entry: %v", err)
	}
	rec, err := s.GetLedger(ctx, id1)
	if err != nil {
		t.Fatalf("get first entry: %v", err)
	}
	if rec["balance"] != int64(80) {
		t.Fatalf("first balance = %v, want 80", rec["balance"])
	}
	if rec["date"] != "10/01/2024" {
		t.Fatalf("date = %v, want 10/01/2024", rec["date"])
	}

	// Second, later entry builds on the first.
	id2, err := s.CreateLedger(ctx, core.LedgerEntry{
		Date: mustDate(t, "2024-01-15"), Revenue: 50,
	})
	if err != nil {
		t.Fatalf("create second entry: %v", err)
	}
	rec, err = s.GetLedger(ctx, id2)
	if err != nil {
		t.Fatalf("get second entry: %v", err)
	}
	if rec["balance"] != int64(130) {
		t.Fatalf("second balance = %v, want 130", rec["balance"])
	}

	// Backfilled earlier entry does not cascade into later balances.
	if _, err := s.CreateLedger(ctx, core.LedgerEntry{
		Date: mustDate(t, "2024-01-01"), Revenue: 1000,
	}); err != nil {
		t.Fatalf("create backfilled entry: %v", err)
	}
	rec, err = s.GetLedger(ctx, id2)
	if err != nil {
		t.Fatalf("get second entry again: %v", err)
	}
	if rec["balance"] != int64(130) {
		t.Fatalf("later balance changed to %v after backfill, want 130", rec["balance"])
	}
}

func TestUpdateLedgerExcludesSelf(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.CreateLedger(ctx, core.LedgerEntry{
		Date: mustDate(t, "2024-01-10"), Revenue: 100, Expense: 20,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	// The entry being updated must not serve as its own previous balance.
	err = s.UpdateLedger(ctx, id, core.LedgerEntry{
		Date: mustDate(t, "2024-01-10"), Revenue: 200, Expense: 20, Notes: "edited",
	})
	if err != nil {
		t.Fatalf("update entry: %v", err)
	}

	rec, err := s.GetLedger(ctx, id)
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if rec["balance"] != int64(180) {
		t.Fatalf("balance after update = %v, want 180", rec["balance"])
	}
	if rec["notes"] != "edited" {
		t.Fatalf("notes = %v, want edited", rec["notes"])
	}
}

func TestUpdateLedgerMissingIDSucceeds(t *testing.T) {
	s := testStore(t)
	err := s.UpdateLedger(context.Background(), 9999, core.LedgerEntry{
		Date: mustDate(t, "2024-01-10"),
	})
	if err != nil {
		t.Fatalf("update of missing id should succeed, got %v", err)
	}
}

func TestListLedgerYearFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, date := range []string{"2023-06-01", "2024-03-05", "2024-11-20"} {
		if _, err := s.CreateLedger(ctx, core.LedgerEntry{Date: mustDate(t, date), Revenue: 1}); err != nil {
			t.Fatalf("create entry %s: %v", date, err)
		}
	}

	all, err := s.ListLedger(ctx, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	// Newest first.
	if all[0]["date"] != "20/11/2024" {
		t.Fatalf("first record date = %v, want 20/11/2024", all[0]["date"])
	}

	filtered, err := s.ListLedger(ctx, 2024)
	if err != nil {
		t.Fatalf("list 2024: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("len(2024) = %d, want 2", len(filtered))
	}
}

func TestAccountsDerivedFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, core.TableAdvance, core.NamedAccount{
		Name: "Ali", Date: mustDate(t, "2024-02-01"), Amount: 500, Payment: 200,
	})
	if err != nil {
		t.Fatalf("create advance: %v", err)
	}

	rec, err := s.GetAccount(ctx, core.TableAdvance, id)
	if err != nil {
		t.Fatalf("get advance: %v", err)
	}
	if rec["remaining"] != int64(300) {
		t.Fatalf("remaining = %v, want 300", rec["remaining"])
	}
	if rec["total"] != int64(500) {
		t.Fatalf("total = %v, want 500", rec["total"])
	}
	if rec["name"] != "Ali" {
		t.Fatalf("name = %v, want Ali", rec["name"])
	}

	// remaining is recomputed after a payment update, never stored.
	err = s.UpdateAccount(ctx, core.TableAdvance, id, core.NamedAccount{
		Name: "Ali", Date: mustDate(t, "2024-02-01"), Amount: 500, Payment: 350,
	})
	if err != nil {
		t.Fatalf("update advance: %v", err)
	}
	rec, err = s.GetAccount(ctx, core.TableAdvance, id)
	if err != nil {
		t.Fatalf("get advance after update: %v", err)
	}
	if rec["remaining"] != int64(150) {
		t.Fatalf("remaining after update = %v, want 150", rec["remaining"])
	}

	// Loans use the same implementation against their own table.
	loanID, err := s.CreateAccount(ctx, core.TableLoan, core.NamedAccount{
		Name: "Bank", Date: mustDate(t, "2024-02-10"), Amount: 1000, Payment: 999.5,
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	rec, err = s.GetAccount(ctx, core.TableLoan, loanID)
	if err != nil {
		t.Fatalf("get loan: %v", err)
	}
	if rec["remaining"] != 0.5 {
		t.Fatalf("loan remaining = %v, want 0.5", rec["remaining"])
	}

	advances, err := s.ListAccounts(ctx, core.TableAdvance)
	if err != nil {
		t.Fatalf("list advances: %v", err)
	}
	if len(advances) != 1 {
		t.Fatalf("len(advances) = %d, want 1; loans must not leak into advances", len(advances))
	}
}

func TestBalanceAccountRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.CreateBalanceAccount(ctx, core.TableHousehold, core.BalanceAccount{
		Date: mustDate(t, "2024-03-01"), Total: 1500, Balance: 250.75, CreditIn: 100, CreditOut: 50,
	})
	if err != nil {
		t.Fatalf("create household record: %v", err)
	}

	rec, err := s.GetBalanceAccount(ctx, core.TableHousehold, id)
	if err != nil {
		t.Fatalf("get household record: %v", err)
	}
	if rec["total"] != int64(1500) {
		t.Fatalf("total = %v, want 1500", rec["total"])
	}
	if rec["balance"] != 250.75 {
		t.Fatalf("balance = %v, want 250.75", rec["balance"])
	}
	if rec["creditIn"] != int64(100) {
		t.Fatalf("creditIn = %v, want 100", rec["creditIn"])
	}
	if rec["creditOut"] != int64(50) {
		t.Fatalf("creditOut = %v, want 50", rec["creditOut"])
	}
}

func TestGetMissingRecord(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.GetLedger(ctx, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetLedger(9999) = %v, want ErrNotFound", err)
	}
	if _, err := s.GetAccount(ctx, core.TableLoan, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetAccount(9999) = %v, want ErrNotFound", err)
	}
	if _, err := s.GetBalanceAccount(ctx, core.TableTransfer, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetBalanceAccount(9999) = %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.CreateLedger(ctx, core.LedgerEntry{Date: mustDate(t, "2024-01-10")})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := s.Delete(ctx, core.TableLedger, id); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.Delete(ctx, core.TableLedger, id); err != nil {
		t.Fatalf("second delete of same id should succeed, got %v", err)
	}
	if err := s.Delete(ctx, core.TableLedger, 424242); err != nil {
		t.Fatalf("delete of never-existing id should succeed, got %v", err)
	}
}

func TestDeleteUnknownTable(t *testing.T) {
	s := testStore(t)
	if err := s.Delete(context.Background(), core.Table("users"), 1); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestAppendAuditDeduplicates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	e := AuditEntry{
		EventID:    "evt-1",
		Table:      "ledger",
		RecordID:   7,
		Op:         "create",
		OccurredAt: time.Now(),
	}
	if err := s.AppendAudit(ctx, e); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := s.AppendAudit(ctx, e); err != nil {
		t.Fatalf("redelivered append: %v", err)
	}

	n, err := s.CountAudit(ctx, "ledger", 7)
	if err != nil {
		t.Fatalf("count audit: %v", err)
	}
	if n != 1 {
		t.Fatalf("audit rows = %d, want 1", n)
	}
}
