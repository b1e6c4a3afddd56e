package core

import (
	"errors"
	"strings"
)

// Table identifies one of the five business tables exposed by the API.
type Table string

const (
	TableLedger    Table = "ledger"
	TableAdvance   Table = "advance"
	TableLoan      Table = "loan"
	TableHousehold Table = "household"
	TableTransfer  Table = "transfer"
)

type (
	// LedgerEntry is one dated row of the cash ledger. Balance is computed
	// server-side from the chronologically preceding entry and is never
	// accepted from the caller.
	LedgerEntry struct {
		Date    Date
		Revenue float64
		Expense float64
		Notes   string
	}

	// NamedAccount is a dated obligation with cumulative payments, shared by
	// the advance and loan tables. The remaining balance is derived on read,
	// never stored.
	NamedAccount struct {
		Name    string
		Date    Date
		Amount  float64
		Payment float64
		Notes   string
	}

	// BalanceAccount is the shape shared by the household and transfer
	// tables. Balance here is caller-supplied, not computed.
	BalanceAccount struct {
		Date      Date
		Total     float64
		Balance   float64
		CreditIn  float64
		CreditOut float64
		Notes     string
	}
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrMissingDate = errors.New("missing required field: date")
	ErrMissingName = errors.New("missing required field: name")
)

func (e LedgerEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (a NamedAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrMissingName
	}
	if a.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (b BalanceAccount) Validate() error {
	if b.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
