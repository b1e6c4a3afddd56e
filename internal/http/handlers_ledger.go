package http

import (
	"net/http"

	"selrs/internal/core"
	applog "selrs/internal/log"
)

type ledgerRequest struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
	Notes   string  `json:"notes"`
}

// entry validates the payload before any database call. The balance is
// never taken from the caller.
func (lr ledgerRequest) entry() (core.LedgerEntry, error) {
	date, err := core.ParseDate(lr.Date)
	if err != nil {
		return core.LedgerEntry{}, err
	}
	e := core.LedgerEntry{
		Date:    date,
		Revenue: lr.Revenue,
		Expense: lr.Expense,
		Notes:   lr.Notes,
	}
	return e, e.Validate()
}

func (s *Server) handleListLedger(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year filter")
		return
	}

	records, err := s.store.ListLedger(r.Context(), year)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeList(w, records)
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	rec, err := s.store.GetLedger(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeRecord(w, rec)
}

func (s *Server) handleCreateLedger(w http.ResponseWriter, r *http.Request) {
	var req ledgerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is empty or invalid")
		return
	}
	entry, err := req.entry()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.CreateLedger(r.Context(), entry)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.publish(r.Context(), core.TableLedger, id, applog.OpCreate)
	writeSuccess(w, http.StatusCreated)
}

func (s *Server) handleUpdateLedger(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	var req ledgerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is empty or invalid")
		return
	}
	entry, err := req.entry()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateLedger(r.Context(), id, entry); err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.publish(r.Context(), core.TableLedger, id, applog.OpUpdate)
	writeSuccess(w, http.StatusOK)
}
