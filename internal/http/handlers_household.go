package http

import (
	"net/http"

	"selrs/internal/core"
	applog "selrs/internal/log"
)

// The household and transfer endpoints share these handlers.

type balanceAccountRequest struct {
	Date      string  `json:"date"`
	Total     float64 `json:"total"`
	Balance   float64 `json:"balance"`
	CreditIn  float64 `json:"creditIn"`
	CreditOut float64 `json:"creditOut"`
	Notes     string  `json:"notes"`
}

func (br balanceAccountRequest) account() (core.BalanceAccount, error) {
	date, err := core.ParseDate(br.Date)
	if err != nil {
		return core.BalanceAccount{}, err
	}
	b := core.BalanceAccount{
		Date:      date,
		Total:     br.Total,
		Balance:   br.Balance,
		CreditIn:  br.CreditIn,
		CreditOut: br.CreditOut,
		Notes:     br.Notes,
	}
	return b, b.Validate()
}

func (s *Server) handleListBalanceAccounts(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.store.ListBalanceAccounts(r.Context(), table)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeList(w, records)
	}
}

func (s *Server) handleGetBalanceAccount(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid record id")
			return
		}

		rec, err := s.store.GetBalanceAccount(r.Context(), table, id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeRecord(w, rec)
	}
}

func (s *Server) handleCreateBalanceAccount(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req balanceAccountRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Request body is empty or invalid")
			return
		}
		account, err := req.account()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id, err := s.store.CreateBalanceAccount(r.Context(), table, account)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		s.publish(r.Context(), table, id, applog.OpCreate)
		writeSuccess(w, http.StatusCreated)
	}
}

func (s *Server) handleUpdateBalanceAccount(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid record id")
			return
		}

		var req balanceAccountRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Request body is empty or invalid")
			return
		}
		account, err := req.account()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := s.store.UpdateBalanceAccount(r.Context(), table, id, account); err != nil {
			writeStoreError(w, r, err)
			return
		}
		s.publish(r.Context(), table, id, applog.OpUpdate)
		writeSuccess(w, http.StatusOK)
	}
}
