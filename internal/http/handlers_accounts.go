package http

import (
	"net/http"

	"selrs/internal/core"
	applog "selrs/internal/log"
)

// The advance and loan endpoints share these handlers; the table is fixed
// at route-wiring time.

type accountRequest struct {
	Name    string  `json:"name"`
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	Payment float64 `json:"payment"`
	Notes   string  `json:"notes"`
}

func (ar accountRequest) account() (core.NamedAccount, error) {
	date, err := core.ParseDate(ar.Date)
	if err != nil {
		return core.NamedAccount{}, err
	}
	a := core.NamedAccount{
		Name:    ar.Name,
		Date:    date,
		Amount:  ar.Amount,
		Payment: ar.Payment,
		Notes:   ar.Notes,
	}
	return a, a.Validate()
}

func (s *Server) handleListAccounts(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.store.ListAccounts(r.Context(), table)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeList(w, records)
	}
}

func (s *Server) handleGetAccount(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid record id")
			return
		}

		rec, err := s.store.GetAccount(r.Context(), table, id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeRecord(w, rec)
	}
}

func (s *Server) handleCreateAccount(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req accountRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Request body is empty or invalid")
			return
		}
		account, err := req.account()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id, err := s.store.CreateAccount(r.Context(), table, account)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		s.publish(r.Context(), table, id, applog.OpCreate)
		writeSuccess(w, http.StatusCreated)
	}
}

func (s *Server) handleUpdateAccount(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid record id")
			return
		}

		var req accountRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Request body is empty or invalid")
			return
		}
		account, err := req.account()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := s.store.UpdateAccount(r.Context(), table, id, account); err != nil {
			writeStoreError(w, r, err)
			return
		}
		s.publish(r.Context(), table, id, applog.OpUpdate)
		writeSuccess(w, http.StatusOK)
	}
}
