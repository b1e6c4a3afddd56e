package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"selrs/internal/core"
	"selrs/internal/storage"
)

type (
	listResponse struct {
		Success bool             `json:"success"`
		Data    []storage.Record `json:"data"`
		Count   int              `json:"count"`
	}

	recordResponse struct {
		Success bool           `json:"success"`
		Data    storage.Record `json:"data"`
	}

	okResponse struct {
		Success bool `json:"success"`
	}

	errorResponse struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}

	loginResponse struct {
		Success  bool   `json:"success"`
		Token    string `json:"token"`
		Username string `json:"username"`
	}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeList(w http.ResponseWriter, records []storage.Record) {
	if records == nil {
		records = []storage.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: records, Count: len(records)})
}

func writeRecord(w http.ResponseWriter, rec storage.Record) {
	writeJSON(w, http.StatusOK, recordResponse{Success: true, Data: rec})
}

func writeSuccess(w http.ResponseWriter, status int) {
	writeJSON(w, status, okResponse{Success: true})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// writeStoreError maps a storage failure onto the error envelope. Driver
// error text is logged but never surfaced to the caller.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}
	slog.ErrorContext(r.Context(), "Database operation failed",
		"error", err, "method", r.Method, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "Database operation failed")
}
