// Package http provides the API server: one router core for all five
// business tables, with auth middleware and a uniform response envelope.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"selrs/internal/auth"
	"selrs/internal/core"
	applog "selrs/internal/log"
	"selrs/internal/storage"
)

// EventPublisher pushes record-change events to the audit stream. A nil
// publisher disables auditing; publish failures never fail the request.
type EventPublisher interface {
	PublishRecordChange(ctx context.Context, table string, recordID int64, op string) error
}

type Server struct {
	http.Server

	store  *storage.Store
	gate   *auth.Gate
	events EventPublisher
	logger *applog.Logger

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures all routes, returning a ready-to-run server.
func NewServer(addr string, store *storage.Store, gate *auth.Gate, events EventPublisher, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	mux := http.NewServeMux()
	s := &Server{
		store:       store,
		gate:        gate,
		events:      events,
		logger:      logger,
		rateLimiter: newRateLimiter(60),
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.trace(mux),
	}

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/login", s.handleLogin) // legacy alias
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/ledger", s.requireAuth(s.handleListLedger))
	mux.HandleFunc("GET /api/ledger/{id}", s.requireAuth(s.handleGetLedger))
	mux.HandleFunc("POST /api/ledger", s.requireAuth(s.handleCreateLedger))
	mux.HandleFunc("PUT /api/ledger/{id}", s.requireAuth(s.handleUpdateLedger))
	mux.HandleFunc("DELETE /api/ledger/{id}", s.requireAuth(s.handleDelete(core.TableLedger)))

	for _, table := range []core.Table{core.TableAdvance, core.TableLoan} {
		p := "/api/" + string(table)
		mux.HandleFunc("GET "+p, s.requireAuth(s.handleListAccounts(table)))
		mux.HandleFunc("GET "+p+"/{id}", s.requireAuth(s.handleGetAccount(table)))
		mux.HandleFunc("POST "+p, s.requireAuth(s.handleCreateAccount(table)))
		mux.HandleFunc("PUT "+p+"/{id}", s.requireAuth(s.handleUpdateAccount(table)))
		mux.HandleFunc("DELETE "+p+"/{id}", s.requireAuth(s.handleDelete(table)))
	}

	for _, table := range []core.Table{core.TableHousehold, core.TableTransfer} {
		p := "/api/" + string(table)
		mux.HandleFunc("GET "+p, s.requireAuth(s.handleListBalanceAccounts(table)))
		mux.HandleFunc("GET "+p+"/{id}", s.requireAuth(s.handleGetBalanceAccount(table)))
		mux.HandleFunc("POST "+p, s.requireAuth(s.handleCreateBalanceAccount(table)))
		mux.HandleFunc("PUT "+p+"/{id}", s.requireAuth(s.handleUpdateBalanceAccount(table)))
		mux.HandleFunc("DELETE "+p+"/{id}", s.requireAuth(s.handleDelete(table)))
	}

	return s
}

// Shutdown stops the rate limiter cleanup goroutine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "selrs API server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// publish emits an audit event for a successful write. Best effort: a down
// broker must never fail the request that already committed.
func (s *Server) publish(ctx context.Context, table core.Table, id int64, op string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordChange(ctx, string(table), id, op); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish record change event",
			applog.FieldError, err,
			applog.FieldTable, string(table),
			applog.FieldRecordID, id,
			applog.FieldOperation, op)
	}
}

// handleDelete works for every table: delete is idempotent, a missing id
// still reports success.
func (s *Server) handleDelete(table core.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid record id")
			return
		}
		if err := s.store.Delete(r.Context(), table, id); err != nil {
			writeStoreError(w, r, err)
			return
		}
		s.publish(r.Context(), table, id, applog.OpDelete)
		writeSuccess(w, http.StatusOK)
	}
}
