// Package http serves the dashboard and history API on top of the local
// finance snapshot.
package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"payvue/internal/amqp"
	"payvue/internal/cache"
	"payvue/internal/log"
	"payvue/internal/middleware/ratelimit"
	"payvue/internal/middleware/security"
	"payvue/internal/storage"
)

// SnapshotReader provides the stored snapshot and its version.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context) (storage.Snapshot, error)
	Version(ctx context.Context) (int64, error)
}

type Server struct {
	http.Server

	snapshots SnapshotReader
	cache     cache.Store
	limiter   *ratelimit.Limiter
	logger    *log.Logger

	// Last version seen via the refresh queue; readiness reports it
	lastSeenVersion atomic.Int64

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, snapshots SnapshotReader, store cache.Store, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		snapshots: snapshots,
		cache:     store,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		logger:    logger.WithComponent(log.ComponentHTTP),
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.limiter.Middleware(clientIP)

	chain := func(h http.HandlerFunc) http.Handler {
		return headers.Middleware(limited(s.withRequestLogging(h)))
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /api/dashboard", chain(s.handleDashboard))
	mux.Handle("GET /api/history/incomes", chain(s.handleHistoryIncomes))
	mux.Handle("GET /api/history/debts", chain(s.handleHistoryDebts))
	mux.Handle("GET /api/history/payments", chain(s.handleHistoryPayments))
	mux.Handle("GET /api/debts/derive", chain(s.handleDeriveDebt))

	return s
}

// OnSnapshotRefreshed records a refresh notification from the queue. Cached
// dashboard responses are keyed by snapshot version, so no eviction is
// needed; the next read simply computes against the new version.
func (s *Server) OnSnapshotRefreshed(msg *amqp.SnapshotRefreshedMessage) error {
	s.lastSeenVersion.Store(msg.Version)
	s.logger.Info("Snapshot refresh observed",
		log.FieldSnapshotVersion, msg.Version,
		log.FieldIncomeCount, msg.IncomeCount,
		log.FieldDebtCount, msg.DebtCount,
		log.FieldPaymentCount, msg.PaymentCount)
	return nil
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r.WithContext(r.Context()))

		s.logger.InfoContext(r.Context(), "HTTP request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldQuery, r.URL.RawQuery,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP(r))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
