// Package http exposes the ledger over a JSON API plus a few binary
// endpoints (XLSX export, PNG charts).
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"kwanzaflow/internal/backend"
	"kwanzaflow/internal/cache"
	"kwanzaflow/internal/core"
	applog "kwanzaflow/internal/log"
)

// Server wraps http.Server with the ledger backend, a read cache and the
// security middleware state.
type Server struct {
	http.Server

	backend backend.Backend
	logger  *applog.Logger

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// ledgerCache holds the full transaction list every view derives from.
	// Mutations purge it; reads within the TTL skip the backend entirely.
	ledgerCache  *cache.LRUCache[[]core.Transaction]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, b backend.Backend, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		backend:      b,
		logger:       logger.WithComponent(applog.ComponentHTTP),
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		ledgerCache:  cache.NewLRUCache[[]core.Transaction](4, time.Minute),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.ledgerCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withMiddleware(s.handleTransactionByID))
	mux.HandleFunc("/api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("/api/budget", s.withMiddleware(s.handleBudget))
	mux.HandleFunc("/api/income", s.withMiddleware(s.handleIncome))
	mux.HandleFunc("/api/goals", s.withMiddleware(s.handleGoals))
	mux.HandleFunc("/api/investments", s.withMiddleware(s.handleInvestments))
	mux.HandleFunc("/api/simulate", s.withMiddleware(s.handleSimulate))
	mux.HandleFunc("/api/planning", s.withMiddleware(s.handlePlanning))
	mux.HandleFunc("/api/export/expenses.xlsx", s.withMiddleware(s.handleExportExpenses))
	mux.HandleFunc("/charts/cashflow.png", s.withMiddleware(s.handleCashflowChart))
	mux.HandleFunc("/charts/income.png", s.withMiddleware(s.handleIncomeChart))
	mux.HandleFunc("/charts/simulation.png", s.withMiddleware(s.handleSimulationChart))

	return s
}

// Shutdown stops the cleanup goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

const ledgerCacheKey = "ledger"

// listTransactions reads the full ledger through the cache.
func (s *Server) listTransactions(ctx context.Context) ([]core.Transaction, error) {
	if list, found := s.ledgerCache.Get(ledgerCacheKey); found {
		s.logger.DebugContext(ctx, "ledger cache hit", "count", len(list))
		out := make([]core.Transaction, len(list))
		copy(out, list)
		return out, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	list, err := s.backend.ListTransactions(cctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	s.ledgerCache.Set(ledgerCacheKey, list)
	out := make([]core.Transaction, len(list))
	copy(out, list)
	return out, nil
}

// invalidateLedger drops every cached view after a mutation.
func (s *Server) invalidateLedger() {
	s.ledgerCache.Purge()
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if detectSuspiciousRequest(r, s.metrics) {
			s.logger.WarnContext(ctx, "suspicious request",
				applog.FieldRequestID, requestID,
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
		}

		// Mutations are rate limited, reads are not.
		if (r.Method == http.MethodPost || r.Method == http.MethodDelete) && !s.rateLimiter.allow(clientIP, s.metrics) {
			s.logger.WarnContext(ctx, "rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if _, err := s.backend.ListGoals(ctx); err != nil {
		s.logger.ErrorContext(ctx, "readiness check failed", applog.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, "backend unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleMetrics exposes process counters for scraping.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rate_limit_hits":     atomic.LoadInt64(&s.metrics.rateLimitHits),
		"suspicious_requests": atomic.LoadInt64(&s.metrics.suspiciousRequests),
		"cache_entries":       s.ledgerCache.Size(),
	})
}
