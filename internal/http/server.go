// Package http exposes the savings ledger over a small JSON REST API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alfarizqi-test/tabungan/internal/cache"
	applog "github.com/alfarizqi-test/tabungan/internal/log"
)

// Rendered workbooks are cached briefly so repeated downloads do not
// rebuild the spreadsheet; any mutation purges the cache.
const (
	exportCacheSize = 16
	exportCacheTTL  = 30 * time.Second
)

type Server struct {
	http.Server
	ledger      LedgerService
	auth        AuthService
	rateLimiter *rateLimiter
	exportCache *cache.Cache[[]byte]
	logger      *applog.Logger

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ledger LedgerService, auth AuthService, logger *applog.Logger, mutationsPerMinute int) *Server {
	s := &Server{
		ledger:      ledger,
		auth:        auth,
		rateLimiter: newRateLimiter(mutationsPerMinute),
		exportCache: cache.New[[]byte](exportCacheSize, exportCacheTTL),
		logger:      logger.WithComponent(applog.ComponentHTTP),
	}

	r := chi.NewRouter()
	r.Use(applog.Middleware(s.logger))
	r.Use(s.withRequestLogging)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Post("/api/login", s.handleLogin)
	r.Get("/api/export", s.handleExportAll)
	r.Route("/api/students", func(r chi.Router) {
		r.Get("/", s.handleListStudents)
		r.Get("/{id}", s.handleGetStudent)
		r.Get("/{id}/export", s.handleExportStudent)
		r.Post("/{id}/transactions", s.handleCreateTransaction)
		r.Delete("/{id}/transactions/{txID}", s.handleDeleteTransaction)
	})

	s.Server = http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Shutdown stops the HTTP server and the rate limiter cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withRequestLogging adds a request ID, security headers, rate limiting
// for mutation requests, and start/completion logging.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		ip := clientIP(r)

		reqLogger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.WithLogger(r.Context(), reqLogger)
		r = r.WithContext(ctx)

		reqLogger.InfoContext(ctx, "Request started",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, ip,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		if (r.Method == http.MethodPost || r.Method == http.MethodDelete) && !s.rateLimiter.allow(ip) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, ip,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Terlalu banyak permintaan, coba lagi nanti")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		reqLogger.InfoContext(ctx, "Request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, ip)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
