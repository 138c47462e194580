package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"foodloss/internal/core"
	applog "foodloss/internal/log"
	"foodloss/internal/middleware/trace"
)

// Inventory is what the HTTP layer needs from the inventory service.
type Inventory interface {
	RegisterIngredient(ctx context.Context, in core.NewIngredient) (int64, error)
	ListIngredients(ctx context.Context) ([]core.ClassifiedIngredient, error)
	AddContribution(ctx context.Context, grams float64) (int64, error)
	Contribution(ctx context.Context) (core.ContributionSummary, error)
	Ready(ctx context.Context) error
}

// Options tunes the server; zero values select defaults.
type Options struct {
	RateLimitPerMinute int
	Logger             *applog.Logger
}

type Server struct {
	http.Server
	inventory    Inventory
	logger       *applog.Logger
	rateLimiter  *rateLimiter
	metrics      *securityMetrics
	tracer       *trace.Middleware
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, inv Inventory, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		inventory:   inv,
		logger:      logger,
		rateLimiter: newRateLimiter(opts.RateLimitPerMinute),
		metrics:     &securityMetrics{},
	}
	s.tracer = trace.NewMiddleware(logger, extractClientIP)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/ingredients", s.withSecurity(s.handleIngredients))
	mux.HandleFunc("/api/contribution", s.withSecurity(s.handleContribution))
	mux.HandleFunc("/api/contribution/add", s.withSecurity(s.handleAddContribution))
	mux.HandleFunc("/", s.withSecurity(handleNotFound))

	s.Handler = s.tracer.Middleware(mux)
	return s
}

// withSecurity adds security headers, suspicious-request logging and POST rate limiting.
func (s *Server) withSecurity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := applog.FromContext(ctx)
		clientIP := extractClientIP(r)

		setSecurityHeaders(w.Header())

		if detectSuspiciousRequest(r, s.metrics) {
			logger.WarnContext(ctx, "Suspicious request detected",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldUserAgent, r.Header.Get("User-Agent"))
		}

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
			logger.WithComponent(applog.ComponentRateLimit).WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path)
			TooManyRequestsError().Write(w)
			return
		}

		next(w, r)
	}
}

// Shutdown stops background routines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
		hits, suspicious := s.metrics.snapshot()
		s.logger.Info("HTTP server stopped",
			applog.FieldOperation, applog.OpShutdown,
			"rate_limit_hits", hits,
			"suspicious_requests", suspicious)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.inventory.Ready(ctx); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Readiness check failed", applog.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError().Write(w)
}
