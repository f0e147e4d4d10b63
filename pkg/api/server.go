package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/protovet/protovet/pkg/config"
	"github.com/protovet/protovet/pkg/httputil"
	"github.com/protovet/protovet/pkg/lint"
	"github.com/protovet/protovet/pkg/observability"
)

// Server represents the linting API server
type Server struct {
	router  *mux.Router
	logger  *observability.Logger
	metrics *observability.Metrics
	health  *observability.HealthChecker
	cache   *resultCache
	options *lint.Options
	cfg     *config.Config
	handler http.Handler
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, logger *observability.Logger, metrics *observability.Metrics, version string) (*Server, error) {
	s := &Server{
		router:  mux.NewRouter(),
		logger:  logger,
		metrics: metrics,
		health:  observability.NewHealthChecker(version),
		cfg:     cfg,
	}

	if cfg.Lint.CacheEnabled {
		cache, err := newResultCache(cfg.Lint.CacheSize, metrics)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	if cfg.Lint.OptionsFile != "" {
		opts, err := lint.LoadOptions(cfg.Lint.OptionsFile)
		if err != nil {
			return nil, err
		}
		s.options = opts
		logger.WithField("path", cfg.Lint.OptionsFile).Info("Loaded lint options")
	}

	s.setupRoutes()
	s.setupMiddleware()
	return s, nil
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Lint routes
	s.router.HandleFunc("/api/v1/validate", s.handleValidate).Methods("POST")
	s.router.HandleFunc("/api/v1/format", s.handleFormat).Methods("POST")
	s.router.HandleFunc("/api/v1/rules", s.handleRules).Methods("GET")

	// Probe routes
	s.router.HandleFunc("/healthz", s.health.Liveness).Methods("GET")
	s.router.HandleFunc("/readyz", s.health.Readiness).Methods("GET")

	// Metrics endpoint
	if s.cfg.Observability.MetricsEnabled {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}
}

// setupMiddleware wraps the router with the shared middleware chain
func (s *Server) setupMiddleware() {
	chain := httputil.Chain(
		httputil.RequestIDMiddleware,
		s.contextMiddleware,
		httputil.LoggingMiddleware,
		httputil.RecoveryMiddleware,
		httputil.CORSMiddleware([]string{"*"}),
		httputil.MaxBytesMiddleware(s.cfg.Server.MaxRequestBytes),
		s.metrics.Middleware,
	)

	handler := chain(s.router)
	if s.cfg.Observability.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "protovet-api")
	}
	s.handler = handler
}

// contextMiddleware seeds the request context with the logger and the
// request ID assigned upstream
func (s *Server) contextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.WithLogger(r.Context(), s.logger)
		if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
			ctx = observability.WithRequestID(ctx, requestID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
