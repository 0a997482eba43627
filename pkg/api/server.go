package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dd0wney/cluso-strategy/pkg/api/middleware"
	"github.com/dd0wney/cluso-strategy/pkg/knowledge"
	"github.com/dd0wney/cluso-strategy/pkg/logging"
	"github.com/dd0wney/cluso-strategy/pkg/scoring"
)

// Handler builds the full HTTP handler: routes plus the middleware chain.
// Callers mount it on their own http.Server (the server command wraps it
// in a GracefulServer).
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	// Health and metrics stay outside auth so probes and scrapers work
	// without credentials.
	router.HandleFunc("/health", s.healthChecker.HTTPHandler()).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", s.healthChecker.ReadinessHandler()).Methods(http.MethodGet)
	router.HandleFunc("/health/live", s.healthChecker.LivenessHandler()).Methods(http.MethodGet)
	router.Handle("/metrics", s.metricsRegistry.Handler()).Methods(http.MethodGet)

	// Scoring endpoints
	router.HandleFunc("/api/v1/score", s.requireAuth(s.handleScore)).
		Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/v1/score/batch", s.requireAuth(s.handleScoreBatch)).
		Methods(http.MethodPost, http.MethodOptions)

	// Map endpoints. These publish the GraphQL snapshot, so they need the
	// editor role when auth is on.
	router.HandleFunc("/api/v1/analyze", s.requireEditor(s.handleAnalyze)).
		Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/v1/map", s.requireEditor(s.handleMap)).
		Methods(http.MethodPost, http.MethodOptions)

	// Knowledge endpoints
	router.HandleFunc("/api/v1/knowledge", s.requireAuth(s.handleKnowledge)).
		Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/v1/stages", s.requireAuth(s.handleStages)).
		Methods(http.MethodGet, http.MethodOptions)

	// GraphQL endpoint
	router.HandleFunc("/api/v1/graphql", s.requireAuth(s.handleGraphQL)).
		Methods(http.MethodPost, http.MethodOptions)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = s.cfg.Server.CORSOrigins

	// First registered runs first, so recovery wraps everything and the
	// request ID exists before logging reads it. OPTIONS requests are
	// answered inside the CORS middleware and never reach a handler.
	router.Use(
		middleware.PanicRecovery(s.log),
		middleware.RateLimit(s.rateLimiter, clientIP, s.onRateLimited),
		middleware.SecurityHeaders(&middleware.SecurityHeadersConfig{}),
		middleware.CORS(corsConfig),
		middleware.RequestID(),
		middleware.Logging(s.log, middleware.GetRequestID),
		middleware.Metrics(s.metricsRegistry),
		middleware.BodySizeLimit(MaxRequestBodyBytes),
	)

	return router
}

// onRateLimited records limited requests; the middleware writes the 429.
func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request, clientID string) {
	s.log.Warn("Rate limit exceeded",
		logging.String("client", clientID),
		logging.Path(r.URL.Path))
}

// ReloadCatalog rebuilds the knowledge base from the configured catalog
// path and swaps in a fresh scorer. With no catalog path configured it is
// a no-op, so a stray SIGHUP cannot clear defaults. In-flight requests
// keep the scorer they started with.
func (s *Server) ReloadCatalog() error {
	if s.cfg.Catalog.Path == "" {
		return nil
	}

	kb := knowledge.NewKnowledgeBase()
	if err := kb.LoadCatalog(s.cfg.Catalog.Path); err != nil {
		s.metricsRegistry.RecordCatalogReload("error")
		return fmt.Errorf("failed to reload catalog %s: %w", s.cfg.Catalog.Path, err)
	}

	s.catalogMu.Lock()
	s.kb = kb
	s.scorer = scoring.NewScorer(kb)
	s.catalogMu.Unlock()

	s.metricsRegistry.RecordCatalogReload("success")
	s.metricsRegistry.UpdateCatalogSize(kb.PatternCount(), kb.RuleCount())
	s.log.Info("Catalog reloaded",
		logging.Path(s.cfg.Catalog.Path),
		logging.Int("patterns", kb.PatternCount()),
		logging.Int("rules", kb.RuleCount()))
	return nil
}

// UpdateSystemMetricsPeriodically refreshes uptime and runtime gauges
// every 10 seconds until stop closes.
func (s *Server) UpdateSystemMetricsPeriodically(stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.metricsRegistry.UpdateSystemMetrics(s.startTime)
		case <-stop:
			return
		}
	}
}

// Close releases background resources, currently the rate limiter's
// cleanup goroutine.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}
