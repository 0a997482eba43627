package api

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/analysis"
	"github.com/dd0wney/cluso-strategy/pkg/api/middleware"
	"github.com/dd0wney/cluso-strategy/pkg/auth"
	"github.com/dd0wney/cluso-strategy/pkg/config"
	"github.com/dd0wney/cluso-strategy/pkg/graphql"
	"github.com/dd0wney/cluso-strategy/pkg/health"
	"github.com/dd0wney/cluso-strategy/pkg/knowledge"
	"github.com/dd0wney/cluso-strategy/pkg/logging"
	"github.com/dd0wney/cluso-strategy/pkg/metrics"
	"github.com/dd0wney/cluso-strategy/pkg/scoring"
)

// scorerProbeComponent is a catalog pattern every knowledge base ships
// with; the readiness check scores it and expects a confident commodity.
const scorerProbeComponent = "PostgreSQL"

// NewServer creates a new API server from configuration. A nil config
// gets defaults, a nil logger logs nowhere.
func NewServer(cfg *config.Config, log logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logging.NopLogger{}
	}

	// Build the knowledge base, extended by the configured catalog if any.
	// Catalog extensions load onto a private base so the shared Default()
	// singleton never accumulates entries across servers or reloads.
	// A broken catalog file is a startup error, not a silent fallback.
	kb := knowledge.Default()
	if cfg.Catalog.Path != "" {
		kb = knowledge.NewKnowledgeBase()
		if err := kb.LoadCatalog(cfg.Catalog.Path); err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog.Path, err)
		}
		log.Info("Loaded catalog extension",
			logging.Path(cfg.Catalog.Path),
			logging.Int("patterns", kb.PatternCount()),
			logging.Int("rules", kb.RuleCount()))
	}

	// Initialize authentication when enabled
	var jwtManager *auth.JWTManager
	var apiKeyStore *auth.APIKeyStore
	if cfg.Auth.Enabled {
		var err error
		jwtManager, err = auth.NewJWTManager(cfg.Auth.JWTSecret, auth.DefaultTokenDuration)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT manager: %w", err)
		}
		apiKeyStore = auth.NewAPIKeyStore(cfg.Auth.APIKeys)
		log.Info("Authentication enabled", logging.Int("api_keys", apiKeyStore.Len()))
	}

	metricsRegistry := metrics.DefaultRegistry()
	metricsRegistry.UpdateCatalogSize(kb.PatternCount(), kb.RuleCount())

	server := &Server{
		cfg:             cfg,
		log:             log,
		kb:              kb,
		scorer:          scoring.NewScorer(kb),
		analyzer:        analysis.NewAnalyzer(),
		jwtManager:      jwtManager,
		apiKeyStore:     apiKeyStore,
		authEnabled:     cfg.Auth.Enabled,
		metricsRegistry: metricsRegistry,
		healthChecker:   health.NewHealthChecker(),
		rateLimiter:     middleware.NewRateLimiter(nil),
		startTime:       time.Now(),
		version:         "1.0.0",
	}

	// Generate the GraphQL read schema over the published snapshot
	schema, err := graphql.GenerateSchema(server.currentSnapshot)
	if err != nil {
		log.Warn("Failed to generate GraphQL schema", logging.Error(err))
	} else {
		server.graphqlHandler = graphql.NewGraphQLHandler(schema)
	}

	server.registerHealthChecks()

	return server, nil
}

// registerHealthChecks wires the liveness, readiness, and general checks.
func (s *Server) registerHealthChecks() {
	s.healthChecker.RegisterLivenessCheck("api", func() health.Check {
		return health.SimpleCheck("api")
	})

	s.healthChecker.RegisterReadinessCheck("catalog", health.CatalogCheck(func() (int, int) {
		s.catalogMu.RLock()
		defer s.catalogMu.RUnlock()
		return s.kb.PatternCount(), s.kb.RuleCount()
	}))

	s.healthChecker.RegisterReadinessCheck("scorer", health.ScorerCheck(func() (string, float64, error) {
		s.catalogMu.RLock()
		scorer := s.scorer
		s.catalogMu.RUnlock()

		res := scorer.Score(scorerProbeComponent, scoring.NewContext(nil, ""))
		return strings.ToLower(res.Stage.String()), res.Confidence, nil
	}))

	s.healthChecker.RegisterCheck("config", health.ConfigCheck(s.cfg.Validate))

	s.healthChecker.RegisterCheck("memory", health.MemoryCheck(func() (uint64, uint64) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.Alloc, m.Sys
	}))
}

// currentSnapshot returns the latest published analysis snapshot, or nil
// before the first analyze or map request.
func (s *Server) currentSnapshot() *graphql.Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot
}

// publishSnapshot swaps in a fresh snapshot for GraphQL readers.
func (s *Server) publishSnapshot(snap *graphql.Snapshot) {
	s.snapMu.Lock()
	s.snapshot = snap
	s.snapMu.Unlock()
}
