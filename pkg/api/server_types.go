package api

import (
	"sync"
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

// MaxRequestBodyBytes caps incoming request bodies. Map payloads top out
// at 500 components and 2000 edges, which fits comfortably under 4 MiB.
const MaxRequestBodyBytes = 4 << 20

// Server represents the HTTP API server
type Server struct {
	cfg *config.Config
	log logging.Logger

	// catalogMu guards kb and scorer, which are swapped together on reload
	catalogMu sync.RWMutex
	kb        *knowledge.KnowledgeBase
	scorer    *scoring.Scorer

	analyzer *analysis.Analyzer

	graphqlHandler *graphql.GraphQLHandler

	jwtManager  *auth.JWTManager
	apiKeyStore *auth.APIKeyStore
	authEnabled bool

	metricsRegistry *metrics.Registry
	healthChecker   *health.HealthChecker
	rateLimiter     *middleware.RateLimiter

	// snapMu guards the snapshot served to GraphQL readers. Each analyze
	// or map request publishes a fresh one.
	snapMu   sync.RWMutex
	snapshot *graphql.Snapshot

	startTime time.Time
	version   string
}
