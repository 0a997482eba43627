package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/dd0wney/cluso-strategy/pkg/logging"
	"github.com/dd0wney/cluso-strategy/pkg/scoring"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Error encoding JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	s.respondJSON(w, status, response)
}

// sanitizeError converts an internal error to a user-safe message.
// The full error is logged but not exposed to the client.
func (s *Server) sanitizeError(err error, operation string) string {
	if err == nil {
		return ""
	}
	s.log.Error("Operation failed", logging.Operation(operation), logging.Error(err))
	return fmt.Sprintf("%s failed", operation)
}

// currentScorer returns the scorer under the catalog lock, so a reload
// mid-request swaps cleanly between requests rather than within one.
func (s *Server) currentScorer() *scoring.Scorer {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	return s.scorer
}

// clientIP extracts the client address for rate limiting. The port is
// stripped so one client maps to one bucket across connections.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// summarizeAnalysis condenses a full analysis into the wire summary block.
func summarizeAnalysis(a *wardley.MapAnalysis) AnalysisSummary {
	summary := AnalysisSummary{
		TotalComponents:          a.TotalComponents,
		TotalDependencies:        a.TotalDependencies,
		CompetitiveAdvantages:    emptyIfNil(a.CompetitiveAdvantages),
		Vulnerabilities:          emptyIfNil(a.Vulnerabilities),
		Opportunities:            emptyIfNil(a.Opportunities),
		Threats:                  emptyIfNil(a.Threats),
		StrategicRecommendations: emptyIfNil(a.StrategicRecommendations),
		EvolutionTrajectory:      a.EvolutionTrajectory,
		CriticalPath:             emptyIfNil(a.CriticalPath),
	}
	if summary.EvolutionTrajectory == nil {
		summary.EvolutionTrajectory = map[string]string{}
	}
	return summary
}

// emptyIfNil keeps JSON arrays as [] instead of null.
func emptyIfNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
