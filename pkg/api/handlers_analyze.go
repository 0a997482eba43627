package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/analysis"
	"github.com/dd0wney/cluso-strategy/pkg/graphql"
	"github.com/dd0wney/cluso-strategy/pkg/scoring"
	"github.com/dd0wney/cluso-strategy/pkg/validation"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req validation.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateAnalyzeRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg, ok := s.checkAnalysisLimits(len(req.Components), len(req.Dependencies)); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.AnalyzeTimeout)
	defer cancel()

	start := time.Now()
	components := s.buildComponents(req.Components)
	deps := buildDependencies(req.Dependencies)

	// Check for cancellation before the expensive passes
	select {
	case <-ctx.Done():
		s.respondError(w, http.StatusRequestTimeout, "Analysis timed out")
		return
	default:
	}

	s.metricsRegistry.ActiveAnalyses.Inc()
	result, err := s.analyzer.Analyze(components, deps)
	s.metricsRegistry.ActiveAnalyses.Dec()
	if err != nil {
		s.metricsRegistry.RecordAnalysis("error", len(components), time.Since(start))
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "analysis"))
		return
	}

	elapsed := time.Since(start)
	s.metricsRegistry.RecordAnalysis("success", len(components), elapsed)
	for _, insight := range result.Insights {
		s.metricsRegistry.RecordInsight(string(insight.Type))
	}

	s.publishSnapshot(&graphql.Snapshot{
		Components: components,
		Analysis:   result,
		TakenAt:    time.Now(),
	})

	s.respondJSON(w, http.StatusOK, AnalyzeResponse{
		Success:        true,
		Analysis:       summarizeAnalysis(result),
		MarkdownReport: analysis.Report(result),
		InsightsCount:  len(result.Insights),
		Insights:       insightsOrEmpty(result.Insights),
		Time:           elapsed.String(),
	})
}

// checkAnalysisLimits enforces the configured map-size caps, which can be
// tighter than the request validation maxima.
func (s *Server) checkAnalysisLimits(components, deps int) (string, bool) {
	if components > s.cfg.Analysis.MaxComponents {
		return fmt.Sprintf("too many components: %d (max %d)", components, s.cfg.Analysis.MaxComponents), false
	}
	if deps > s.cfg.Analysis.MaxDependencies {
		return fmt.Sprintf("too many dependencies: %d (max %d)", deps, s.cfg.Analysis.MaxDependencies), false
	}
	return "", true
}

// buildComponents turns raw inputs into scored components. Coordinates
// supplied by the caller override the scorer per axis; a component with
// both supplied is taken as ground truth.
func (s *Server) buildComponents(inputs []validation.ComponentInput) []wardley.Component {
	scorer := s.currentScorer()

	components := make([]wardley.Component, 0, len(inputs))
	for _, in := range inputs {
		c := scorer.ScoreComponent(in.Name, scoring.NewContext(in.Context, in.Description))
		if in.Evolution != nil {
			c.Evolution = *in.Evolution
		}
		if in.Visibility != nil {
			c.Visibility = *in.Visibility
		}
		if in.Evolution != nil && in.Visibility != nil {
			c.Confidence = 1.0
		}
		if in.Category != "" {
			c.Category = in.Category
		}
		components = append(components, c)
	}
	return components
}

func buildDependencies(inputs []validation.DependencyInput) []wardley.Dependency {
	deps := make([]wardley.Dependency, 0, len(inputs))
	for _, in := range inputs {
		deps = append(deps, wardley.Dependency{
			Source: in.Source,
			Target: in.Target,
			Type:   wardley.ParseDependencyType(in.Type),
		})
	}
	return deps
}

func insightsOrEmpty(insights []wardley.StrategicInsight) []wardley.StrategicInsight {
	if insights == nil {
		return []wardley.StrategicInsight{}
	}
	return insights
}
