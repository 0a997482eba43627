package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/analysis"
	"github.com/dd0wney/cluso-strategy/pkg/graphql"
	"github.com/dd0wney/cluso-strategy/pkg/layout"
	"github.com/dd0wney/cluso-strategy/pkg/validation"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var req validation.MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateMapRequest(&req); err != nil {
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

	select {
	case <-ctx.Done():
		s.respondError(w, http.StatusRequestTimeout, "Map build timed out")
		return
	default:
	}

	s.metricsRegistry.ActiveAnalyses.Inc()
	result, err := s.analyzer.Analyze(components, deps)
	s.metricsRegistry.ActiveAnalyses.Dec()
	if err != nil {
		s.metricsRegistry.RecordAnalysis("error", len(components), time.Since(start))
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "map analysis"))
		return
	}

	// Lay the map out, with per-request canvas overrides
	layoutCfg := s.cfg.LayoutDefaults()
	if req.Width > 0 {
		layoutCfg.Width = req.Width
	}
	if req.Height > 0 {
		layoutCfg.Height = req.Height
	}
	positions := layout.ComputeLayout(components, layoutCfg)

	viz := layout.Visualization{
		Components:   components,
		Dependencies: deps,
		Positions:    positions,
	}
	vizJSON, err := viz.ExportJSON()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "map export"))
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

	mapComponents := make([]MapComponent, 0, len(components))
	for _, c := range components {
		mapComponents = append(mapComponents, MapComponent{
			Name:            c.Name,
			Category:        c.Category,
			Evolution:       c.Evolution,
			Visibility:      c.Visibility,
			Stage:           c.Stage().String(),
			VisibilityLevel: wardley.VisibilityLevel(c.Visibility),
			Confidence:      c.Confidence,
			Position:        positions[c.Name],
		})
	}

	s.respondJSON(w, http.StatusOK, MapResponse{
		Success:         true,
		Components:      mapComponents,
		Dependencies:    deps,
		ComponentCount:  len(components),
		DependencyCount: len(deps),
		Analysis:        summarizeAnalysis(result),
		Insights:        insightsOrEmpty(result.Insights),
		MarkdownReport:  analysis.Report(result),
		Visualization:   json.RawMessage(vizJSON),
		Time:            elapsed.String(),
	})
}
