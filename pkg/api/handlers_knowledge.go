package api

import (
	"net/http"

	"github.com/dd0wney/cluso-strategy/pkg/logging"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// handleKnowledge serves the active pattern catalog as JSON.
// The export is built from the catalog that is live right now, so a
// SIGHUP reload is visible on the next request.
func (s *Server) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	s.catalogMu.RLock()
	kb := s.kb
	s.catalogMu.RUnlock()

	data, err := kb.ExportJSON()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "catalog export"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Error("Failed to write catalog export", logging.Error(err))
	}
}

// handleStages serves the evolution stage reference table.
func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	stages := []struct {
		stage    wardley.EvolutionStage
		interval string
	}{
		{wardley.StageGenesis, "[0.00, 0.25)"},
		{wardley.StageCustom, "[0.25, 0.55)"},
		{wardley.StageProduct, "[0.55, 0.80)"},
		{wardley.StageCommodity, "[0.80, 1.00]"},
	}

	infos := make([]StageInfo, 0, len(stages))
	for _, entry := range stages {
		infos = append(infos, StageInfo{
			Name:            entry.stage.String(),
			Range:           entry.interval,
			Score:           entry.stage.Score(),
			Characteristics: entry.stage.Characteristics(),
		})
	}

	s.respondJSON(w, http.StatusOK, StagesResponse{Stages: infos})
}

// handleGraphQL delegates to the GraphQL handler when schema generation
// succeeded at startup.
func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if s.graphqlHandler == nil {
		s.respondError(w, http.StatusServiceUnavailable, "GraphQL endpoint not available")
		return
	}
	s.graphqlHandler.ServeHTTP(w, r)
}
