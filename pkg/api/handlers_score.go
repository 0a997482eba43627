package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/scoring"
	"github.com/dd0wney/cluso-strategy/pkg/validation"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req validation.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateScoreRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	scorer := s.currentScorer()

	res := scorer.Score(req.Name, scoring.NewContext(req.Context, req.Description))
	rationale := scorer.Rationale(req.Name, res)

	elapsed := time.Since(start)
	s.metricsRegistry.RecordScore(string(res.Method), res.Confidence, elapsed)

	s.respondJSON(w, http.StatusOK, newScoreResponse(req.Name, res, rationale, elapsed))
}

func (s *Server) handleScoreBatch(w http.ResponseWriter, r *http.Request) {
	var req validation.BatchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateBatchScoreRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	scorer := s.currentScorer()

	results := make([]ScoreResponse, 0, len(req.Components))
	for _, c := range req.Components {
		itemStart := time.Now()
		res := scorer.Score(c.Name, scoring.NewContext(c.Context, c.Description))
		rationale := scorer.Rationale(c.Name, res)
		itemElapsed := time.Since(itemStart)

		s.metricsRegistry.RecordScore(string(res.Method), res.Confidence, itemElapsed)
		results = append(results, newScoreResponse(c.Name, res, rationale, itemElapsed))
	}

	s.respondJSON(w, http.StatusOK, BatchScoreResponse{
		Results: results,
		Count:   len(results),
		Time:    time.Since(start).String(),
	})
}

func newScoreResponse(name string, res scoring.Result, rationale scoring.Rationale, elapsed time.Duration) ScoreResponse {
	return ScoreResponse{
		Name:                name,
		Evolution:           res.Evolution,
		Visibility:          res.Visibility,
		Confidence:          res.Confidence,
		Stage:               res.Stage.String(),
		VisibilityLevel:     wardley.VisibilityLevel(res.Visibility),
		Method:              string(res.Method),
		EvolutionRationale:  rationale.Evolution,
		VisibilityRationale: rationale.Visibility,
		Time:                elapsed.String(),
	}
}
