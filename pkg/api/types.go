package api

import (
	"encoding/json"

	"github.com/dd0wney/cluso-strategy/pkg/layout"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// API Request/Response Types
//
// Request bodies decode directly into pkg/validation types, which carry
// the struct tags. This file holds only the response shapes.

// ScoreResponse positions a single component with the reasoning behind it.
type ScoreResponse struct {
	Name                string  `json:"name"`
	Evolution           float64 `json:"evolution"`
	Visibility          float64 `json:"visibility"`
	Confidence          float64 `json:"confidence"`
	Stage               string  `json:"stage"`
	VisibilityLevel     string  `json:"visibility_level"`
	Method              string  `json:"method"`
	EvolutionRationale  string  `json:"evolution_rationale"`
	VisibilityRationale string  `json:"visibility_rationale"`
	Time                string  `json:"time"`
}

// BatchScoreResponse carries one result per requested component, in order.
type BatchScoreResponse struct {
	Results []ScoreResponse `json:"results"`
	Count   int             `json:"count"`
	Time    string          `json:"time"`
}

// AnalysisSummary is the condensed analysis block: name lists per finding
// category plus the trajectory and critical path.
type AnalysisSummary struct {
	TotalComponents          int               `json:"total_components"`
	TotalDependencies        int               `json:"total_dependencies"`
	CompetitiveAdvantages    []string          `json:"competitive_advantages"`
	Vulnerabilities          []string          `json:"vulnerabilities"`
	Opportunities            []string          `json:"opportunities"`
	Threats                  []string          `json:"threats"`
	StrategicRecommendations []string          `json:"strategic_recommendations"`
	EvolutionTrajectory      map[string]string `json:"evolution_trajectory"`
	CriticalPath             []string          `json:"critical_path"`
}

// AnalyzeResponse is the full strategic analysis of a submitted map.
type AnalyzeResponse struct {
	Success        bool                       `json:"success"`
	Analysis       AnalysisSummary            `json:"analysis"`
	MarkdownReport string                     `json:"markdown_report"`
	InsightsCount  int                        `json:"insights_count"`
	Insights       []wardley.StrategicInsight `json:"insights"`
	Time           string                     `json:"time"`
}

// MapComponent is one positioned component in a map response.
type MapComponent struct {
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"`
	Evolution       float64         `json:"evolution"`
	Visibility      float64         `json:"visibility"`
	Stage           string          `json:"stage"`
	VisibilityLevel string          `json:"visibility_level"`
	Confidence      float64         `json:"confidence"`
	Position        layout.Position `json:"position"`
}

// MapResponse is a complete built map: scored components with layout
// positions, the analysis, and a render-ready visualization document.
type MapResponse struct {
	Success         bool                       `json:"success"`
	Components      []MapComponent             `json:"components"`
	Dependencies    []wardley.Dependency       `json:"dependencies"`
	ComponentCount  int                        `json:"component_count"`
	DependencyCount int                        `json:"dependency_count"`
	Analysis        AnalysisSummary            `json:"analysis"`
	Insights        []wardley.StrategicInsight `json:"insights"`
	MarkdownReport  string                     `json:"markdown_report"`
	Visualization   json.RawMessage            `json:"visualization"`
	Time            string                     `json:"time"`
}

// StageInfo describes one evolution stage for the reference endpoint.
type StageInfo struct {
	Name            string                       `json:"name"`
	Range           string                       `json:"range"`
	Score           float64                      `json:"score"`
	Characteristics wardley.StageCharacteristics `json:"characteristics"`
}

// StagesResponse lists the four evolution stages in order.
type StagesResponse struct {
	Stages []StageInfo `json:"stages"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
