package scoring

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// Rationale explains a scoring decision in narrative form, one line per
// axis plus the stage and visibility labels the scores fall into.
type Rationale struct {
	Component       string `json:"component"`
	EvolutionStage  string `json:"evolution_stage"`
	VisibilityLevel string `json:"visibility_level"`
	Evolution       string `json:"evolution_rationale"`
	Visibility      string `json:"visibility_rationale"`
}

// Rationale describes why a component landed at its scored position.
func (s *Scorer) Rationale(name string, res Result) Rationale {
	stage := wardley.StageForScore(res.Evolution)
	level := wardley.VisibilityLevel(res.Visibility)
	return Rationale{
		Component:       name,
		EvolutionStage:  stage.String(),
		VisibilityLevel: level,
		Evolution:       s.evolutionRationale(name, stage),
		Visibility:      visibilityRationale(name, level),
	}
}

func (s *Scorer) evolutionRationale(name string, stage wardley.EvolutionStage) string {
	if p, ok := s.kb.LookupPattern(name); ok {
		return fmt.Sprintf("Matches known %s pattern (%s)", p.Category, strings.ToLower(p.Stage.String()))
	}

	nameLower := strings.ToLower(name)
	switch {
	case containsAny(nameLower, "database", "storage"):
		return "Infrastructure component typically at commodity stage"
	case containsAny(nameLower, "algorithm", "model"):
		return "ML/algorithmic component - custom or product stage"
	}
	return fmt.Sprintf("Positioned in %s based on context analysis", stage)
}

func visibilityRationale(name, level string) string {
	nameLower := strings.ToLower(name)
	switch {
	case containsAny(nameLower, "customer", "user", "interface"):
		return "Directly visible to customers/users"
	case containsAny(nameLower, "database", "infrastructure"):
		return "Hidden infrastructure - not directly user-visible"
	case containsAny(nameLower, "api", "service"):
		return "Integration layer - medium visibility"
	}
	return fmt.Sprintf("Positioned at %s based on user exposure", level)
}
