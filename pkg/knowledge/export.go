package knowledge

import (
	"encoding/json"
	"strings"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

type exportPattern struct {
	Category          string   `json:"category"`
	DefaultStage      string   `json:"default_stage"`
	DefaultVisibility float64  `json:"default_visibility"`
	Aliases           []string `json:"aliases"`
}

type exportDocument struct {
	EvolutionCharacteristics map[string]wardley.StageCharacteristics `json:"evolution_characteristics"`
	Patterns                 map[string]exportPattern                `json:"patterns"`
	RulesCount               int                                     `json:"rules_count"`
	RulesByDomain            map[string]int                          `json:"rules_by_domain"`
}

// ExportJSON renders the whole catalog as indented JSON for inspection and
// for the knowledge API endpoint. Stage names are exported lowercase; map
// keys marshal sorted, so output is stable across runs.
func (kb *KnowledgeBase) ExportJSON() ([]byte, error) {
	doc := exportDocument{
		EvolutionCharacteristics: make(map[string]wardley.StageCharacteristics, 4),
		Patterns:                 make(map[string]exportPattern, len(kb.patterns)),
		RulesCount:               len(kb.rules),
		RulesByDomain:            make(map[string]int),
	}

	stages := []wardley.EvolutionStage{
		wardley.StageGenesis,
		wardley.StageCustom,
		wardley.StageProduct,
		wardley.StageCommodity,
	}
	for _, stage := range stages {
		doc.EvolutionCharacteristics[strings.ToLower(stage.String())] = stage.Characteristics()
	}

	for _, p := range kb.patterns {
		doc.Patterns[p.Name] = exportPattern{
			Category:          p.Category,
			DefaultStage:      strings.ToLower(p.Stage.String()),
			DefaultVisibility: p.Visibility,
			Aliases:           p.Aliases,
		}
	}

	for _, r := range kb.rules {
		doc.RulesByDomain[r.Domain]++
	}

	return json.MarshalIndent(doc, "", "  ")
}
