// Package scoring positions components on the strategic map. The scorer is
// a total function: every name resolves to an (evolution, visibility) point
// through a strict fallback chain, with a confidence that reports which
// tier produced the answer. Exact pattern matches are trusted most, the
// numeric default least.
package scoring

import (
	"github.com/dd0wney/cluso-strategy/pkg/knowledge"
	"github.com/dd0wney/cluso-strategy/pkg/match"
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// Method identifies which tier of the fallback chain produced a result.
type Method string

const (
	MethodPattern Method = "pattern"
	MethodFuzzy   Method = "fuzzy"
	MethodRule    Method = "rule"
	MethodKeyword Method = "keyword"
	MethodDefault Method = "default"
)

// Per-tier confidence levels. Fuzzy confidence scales with the match
// similarity, so a borderline fuzzy hit ranks below a strong one.
const (
	exactConfidence   = 0.95
	fuzzyConfidence   = 0.85
	keywordConfidence = 0.5
	defaultConfidence = 0.3
)

// Result is one scoring outcome. Pattern is set when tier 1 or 2 matched.
type Result struct {
	Evolution  float64                     `json:"evolution"`
	Visibility float64                     `json:"visibility"`
	Confidence float64                     `json:"confidence"`
	Stage      wardley.EvolutionStage      `json:"stage"`
	Method     Method                      `json:"method"`
	Pattern    *knowledge.ComponentPattern `json:"pattern,omitempty"`
}

// Scorer positions components using a knowledge base. Construct one per
// knowledge base; the scorer itself is stateless and safe for concurrent
// use as long as the knowledge base is no longer being extended.
type Scorer struct {
	kb *knowledge.KnowledgeBase
}

// NewScorer builds a scorer over the given knowledge base. A nil knowledge
// base gets the shared default catalog.
func NewScorer(kb *knowledge.KnowledgeBase) *Scorer {
	if kb == nil {
		kb = knowledge.Default()
	}
	return &Scorer{kb: kb}
}

// Score resolves a component name and context to a map position. It never
// fails: the fallback chain always terminates with a value, so callers can
// score arbitrary free-text names without pre-validation.
func (s *Scorer) Score(name string, ctx Context) Result {
	// Tier 1: exact pattern match.
	if p, ok := s.kb.LookupPattern(name); ok {
		return Result{
			Evolution:  p.Stage.Score(),
			Visibility: p.Visibility,
			Confidence: exactConfidence,
			Stage:      p.Stage,
			Method:     MethodPattern,
			Pattern:    p,
		}
	}

	// Tier 2: fuzzy pattern match.
	if p, sim, ok := s.fuzzyLookup(name); ok {
		return Result{
			Evolution:  p.Stage.Score(),
			Visibility: p.Visibility,
			Confidence: fuzzyConfidence * sim,
			Stage:      p.Stage,
			Method:     MethodFuzzy,
			Pattern:    p,
		}
	}

	// Tier 3: heuristic rules. Rules target the evolution axis only;
	// visibility still comes from the keyword chain.
	if rule, ok := s.bestRule(ctx); ok {
		vis, _ := visibilityByKeywords(name, ctx)
		return Result{
			Evolution:  rule.Stage.Score(),
			Visibility: vis,
			Confidence: rule.Confidence,
			Stage:      rule.Stage,
			Method:     MethodRule,
		}
	}

	// Tier 4: keyword weighting. Tier 5: numeric default when no keyword
	// signal fired on either axis.
	evo, evoFired := evolutionByKeywords(name, ctx)
	vis, visFired := visibilityByKeywords(name, ctx)
	method, conf := MethodKeyword, keywordConfidence
	if !evoFired && !visFired {
		method, conf = MethodDefault, defaultConfidence
	}
	return Result{
		Evolution:  evo,
		Visibility: vis,
		Confidence: conf,
		Stage:      wardley.StageForScore(evo),
		Method:     method,
	}
}

// ScoreComponent scores a name and assembles the resulting component.
// Category is filled from the matched pattern when one matched.
func (s *Scorer) ScoreComponent(name string, ctx Context) wardley.Component {
	res := s.Score(name, ctx)
	c := wardley.Component{
		Name:        name,
		Evolution:   res.Evolution,
		Visibility:  res.Visibility,
		Description: ctx.Description,
		Confidence:  res.Confidence,
	}
	if res.Pattern != nil {
		c.Category = res.Pattern.Category
	}
	return c
}

// fuzzyLookup finds the pattern with the best similarity to name across
// canonical names and aliases. Patterns are walked in catalog order and
// ties keep the earlier pattern, so results are deterministic. Blank names
// carry no signal and never fuzzy-match (the empty string is a substring
// of everything).
func (s *Scorer) fuzzyLookup(name string) (*knowledge.ComponentPattern, float64, bool) {
	if wardley.Key(name) == "" {
		return nil, 0, false
	}

	var best *knowledge.ComponentPattern
	bestSim := 0.0

	for _, p := range s.kb.Patterns() {
		sim := match.Similarity(name, p.Name)
		for _, alias := range p.Aliases {
			if aliasSim := match.Similarity(name, alias); aliasSim > sim {
				sim = aliasSim
			}
		}
		if sim > bestSim {
			best = &p
			bestSim = sim
		}
	}

	if best == nil || bestSim < match.DefaultThreshold {
		return nil, 0, false
	}
	return best, bestSim, true
}

// bestRule picks the applicable rule with the highest (priority,
// confidence), compared lexicographically. Ties keep the first registered
// rule.
func (s *Scorer) bestRule(ctx Context) (knowledge.HeuristicRule, bool) {
	var best knowledge.HeuristicRule
	found := false
	for _, r := range s.kb.Rules() {
		if !ctx.Flag(r.Condition) {
			continue
		}
		if !found || r.Priority > best.Priority ||
			(r.Priority == best.Priority && r.Confidence > best.Confidence) {
			best = r
			found = true
		}
	}
	return best, found
}
