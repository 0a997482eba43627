// Package knowledge holds the pattern and rule catalog behind component
// positioning: known-technology patterns with default map positions, the
// narrative characteristics of each evolution stage, and conditional
// heuristic rules grouped by domain. The catalog is assembled once at
// startup and read-only afterwards.
package knowledge

import (
	"sync"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// ComponentPattern is a known-technology template. A component whose name
// matches the canonical name or any alias inherits the pattern's default
// stage and visibility.
type ComponentPattern struct {
	Name       string                 `json:"name"`
	Category   string                 `json:"category"`
	Stage      wardley.EvolutionStage `json:"default_stage"`
	Visibility float64                `json:"default_visibility"`
	Aliases    []string               `json:"aliases,omitempty"`
}

// HeuristicRule positions a component on the evolution axis when its
// condition flag is set in the scoring context. Condition is a flattened
// lowercase key ("is_infrastructure_or_is_hosting"); there is no expression
// evaluation, just a single boolean lookup.
type HeuristicRule struct {
	Condition  string                 `json:"condition"`
	Stage      wardley.EvolutionStage `json:"stage"`
	Confidence float64                `json:"confidence"`
	Domain     string                 `json:"domain"`
	Priority   int                    `json:"priority"`
}

// Rule domains group heuristics by the mapping perspective they encode.
const (
	DomainTechnical   = "technical"
	DomainBusiness    = "business"
	DomainCompetitive = "competitive"
	DomainFinancial   = "financial"
)

// KnowledgeBase is the read-only catalog consulted by the scorer. Patterns
// and rules keep registration order so lookups and tie-breaks are
// deterministic. AddPattern/AddRule are init-time extension points and are
// not safe to call concurrently with readers.
type KnowledgeBase struct {
	patterns []ComponentPattern
	index    map[string]int // lowercased canonical name / alias -> patterns slot
	rules    []HeuristicRule
}

// NewKnowledgeBase builds a knowledge base preloaded with the default
// pattern and rule catalog.
func NewKnowledgeBase() *KnowledgeBase {
	kb := &KnowledgeBase{
		index: make(map[string]int),
	}
	for _, p := range defaultPatterns() {
		kb.AddPattern(p)
	}
	for _, r := range defaultRules() {
		kb.AddRule(r)
	}
	return kb
}

var (
	defaultKB   *KnowledgeBase
	defaultOnce sync.Once
)

// Default returns a process-wide shared knowledge base. Callers that need
// isolation (tests, catalogs extended per tenant) should construct their
// own via NewKnowledgeBase.
func Default() *KnowledgeBase {
	defaultOnce.Do(func() {
		defaultKB = NewKnowledgeBase()
	})
	return defaultKB
}

// AddPattern registers a pattern. The canonical name and every alias are
// indexed case-insensitively; on a key collision the first registration
// wins.
func (kb *KnowledgeBase) AddPattern(p ComponentPattern) {
	slot := len(kb.patterns)
	kb.patterns = append(kb.patterns, p)
	keys := append([]string{p.Name}, p.Aliases...)
	for _, key := range keys {
		k := wardley.Key(key)
		if k == "" {
			continue
		}
		if _, exists := kb.index[k]; !exists {
			kb.index[k] = slot
		}
	}
}

// AddRule registers a heuristic rule.
func (kb *KnowledgeBase) AddRule(r HeuristicRule) {
	kb.rules = append(kb.rules, r)
}

// LookupPattern finds the pattern whose canonical name or alias exactly
// matches the given name, case-insensitively.
func (kb *KnowledgeBase) LookupPattern(name string) (*ComponentPattern, bool) {
	slot, ok := kb.index[wardley.Key(name)]
	if !ok {
		return nil, false
	}
	p := kb.patterns[slot]
	return &p, true
}

// Patterns returns the registered patterns in registration order.
func (kb *KnowledgeBase) Patterns() []ComponentPattern {
	out := make([]ComponentPattern, len(kb.patterns))
	copy(out, kb.patterns)
	return out
}

// Rules returns the registered rules in registration order.
func (kb *KnowledgeBase) Rules() []HeuristicRule {
	out := make([]HeuristicRule, len(kb.rules))
	copy(out, kb.rules)
	return out
}

// RulesFor returns the rules belonging to one domain, in registration order.
func (kb *KnowledgeBase) RulesFor(domain string) []HeuristicRule {
	var out []HeuristicRule
	for _, r := range kb.rules {
		if r.Domain == domain {
			out = append(out, r)
		}
	}
	return out
}

// PatternCount reports how many patterns are registered.
func (kb *KnowledgeBase) PatternCount() int {
	return len(kb.patterns)
}

// RuleCount reports how many rules are registered.
func (kb *KnowledgeBase) RuleCount() int {
	return len(kb.rules)
}
