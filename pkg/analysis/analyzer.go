// Package analysis turns a scored component set and its dependency edges
// into strategic insights: what differentiates the map owner, where the
// supply chain is fragile, which components are ready to evolve, and the
// longest dependency chain rooted in genesis work. Analysis is a pure
// function of its inputs; every pass reads the same immutable snapshot
// and no pass depends on another pass's output.
package analysis

import (
	"errors"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// ErrNilComponents is returned when Analyze is called without a component
// list. An empty list is valid input; a nil one is a caller bug.
var ErrNilComponents = errors.New("component list is nil")

// AnalyzerOptions configures an analysis run.
type AnalyzerOptions struct {
	// MaxPathNodes caps the total node visits of the critical-path
	// search across all genesis roots. Longest-path search is the one
	// place unbounded work is possible on dense graphs; when the cap is
	// hit the search keeps the best path found so far.
	MaxPathNodes int
}

// DefaultAnalyzerOptions returns sensible defaults.
func DefaultAnalyzerOptions() AnalyzerOptions {
	return AnalyzerOptions{
		MaxPathNodes: 10000,
	}
}

// Analyzer derives strategic insights from a scored map. It holds no
// state between runs; one Analyzer may serve concurrent callers.
type Analyzer struct {
	opts AnalyzerOptions
}

// NewAnalyzer creates an Analyzer with default options.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithOptions(DefaultAnalyzerOptions())
}

// NewAnalyzerWithOptions creates an Analyzer with explicit options.
// Non-positive limits fall back to the defaults.
func NewAnalyzerWithOptions(opts AnalyzerOptions) *Analyzer {
	if opts.MaxPathNodes <= 0 {
		opts.MaxPathNodes = DefaultAnalyzerOptions().MaxPathNodes
	}
	return &Analyzer{opts: opts}
}

// Analyze runs every analysis pass over one snapshot of the map and
// returns the aggregate result. Edges referencing names absent from the
// component set are skipped as a data-quality issue; the reported totals
// still echo the raw input sizes. An empty component list is success
// with zero totals, a nil one is a contract violation.
func (a *Analyzer) Analyze(components []wardley.Component, deps []wardley.Dependency) (*wardley.MapAnalysis, error) {
	if components == nil {
		return nil, ErrNilComponents
	}

	snap := newSnapshot(components, deps)
	out := &wardley.MapAnalysis{
		TotalComponents:     len(components),
		TotalDependencies:   len(deps),
		EvolutionTrajectory: make(map[string]string),
	}

	a.findStrengths(snap, out)
	a.findVulnerabilities(snap, out)
	a.findOpportunities(snap, out)
	a.findThreats(snap, out)
	a.findBottlenecks(snap, out)
	a.assessReadiness(snap, out)
	a.findCriticalPath(snap, out)
	a.buildRecommendations(snap, out)

	return out, nil
}

// snapshot is the immutable view every pass reads: deduplicated
// components, a case-insensitive index, and adjacency restricted to
// edges whose endpoints both exist.
type snapshot struct {
	ordered []wardley.Component
	index   map[string]wardley.Component
	forward map[string][]string
	reverse map[string][]string
	edges   []wardley.Dependency
}

func newSnapshot(components []wardley.Component, deps []wardley.Dependency) *snapshot {
	snap := &snapshot{
		index:   make(map[string]wardley.Component, len(components)),
		forward: make(map[string][]string),
		reverse: make(map[string][]string),
	}

	// Duplicate names: the last occurrence wins, at the position of the
	// first. Nameless components carry no identity and are dropped.
	position := make(map[string]int, len(components))
	for _, c := range components {
		key := c.Key()
		if key == "" {
			continue
		}
		if at, seen := position[key]; seen {
			snap.ordered[at] = c
		} else {
			position[key] = len(snap.ordered)
			snap.ordered = append(snap.ordered, c)
		}
		snap.index[key] = c
	}

	// Adjacency lists keep input edge order, so traversal is
	// deterministic. Self-loops survive filtering; the passes that care
	// exclude them explicitly.
	for _, d := range deps {
		skey, tkey := wardley.Key(d.Source), wardley.Key(d.Target)
		if _, ok := snap.index[skey]; !ok {
			continue
		}
		if _, ok := snap.index[tkey]; !ok {
			continue
		}
		snap.forward[skey] = append(snap.forward[skey], tkey)
		snap.reverse[tkey] = append(snap.reverse[tkey], skey)
		snap.edges = append(snap.edges, d)
	}
	return snap
}

// distinctKeys deduplicates a key list preserving first-seen order.
func distinctKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	var out []string
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
