// Package wardley defines the data model for strategic maps: components
// positioned on the evolution and visibility axes, directed dependencies
// between them, and the insight/analysis aggregates produced by the
// analysis package.
package wardley

import "strings"

// Component is a named system element positioned on the strategic map.
// Evolution and Visibility are scores in [0,1]; Confidence reports how much
// the scoring method trusts its own estimate. Components are immutable once
// created; an analysis run operates over a fixed snapshot.
type Component struct {
	Name        string  `json:"name"`
	Evolution   float64 `json:"evolution"`
	Visibility  float64 `json:"visibility"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// Key returns the case-insensitive identity of the component name.
// Original casing is preserved for display; matching always goes through Key.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Key returns the component's case-insensitive identity.
func (c Component) Key() string {
	return Key(c.Name)
}

// Stage returns the evolution stage band the component's score falls in.
func (c Component) Stage() EvolutionStage {
	return StageForScore(c.Evolution)
}

// DependencyType classifies how strongly a source component requires its
// target. Unknown values normalize to weak.
type DependencyType string

const (
	DependencyStrong     DependencyType = "strong"
	DependencyWeak       DependencyType = "weak"
	DependencyConstraint DependencyType = "constraint"
)

// ParseDependencyType maps free-form input onto a known dependency type.
func ParseDependencyType(s string) DependencyType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strong":
		return DependencyStrong
	case "constraint":
		return DependencyConstraint
	default:
		return DependencyWeak
	}
}

// Dependency is a directed edge meaning "Source requires/uses Target".
// The edge set is a directed graph that is neither guaranteed acyclic nor
// connected. Edges referencing unknown component names are discarded by
// consumers as a data-quality skip, never an error.
type Dependency struct {
	Source string         `json:"source"`
	Target string         `json:"target"`
	Type   DependencyType `json:"dependency_type,omitempty"`
}
