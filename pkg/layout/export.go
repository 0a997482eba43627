package layout

import (
	"encoding/json"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// Visualization represents a positioned map ready for rendering
type Visualization struct {
	Components   []wardley.Component
	Dependencies []wardley.Dependency
	Positions    map[string]Position
}

// ExportJSON exports the visualization to JSON. Edges whose endpoints are
// not among the components are dropped; endpoint names match
// case-insensitively and are emitted with the component's display casing.
func (v *Visualization) ExportJSON() ([]byte, error) {
	type NodeViz struct {
		Name            string  `json:"name"`
		Category        string  `json:"category,omitempty"`
		Evolution       float64 `json:"evolution"`
		Visibility      float64 `json:"visibility"`
		Stage           string  `json:"stage"`
		VisibilityLevel string  `json:"visibility_level"`
		X               float64 `json:"x"`
		Y               float64 `json:"y"`
	}

	type EdgeViz struct {
		From string `json:"from"`
		To   string `json:"to"`
		Type string `json:"type"`
	}

	type VizData struct {
		Nodes []NodeViz `json:"nodes"`
		Edges []EdgeViz `json:"edges"`
	}

	data := VizData{
		Nodes: make([]NodeViz, 0, len(v.Components)),
		Edges: make([]EdgeViz, 0, len(v.Dependencies)),
	}

	// Convert nodes, remembering display casing for edge resolution
	display := make(map[string]string, len(v.Components))
	for _, c := range v.Components {
		if c.Key() == "" {
			continue
		}
		display[c.Key()] = c.Name

		pos := v.Positions[c.Name]
		data.Nodes = append(data.Nodes, NodeViz{
			Name:            c.Name,
			Category:        c.Category,
			Evolution:       c.Evolution,
			Visibility:      c.Visibility,
			Stage:           c.Stage().String(),
			VisibilityLevel: wardley.VisibilityLevel(c.Visibility),
			X:               pos.X,
			Y:               pos.Y,
		})
	}

	// Convert edges
	for _, dep := range v.Dependencies {
		from, okFrom := display[wardley.Key(dep.Source)]
		to, okTo := display[wardley.Key(dep.Target)]
		if !okFrom || !okTo {
			continue
		}
		data.Edges = append(data.Edges, EdgeViz{
			From: from,
			To:   to,
			Type: string(wardley.ParseDependencyType(string(dep.Type))),
		})
	}

	return json.Marshal(data)
}
