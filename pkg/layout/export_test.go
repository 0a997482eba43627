package layout

import (
	"encoding/json"
	"testing"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

type nodeViz struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Evolution       float64 `json:"evolution"`
	Visibility      float64 `json:"visibility"`
	Stage           string  `json:"stage"`
	VisibilityLevel string  `json:"visibility_level"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
}

type edgeViz struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

type vizData struct {
	Nodes []nodeViz `json:"nodes"`
	Edges []edgeViz `json:"edges"`
}

// TestVisualizationExportJSON tests the full export round trip
func TestVisualizationExportJSON(t *testing.T) {
	components := []wardley.Component{
		{Name: "Customer Portal", Evolution: 0.7, Visibility: 0.95, Category: "Platform"},
		{Name: "Recommendation Engine", Evolution: 0.35, Visibility: 0.6},
		{Name: "PostgreSQL Database", Evolution: 0.9, Visibility: 0.1, Category: "Database"},
	}
	dependencies := []wardley.Dependency{
		{Source: "Customer Portal", Target: "Recommendation Engine", Type: wardley.DependencyStrong},
		{Source: "recommendation engine", Target: "PostgreSQL Database"},
		{Source: "Recommendation Engine", Target: "Ghost Service", Type: wardley.DependencyStrong},
	}

	viz := &Visualization{
		Components:   components,
		Dependencies: dependencies,
		Positions:    ComputeLayout(components, DefaultLayoutConfig()),
	}

	jsonData, err := viz.ExportJSON()
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}

	var data vizData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}

	if len(data.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(data.Nodes))
	}

	portal := data.Nodes[0]
	if portal.Name != "Customer Portal" {
		t.Errorf("First node is %q, expected Customer Portal", portal.Name)
	}
	if portal.Category != "Platform" {
		t.Errorf("Portal category %q, expected Platform", portal.Category)
	}
	if portal.Stage != "Product" {
		t.Errorf("Portal stage %q, expected Product", portal.Stage)
	}
	if portal.VisibilityLevel != "High (Customer-facing)" {
		t.Errorf("Portal visibility level %q", portal.VisibilityLevel)
	}

	pos := viz.Positions["Customer Portal"]
	if portal.X != pos.X || portal.Y != pos.Y {
		t.Errorf("Portal exported at (%f, %f), layout says (%f, %f)",
			portal.X, portal.Y, pos.X, pos.Y)
	}

	engine := data.Nodes[1]
	if engine.Stage != "Custom" {
		t.Errorf("Engine stage %q, expected Custom", engine.Stage)
	}
	if engine.VisibilityLevel != "Medium (Integration/APIs)" {
		t.Errorf("Engine visibility level %q", engine.VisibilityLevel)
	}

	database := data.Nodes[2]
	if database.Stage != "Commodity" {
		t.Errorf("Database stage %q, expected Commodity", database.Stage)
	}
	if database.VisibilityLevel != "Low (Infrastructure/Internal)" {
		t.Errorf("Database visibility level %q", database.VisibilityLevel)
	}

	// Dangling edge dropped, casing restored, missing type normalized
	if len(data.Edges) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(data.Edges))
	}
	if data.Edges[0].From != "Customer Portal" || data.Edges[0].To != "Recommendation Engine" {
		t.Errorf("First edge %s -> %s", data.Edges[0].From, data.Edges[0].To)
	}
	if data.Edges[0].Type != "strong" {
		t.Errorf("First edge type %q, expected strong", data.Edges[0].Type)
	}
	if data.Edges[1].From != "Recommendation Engine" {
		t.Errorf("Second edge source %q, expected display casing", data.Edges[1].From)
	}
	if data.Edges[1].Type != "weak" {
		t.Errorf("Second edge type %q, expected weak", data.Edges[1].Type)
	}
}

// TestVisualizationExportEmpty tests export of an empty visualization
func TestVisualizationExportEmpty(t *testing.T) {
	viz := &Visualization{}

	jsonData, err := viz.ExportJSON()
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}

	if string(jsonData) != `{"nodes":[],"edges":[]}` {
		t.Errorf("Empty export produced %s", jsonData)
	}
}

// TestVisualizationExportNamelessSkipped tests that unnamed components are dropped
func TestVisualizationExportNamelessSkipped(t *testing.T) {
	viz := &Visualization{
		Components: []wardley.Component{
			{Name: "", Evolution: 0.5, Visibility: 0.5},
			{Name: "Kept", Evolution: 0.5, Visibility: 0.5},
		},
	}

	jsonData, err := viz.ExportJSON()
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}

	var data vizData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}

	if len(data.Nodes) != 1 || data.Nodes[0].Name != "Kept" {
		t.Errorf("Expected only the named component, got %+v", data.Nodes)
	}
}
