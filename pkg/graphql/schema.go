// Package graphql exposes the last analysis run as a read-only GraphQL
// schema: components with stage filtering, insights with type filtering,
// recommendations and the critical path.
package graphql

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// Snapshot is one analyzed map: the scored components plus the analysis
// produced from them. The API server publishes a fresh snapshot after every
// successful analysis; resolvers read whichever snapshot is current when
// the query arrives.
type Snapshot struct {
	Components []wardley.Component
	Analysis   *wardley.MapAnalysis
	TakenAt    time.Time
}

// SnapshotFunc returns the current snapshot, or nil when no analysis has
// run yet. Resolvers treat nil as an empty map, not an error.
type SnapshotFunc func() *Snapshot

// GenerateSchema builds the read schema over the snapshot source
func GenerateSchema(current SnapshotFunc) (graphql.Schema, error) {
	componentType := createComponentType()
	insightType := createInsightType()

	queryFields := graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if current() == nil {
					return "no analysis loaded", nil
				}
				return "ok", nil
			},
		},
		"components": &graphql.Field{
			Type: graphql.NewList(componentType),
			Args: graphql.FieldConfigArgument{
				"stage": &graphql.ArgumentConfig{
					Type: graphql.String,
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				snap := current()
				if snap == nil {
					return []wardley.Component{}, nil
				}

				stageArg, hasStage := p.Args["stage"].(string)
				if !hasStage {
					return snap.Components, nil
				}

				stage, ok := wardley.ParseStage(stageArg)
				if !ok {
					return nil, fmt.Errorf("unknown stage: %s", stageArg)
				}

				filtered := make([]wardley.Component, 0)
				for _, c := range snap.Components {
					if c.Stage() == stage {
						filtered = append(filtered, c)
					}
				}
				return filtered, nil
			},
		},
		"component": &graphql.Field{
			Type: componentType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.String),
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				snap := current()
				if snap == nil {
					return nil, nil
				}

				name, _ := p.Args["name"].(string)
				key := wardley.Key(name)
				for _, c := range snap.Components {
					if c.Key() == key {
						return c, nil
					}
				}
				return nil, nil
			},
		},
		"insights": &graphql.Field{
			Type: graphql.NewList(insightType),
			Args: graphql.FieldConfigArgument{
				"type": &graphql.ArgumentConfig{
					Type: graphql.String,
				},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				snap := current()
				if snap == nil || snap.Analysis == nil {
					return []wardley.StrategicInsight{}, nil
				}

				typeArg, hasType := p.Args["type"].(string)
				if !hasType {
					return snap.Analysis.Insights, nil
				}
				return snap.Analysis.InsightsOfType(wardley.InsightType(typeArg)), nil
			},
		},
		"recommendations": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				snap := current()
				if snap == nil || snap.Analysis == nil {
					return []string{}, nil
				}
				return snap.Analysis.StrategicRecommendations, nil
			},
		},
		"criticalPath": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				snap := current()
				if snap == nil || snap.Analysis == nil {
					return []string{}, nil
				}
				return snap.Analysis.CriticalPath, nil
			},
		},
		"analyzedAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				snap := current()
				if snap == nil {
					return nil, nil
				}
				return snap.TakenAt.Format(time.RFC3339), nil
			},
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields,
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

// createComponentType creates the GraphQL Object type for map components
func createComponentType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Component",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return c.Name, nil
					}
					return nil, nil
				},
			},
			"category": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return c.Category, nil
					}
					return nil, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return c.Description, nil
					}
					return nil, nil
				},
			},
			"evolution": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return c.Evolution, nil
					}
					return nil, nil
				},
			},
			"visibility": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return c.Visibility, nil
					}
					return nil, nil
				},
			},
			"stage": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return c.Stage().String(), nil
					}
					return nil, nil
				},
			},
			"visibilityLevel": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return wardley.VisibilityLevel(c.Visibility), nil
					}
					return nil, nil
				},
			},
			"confidence": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if c, ok := p.Source.(wardley.Component); ok {
						return c.Confidence, nil
					}
					return nil, nil
				},
			},
		},
	})
}

// createInsightType creates the GraphQL Object type for strategic insights
func createInsightType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Insight",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return ins.ID, nil
					}
					return nil, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return string(ins.Type), nil
					}
					return nil, nil
				},
			},
			"component": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return ins.Component, nil
					}
					return nil, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return ins.Title, nil
					}
					return nil, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return ins.Description, nil
					}
					return nil, nil
				},
			},
			"impact": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return string(ins.Impact), nil
					}
					return nil, nil
				},
			},
			"actionable": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return ins.Actionable, nil
					}
					return nil, nil
				},
			},
			"recommendation": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return ins.Recommendation, nil
					}
					return nil, nil
				},
			},
			"confidence": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if ins, ok := p.Source.(wardley.StrategicInsight); ok {
						return ins.Confidence, nil
					}
					return nil, nil
				},
			},
		},
	})
}
