package wardley

// InsightType classifies a strategic insight.
type InsightType string

const (
	InsightStrength           InsightType = "strength"
	InsightVulnerability      InsightType = "vulnerability"
	InsightOpportunity        InsightType = "opportunity"
	InsightThreat             InsightType = "threat"
	InsightBottleneck         InsightType = "bottleneck"
	InsightEvolutionReadiness InsightType = "evolution_readiness"
)

// Impact grades how much an insight matters.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// StrategicInsight is one finding about one component. Insights are
// produced by the analysis passes and never mutated; the flat list on
// MapAnalysis preserves detection order, which is not significance order.
type StrategicInsight struct {
	ID             string      `json:"id"`
	Type           InsightType `json:"type"`
	Component      string      `json:"component"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Impact         Impact      `json:"impact"`
	Actionable     bool        `json:"actionable"`
	Recommendation string      `json:"recommendation,omitempty"`
	Confidence     float64     `json:"confidence"`
}

// MapAnalysis is the aggregate result of one analysis run. It is built
// once per call and immutable after construction. TotalDependencies counts
// the raw input edge list, before dangling-edge filtering.
type MapAnalysis struct {
	TotalComponents          int                `json:"total_components"`
	TotalDependencies        int                `json:"total_dependencies"`
	Insights                 []StrategicInsight `json:"insights"`
	Vulnerabilities          []string           `json:"vulnerabilities"`
	Opportunities            []string           `json:"opportunities"`
	Threats                  []string           `json:"threats"`
	StrategicRecommendations []string           `json:"strategic_recommendations"`
	EvolutionTrajectory      map[string]string  `json:"evolution_trajectory"`
	CompetitiveAdvantages    []string           `json:"competitive_advantages"`
	CriticalPath             []string           `json:"critical_path"`
}

// InsightsOfType filters the insight list by type, preserving order.
func (a *MapAnalysis) InsightsOfType(t InsightType) []StrategicInsight {
	var out []StrategicInsight
	for _, ins := range a.Insights {
		if ins.Type == t {
			out = append(out, ins)
		}
	}
	return out
}
