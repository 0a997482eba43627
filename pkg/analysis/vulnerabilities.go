package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// findVulnerabilities walks the dependency edges looking for two kinds of
// supply-chain exposure: high-visibility components sitting on commodity
// infrastructure, and custom components whose entire out-edge set targets
// a single node. Pair findings land in Vulnerabilities as "A → B"
// strings, single-source findings as "A: Single source - B".
func (a *Analyzer) findVulnerabilities(snap *snapshot, out *wardley.MapAnalysis) {
	for _, c := range snap.ordered {
		key := c.Key()

		// High-value components dependent on commodity infrastructure.
		// Checked per edge, so a component riding two commodity targets
		// is flagged twice.
		if c.Visibility >= 0.7 {
			for _, tkey := range snap.forward[key] {
				target := snap.index[tkey]
				if target.Evolution < 0.8 {
					continue
				}
				out.Insights = append(out.Insights, wardley.StrategicInsight{
					ID:             uuid.NewString(),
					Type:           wardley.InsightVulnerability,
					Component:      c.Name,
					Title:          fmt.Sprintf("%s: Infrastructure Risk", c.Name),
					Description:    fmt.Sprintf("%s is a high-value component that depends on %s, a commodity component. Commodity components are subject to price compression, feature commoditization, and vendor lock-in risks.", c.Name, target.Name),
					Impact:         wardley.ImpactHigh,
					Actionable:     true,
					Recommendation: fmt.Sprintf("Evaluate alternative providers for %s or develop in-house capability to reduce dependency.", target.Name),
					Confidence:     0.8,
				})
				out.Vulnerabilities = append(out.Vulnerabilities, fmt.Sprintf("%s → %s", c.Name, target.Name))
			}
		}

		// Custom components funneling through one provider. Distinct
		// targets decide: a doubled edge to the same node is still a
		// single source.
		if c.Evolution >= 0.25 && c.Evolution <= 0.55 {
			if targets := distinctKeys(snap.forward[key]); len(targets) == 1 {
				sole := snap.index[targets[0]]
				out.Insights = append(out.Insights, wardley.StrategicInsight{
					ID:             uuid.NewString(),
					Type:           wardley.InsightVulnerability,
					Component:      c.Name,
					Title:          fmt.Sprintf("%s: Single Point of Failure", c.Name),
					Description:    fmt.Sprintf("%s is a critical custom component with a single dependency: %s. This creates supply chain risk.", c.Name, sole.Name),
					Impact:         wardley.ImpactMedium,
					Actionable:     true,
					Recommendation: fmt.Sprintf("Diversify dependencies for %s by introducing redundancy or alternatives.", c.Name),
					Confidence:     0.75,
				})
				out.Vulnerabilities = append(out.Vulnerabilities, fmt.Sprintf("%s: Single source - %s", c.Name, sole.Name))
			}
		}
	}
}
