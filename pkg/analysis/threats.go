package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// findThreats flags competitive pressure: custom components sliding into
// territory competitors can reach, and product-stage components facing
// inevitable margin compression.
func (a *Analyzer) findThreats(snap *snapshot, out *wardley.MapAnalysis) {
	for _, c := range snap.ordered {
		// Custom moving toward product stage.
		if c.Evolution >= 0.3 && c.Evolution <= 0.45 {
			out.Insights = append(out.Insights, wardley.StrategicInsight{
				ID:             uuid.NewString(),
				Type:           wardley.InsightThreat,
				Component:      c.Name,
				Title:          fmt.Sprintf("%s: Commoditization Threat", c.Name),
				Description:    fmt.Sprintf("%s is transitioning from custom to product stage. Competitors may be developing similar solutions, threatening your competitive advantage.", c.Name),
				Impact:         wardley.ImpactHigh,
				Actionable:     true,
				Recommendation: fmt.Sprintf("Accelerate feature development and market education for %s to maintain competitive lead.", c.Name),
				Confidence:     0.8,
			})
			out.Threats = append(out.Threats, c.Name)
		}

		// Product stage, crowded market.
		if c.Evolution >= 0.55 && c.Evolution < 0.8 {
			out.Insights = append(out.Insights, wardley.StrategicInsight{
				ID:             uuid.NewString(),
				Type:           wardley.InsightThreat,
				Component:      c.Name,
				Title:          fmt.Sprintf("%s: Increasing Competition", c.Name),
				Description:    fmt.Sprintf("%s is at product stage with multiple competitors likely entering the market. Margin compression is inevitable.", c.Name),
				Impact:         wardley.ImpactMedium,
				Actionable:     true,
				Recommendation: fmt.Sprintf("Plan cost reduction and feature differentiation for %s to compete on value, not just price.", c.Name),
				Confidence:     0.75,
			})
			out.Threats = append(out.Threats, fmt.Sprintf("%s (competition)", c.Name))
		}
	}
}
