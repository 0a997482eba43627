package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// findStrengths flags the components that differentiate the map owner:
// custom-stage components the customer can see, and genesis-stage
// innovations with enough visibility to matter. Both kinds are recorded
// as competitive advantages.
func (a *Analyzer) findStrengths(snap *snapshot, out *wardley.MapAnalysis) {
	for _, c := range snap.ordered {
		// Custom stage with significant visibility.
		if c.Evolution >= 0.25 && c.Evolution <= 0.55 && c.Visibility >= 0.4 {
			out.Insights = append(out.Insights, wardley.StrategicInsight{
				ID:             uuid.NewString(),
				Type:           wardley.InsightStrength,
				Component:      c.Name,
				Title:          fmt.Sprintf("%s: Core Competitive Advantage", c.Name),
				Description:    fmt.Sprintf("Custom-built component at %s stage. This is a key differentiator that competitors cannot easily replicate.", c.Stage()),
				Impact:         wardley.ImpactHigh,
				Actionable:     false,
				Recommendation: fmt.Sprintf("Protect and continuously improve %s. Monitor for commoditization signals.", c.Name),
				Confidence:     0.85,
			})
			out.CompetitiveAdvantages = append(out.CompetitiveAdvantages, c.Name)
		}

		// Genesis innovation with execution capability.
		if c.Evolution < 0.25 && c.Visibility >= 0.5 {
			out.Insights = append(out.Insights, wardley.StrategicInsight{
				ID:             uuid.NewString(),
				Type:           wardley.InsightStrength,
				Component:      c.Name,
				Title:          fmt.Sprintf("%s: Innovation Leader", c.Name),
				Description:    fmt.Sprintf("Genesis-stage innovation in %s. This represents your capability to drive market disruption.", c.Name),
				Impact:         wardley.ImpactHigh,
				Actionable:     false,
				Recommendation: fmt.Sprintf("Invest in scaling and productizing %s quickly to capitalize on first-mover advantage.", c.Name),
				Confidence:     0.9,
			})
			out.CompetitiveAdvantages = append(out.CompetitiveAdvantages, c.Name)
		}
	}
}
