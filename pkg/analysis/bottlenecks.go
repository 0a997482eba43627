package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// findBottlenecks flags critical infrastructure that is both widely
// depended on and not yet stable: three or more distinct dependents and
// an evolution score still short of late product stage. Self-loops do
// not count as dependents.
func (a *Analyzer) findBottlenecks(snap *snapshot, out *wardley.MapAnalysis) {
	for _, c := range snap.ordered {
		key := c.Key()

		var dependents []string
		for _, skey := range distinctKeys(snap.reverse[key]) {
			if skey == key {
				continue
			}
			dependents = append(dependents, skey)
		}
		if len(dependents) < 3 || c.Evolution >= 0.7 {
			continue
		}

		out.Insights = append(out.Insights, wardley.StrategicInsight{
			ID:             uuid.NewString(),
			Type:           wardley.InsightBottleneck,
			Component:      c.Name,
			Title:          fmt.Sprintf("%s: Critical Bottleneck", c.Name),
			Description:    fmt.Sprintf("%s is a critical infrastructure component that %d other components depend on. Its unstable nature (%s) creates system-wide risk.", c.Name, len(dependents), c.Stage()),
			Impact:         wardley.ImpactHigh,
			Actionable:     true,
			Recommendation: fmt.Sprintf("Stabilize and harden %s. Consider introducing redundancy or failover mechanisms.", c.Name),
			Confidence:     0.85,
		})
	}
}
