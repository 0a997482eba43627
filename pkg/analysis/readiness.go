package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// assessReadiness records, for every component not already at commodity,
// the stage it should be preparing to evolve toward. The transition map
// follows EvolutionStage.Next, so genesis components point straight at
// product. Findings also fill EvolutionTrajectory keyed by display name.
func (a *Analyzer) assessReadiness(snap *snapshot, out *wardley.MapAnalysis) {
	for _, c := range snap.ordered {
		current := c.Stage()
		target, ok := current.Next()
		if !ok {
			continue
		}

		out.Insights = append(out.Insights, wardley.StrategicInsight{
			ID:             uuid.NewString(),
			Type:           wardley.InsightEvolutionReadiness,
			Component:      c.Name,
			Title:          fmt.Sprintf("%s: Evolution Path %s → %s", c.Name, current, target),
			Description:    fmt.Sprintf("%s is approaching maturity for evolution to %s. Preparation should begin now.", c.Name, target),
			Impact:         wardley.ImpactMedium,
			Actionable:     true,
			Recommendation: fmt.Sprintf("Start preparing %s for evolution to %s: standardize interfaces, increase reliability, reduce cost.", c.Name, target),
			Confidence:     0.8,
		})
		out.EvolutionTrajectory[c.Name] = fmt.Sprintf("%s → %s", current, target)
	}
}
