package analysis

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// buildRecommendations emits the fixed set of templated strategy
// recommendations, each conditional on what the earlier passes found.
// Runs last so it can read the aggregate lists.
func (a *Analyzer) buildRecommendations(snap *snapshot, out *wardley.MapAnalysis) {
	var genesis, differentiators, productReady []string
	for _, c := range snap.ordered {
		if c.Evolution < 0.25 {
			genesis = append(genesis, c.Name)
		}
		if c.Evolution >= 0.25 && c.Evolution <= 0.55 && c.Visibility >= 0.4 {
			differentiators = append(differentiators, c.Name)
		}
		if c.Evolution >= 0.4 && c.Evolution <= 0.55 {
			productReady = append(productReady, c.Name)
		}
	}

	if len(genesis) > 0 {
		out.StrategicRecommendations = append(out.StrategicRecommendations, fmt.Sprintf(
			"INNOVATION LEADERSHIP: Accelerate development of genesis-stage innovations (%s) to establish market leadership before competitors enter.",
			firstNames(genesis, 3)))
	}

	if len(differentiators) > 0 {
		out.StrategicRecommendations = append(out.StrategicRecommendations, fmt.Sprintf(
			"COMPETITIVE MOAT: Protect your custom differentiators (%s) from commoditization through continuous innovation and network effects.",
			firstNames(differentiators, 3)))
	}

	if len(out.Vulnerabilities) > 0 {
		out.StrategicRecommendations = append(out.StrategicRecommendations,
			"SUPPLY CHAIN RESILIENCE: Diversify or develop in-house alternatives for critical commodity dependencies to reduce vendor lock-in risk.")
	}

	if len(productReady) > 0 {
		out.StrategicRecommendations = append(out.StrategicRecommendations, fmt.Sprintf(
			"NEW REVENUE STREAMS: Evaluate productizing mature custom components (%s) for external monetization.",
			firstNames(productReady, 3)))
	}

	if len(out.EvolutionTrajectory) > 0 {
		out.StrategicRecommendations = append(out.StrategicRecommendations,
			"EVOLUTIONARY PLANNING: Begin preparation for components approaching next evolution stage. Standardize interfaces, increase reliability, optimize cost.")
	}
}

// firstNames joins the first n names with commas.
func firstNames(names []string, n int) string {
	if len(names) > n {
		names = names[:n]
	}
	return strings.Join(names, ", ")
}
