package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// findOpportunities looks for growth levers on three fronts: mature
// custom work that could be productized, genesis innovations with an
// open market, and customer-facing commodities ready for adjacent
// expansion.
func (a *Analyzer) findOpportunities(snap *snapshot, out *wardley.MapAnalysis) {
	for _, c := range snap.ordered {
		// Custom approaching product stage.
		if c.Evolution >= 0.4 && c.Evolution <= 0.55 && c.Visibility >= 0.4 {
			out.Insights = append(out.Insights, wardley.StrategicInsight{
				ID:             uuid.NewString(),
				Type:           wardley.InsightOpportunity,
				Component:      c.Name,
				Title:          fmt.Sprintf("%s: Commoditization Opportunity", c.Name),
				Description:    fmt.Sprintf("%s is a mature custom component approaching the product stage. This is an opportunity to package it as a standalone product or service offering.", c.Name),
				Impact:         wardley.ImpactHigh,
				Actionable:     true,
				Recommendation: fmt.Sprintf("Evaluate productizing %s as a separate offering or licensing it to partners.", c.Name),
				Confidence:     0.8,
			})
			out.Opportunities = append(out.Opportunities, c.Name)
		}

		// Genesis innovation, untapped market.
		if c.Evolution < 0.25 {
			out.Insights = append(out.Insights, wardley.StrategicInsight{
				ID:             uuid.NewString(),
				Type:           wardley.InsightOpportunity,
				Component:      c.Name,
				Title:          fmt.Sprintf("%s: Market Disruption Potential", c.Name),
				Description:    fmt.Sprintf("%s is a genesis-stage innovation. This represents an untapped market opportunity before competitors enter.", c.Name),
				Impact:         wardley.ImpactHigh,
				Actionable:     true,
				Recommendation: fmt.Sprintf("Accelerate development and market entry for %s to establish market leadership.", c.Name),
				Confidence:     0.85,
			})
			out.Opportunities = append(out.Opportunities, c.Name)
		}

		// High-visibility commodity, room to expand sideways.
		if c.Evolution >= 0.85 && c.Visibility >= 0.7 {
			out.Insights = append(out.Insights, wardley.StrategicInsight{
				ID:             uuid.NewString(),
				Type:           wardley.InsightOpportunity,
				Component:      c.Name,
				Title:          fmt.Sprintf("%s: Expansion Opportunity", c.Name),
				Description:    fmt.Sprintf("%s is a mature, customer-facing component. This is an opportunity to expand feature set or enter adjacent markets.", c.Name),
				Impact:         wardley.ImpactMedium,
				Actionable:     true,
				Recommendation: fmt.Sprintf("Identify adjacent use cases and markets for %s expansion.", c.Name),
				Confidence:     0.75,
			})
			out.Opportunities = append(out.Opportunities, fmt.Sprintf("%s (expansion)", c.Name))
		}
	}
}
