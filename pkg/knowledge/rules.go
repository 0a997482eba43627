package knowledge

import "github.com/dd0wney/cluso-strategy/pkg/wardley"

// defaultRules returns the built-in heuristic rules. Conditions are stored
// pre-flattened so rule evaluation is a single context-flag lookup. All
// built-in rules share priority 1; confidence alone breaks ties between
// rules that fire together.
func defaultRules() []HeuristicRule {
	return []HeuristicRule{
		// Technical perspective.
		{Condition: "is_customer_interface_and_is_web", Stage: wardley.StageProduct, Confidence: 0.85, Domain: DomainTechnical, Priority: 1},
		{Condition: "handles_core_business_logic", Stage: wardley.StageProduct, Confidence: 0.8, Domain: DomainTechnical, Priority: 1},
		{Condition: "is_proprietary_and_high_business_value", Stage: wardley.StageCustom, Confidence: 0.9, Domain: DomainTechnical, Priority: 1},
		{Condition: "is_infrastructure_or_is_hosting", Stage: wardley.StageCommodity, Confidence: 0.9, Domain: DomainTechnical, Priority: 1},
		{Condition: "is_open_source_and_widely_used", Stage: wardley.StageCommodity, Confidence: 0.85, Domain: DomainTechnical, Priority: 1},

		// Business perspective.
		{Condition: "directly_serves_customer", Stage: wardley.StageProduct, Confidence: 0.85, Domain: DomainBusiness, Priority: 1},
		{Condition: "provides_competitive_advantage", Stage: wardley.StageCustom, Confidence: 0.9, Domain: DomainBusiness, Priority: 1},
		{Condition: "is_support_function_and_can_be_outsourced", Stage: wardley.StageCommodity, Confidence: 0.8, Domain: DomainBusiness, Priority: 1},
		{Condition: "is_new_market_category", Stage: wardley.StageGenesis, Confidence: 0.85, Domain: DomainBusiness, Priority: 1},

		// Competitive perspective.
		{Condition: "is_market_leader_and_dominant_position", Stage: wardley.StageProduct, Confidence: 0.85, Domain: DomainCompetitive, Priority: 1},
		{Condition: "is_disruptive_innovation", Stage: wardley.StageGenesis, Confidence: 0.9, Domain: DomainCompetitive, Priority: 1},
		{Condition: "is_highly_competitive_and_low_margin", Stage: wardley.StageCommodity, Confidence: 0.9, Domain: DomainCompetitive, Priority: 1},

		// Financial signals. Gross margin bands: high > 60%, medium 30-60%,
		// low < 30%.
		{Condition: "gross_margin_high", Stage: wardley.StageCustom, Confidence: 0.85, Domain: DomainFinancial, Priority: 1},
		{Condition: "gross_margin_medium", Stage: wardley.StageProduct, Confidence: 0.8, Domain: DomainFinancial, Priority: 1},
		{Condition: "gross_margin_low", Stage: wardley.StageCommodity, Confidence: 0.9, Domain: DomainFinancial, Priority: 1},
		{Condition: "rapid_revenue_growth", Stage: wardley.StageCustom, Confidence: 0.7, Domain: DomainFinancial, Priority: 1},
		{Condition: "stable_low_revenue_growth", Stage: wardley.StageCommodity, Confidence: 0.8, Domain: DomainFinancial, Priority: 1},
	}
}
