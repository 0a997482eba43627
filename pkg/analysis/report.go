package analysis

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// Report renders the analysis as a markdown document: overview counts,
// then one section per non-empty finding category, recommendations
// numbered, critical path in a code fence. Sections with no findings are
// omitted entirely.
func Report(analysis *wardley.MapAnalysis) string {
	lines := []string{
		"# Wardley Map Strategic Analysis Report",
		"",
		"## Overview",
		fmt.Sprintf("- **Total Components**: %d", analysis.TotalComponents),
		fmt.Sprintf("- **Total Dependencies**: %d", analysis.TotalDependencies),
		fmt.Sprintf("- **Insights Generated**: %d", len(analysis.Insights)),
		"",
	}

	if len(analysis.CompetitiveAdvantages) > 0 {
		lines = append(lines,
			"## Competitive Advantages",
			fmt.Sprintf("Your organization has %d key differentiators:", len(analysis.CompetitiveAdvantages)),
			"")
		for _, adv := range analysis.CompetitiveAdvantages {
			lines = append(lines, fmt.Sprintf("- **%s**: Custom-built competitive moat", adv))
		}
		lines = append(lines, "")
	}

	if len(analysis.Vulnerabilities) > 0 {
		lines = append(lines,
			"## Vulnerabilities & Risks",
			fmt.Sprintf("Identified %d critical vulnerabilities:", len(analysis.Vulnerabilities)),
			"")
		for _, vuln := range analysis.Vulnerabilities {
			lines = append(lines, fmt.Sprintf("- %s", vuln))
		}
		lines = append(lines, "")
	}

	if len(analysis.Opportunities) > 0 {
		lines = append(lines,
			"## Strategic Opportunities",
			fmt.Sprintf("Found %d growth opportunities:", len(analysis.Opportunities)),
			"")
		for _, opp := range analysis.Opportunities {
			lines = append(lines, fmt.Sprintf("- **%s**: Market expansion opportunity", opp))
		}
		lines = append(lines, "")
	}

	if len(analysis.Threats) > 0 {
		lines = append(lines,
			"## Competitive Threats",
			fmt.Sprintf("Identified %d areas under competitive pressure:", len(analysis.Threats)),
			"")
		for _, threat := range analysis.Threats {
			lines = append(lines, fmt.Sprintf("- %s", threat))
		}
		lines = append(lines, "")
	}

	if len(analysis.StrategicRecommendations) > 0 {
		lines = append(lines, "## Strategic Recommendations", "")
		for i, rec := range analysis.StrategicRecommendations {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, rec))
		}
		lines = append(lines, "")
	}

	if len(analysis.EvolutionTrajectory) > 0 {
		lines = append(lines,
			"## Evolution Planning",
			"Components approaching next evolution stage:",
			"")
		// Readiness insights carry detection order; the trajectory map
		// alone does not.
		for _, ins := range analysis.InsightsOfType(wardley.InsightEvolutionReadiness) {
			if trajectory, ok := analysis.EvolutionTrajectory[ins.Component]; ok {
				lines = append(lines, fmt.Sprintf("- %s: %s", ins.Component, trajectory))
			}
		}
		lines = append(lines, "")
	}

	if len(analysis.CriticalPath) > 0 {
		lines = append(lines,
			"## Critical Dependency Path",
			"Longest dependency chain (indicates execution complexity):",
			"",
			"```",
			strings.Join(analysis.CriticalPath, " → "),
			"```",
			"")
	}

	return strings.Join(lines, "\n")
}

// WriteReport writes the markdown report to w.
func WriteReport(w io.Writer, analysis *wardley.MapAnalysis) error {
	if analysis == nil {
		return errors.New("analysis is nil")
	}
	_, err := io.WriteString(w, Report(analysis))
	return err
}
