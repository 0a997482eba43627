package scoring

import (
	"strings"

	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// keywordBucket is one weighted band of signal words. A bucket that fires
// contributes min + (max-min) * (matches / len(keywords)), scaled by its
// weight; the axis score is the mean of the fired buckets.
type keywordBucket struct {
	keywords []string
	min, max float64
	weight   float64
}

var evolutionBuckets = []keywordBucket{
	{
		keywords: []string{
			"innovative", "experimental", "research", "prototype",
			"alpha", "unprecedented", "breakthrough", "cutting-edge", "pioneering",
			"emerging", "exploration", "speculative", "unproven", "beta",
		},
		min: 0.05, max: 0.25, weight: 1.0,
	},
	{
		keywords: []string{
			"custom", "bespoke", "proprietary", "differentiated", "unique",
			"specialized", "in-house", "homegrown", "tailored", "handcrafted",
			"specific", "competitive advantage", "strategic asset",
		},
		min: 0.25, max: 0.55, weight: 0.8,
	},
	{
		keywords: []string{
			"product", "solution", "platform", "service", "offering", "package",
			"commercial", "mature", "stable", "established", "proven", "mainstream",
			"market-ready", "production",
		},
		min: 0.55, max: 0.8, weight: 0.8,
	},
	{
		keywords: []string{
			"commodity", "utility", "standard", "outsourced", "cloud", "saas",
			"off-the-shelf", "cots", "common", "generic", "widely-available",
			"industry-standard", "ubiquitous", "fungible",
		},
		min: 0.8, max: 0.98, weight: 1.0,
	},
}

var visibilityBuckets = []keywordBucket{
	{
		keywords: []string{
			"customer", "user", "client", "consumer", "interface", "experience",
			"facing", "front", "portal", "dashboard", "application", "ui", "ux",
			"visible", "direct", "end-user",
		},
		min: 0.75, max: 1.0, weight: 1.0,
	},
	{
		keywords: []string{
			"api", "integration", "middleware", "service", "layer", "backend",
			"business logic", "orchestration", "coordination", "gateway", "broker",
		},
		min: 0.4, max: 0.75, weight: 0.9,
	},
	{
		keywords: []string{
			"infrastructure", "hosting", "server", "database", "storage",
			"internal", "core", "engine", "foundation", "network", "computing",
			"platform", "underlying", "system",
		},
		min: 0.05, max: 0.4, weight: 0.9,
	},
}

// bucketScore averages the fired buckets; ok is false when none fired.
// Keywords match as substrings of the lowercased name or description.
func bucketScore(name, description string, buckets []keywordBucket) (float64, bool) {
	var sum float64
	fired := 0

	for _, b := range buckets {
		matches := 0
		for _, kw := range b.keywords {
			if strings.Contains(description, kw) || strings.Contains(name, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		score := b.min + (b.max-b.min)*(float64(matches)/float64(len(b.keywords)))
		sum += score * b.weight
		fired++
	}

	if fired == 0 {
		return 0, false
	}
	return wardley.Clamp01(sum / float64(fired)), true
}

// evolutionByKeywords scores the evolution axis from keyword signals. The
// second return reports whether any signal fired; when none did, the score
// is the 0.5 middle position.
func evolutionByKeywords(name string, ctx Context) (float64, bool) {
	nameLower := strings.ToLower(name)
	desc := strings.ToLower(ctx.Description)

	if score, ok := bucketScore(nameLower, desc, evolutionBuckets); ok {
		return score, true
	}

	// Name-pattern defaults when no bucket fired.
	switch {
	case containsAny(nameLower, "database", "server", "cloud", "hosting"):
		return 0.85, true
	case containsAny(nameLower, "api", "service", "platform"):
		return 0.65, true
	case containsAny(nameLower, "algorithm", "ml", "ai", "model"):
		return 0.35, true
	}
	return 0.5, false
}

// visibilityByKeywords scores the visibility axis. Explicit caller flags
// outrank keyword inference; name-pattern defaults catch the common
// component vocabulary when no bucket fired.
func visibilityByKeywords(name string, ctx Context) (float64, bool) {
	if ctx.Flag("is_customer_facing") {
		return 0.85, true
	}
	if ctx.Flag("is_internal") {
		return 0.3, true
	}

	nameLower := strings.ToLower(name)
	desc := strings.ToLower(ctx.Description)

	if score, ok := bucketScore(nameLower, desc, visibilityBuckets); ok {
		return score, true
	}

	switch {
	case containsAny(nameLower, "ui", "interface", "portal", "dashboard", "frontend"):
		return 0.9, true
	case containsAny(nameLower, "api", "gateway", "service", "layer"):
		return 0.55, true
	case containsAny(nameLower, "database", "storage", "infrastructure", "backend"):
		return 0.2, true
	}
	return 0.5, false
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
