package scoring

import (
	"math"
	"testing"
)

func TestBucketScoreFormula(t *testing.T) {
	buckets := []keywordBucket{
		{keywords: []string{"alpha", "beta", "gamma", "delta"}, min: 0.2, max: 0.6, weight: 0.5},
	}

	// Two of four keywords match: 0.2 + 0.4*(2/4) = 0.4, weighted 0.2.
	got, ok := bucketScore("alpha beta thing", "", buckets)
	if !ok {
		t.Fatal("bucket should fire")
	}
	if math.Abs(got-0.2) > 1e-9 {
		t.Errorf("score = %v, want 0.2", got)
	}
}

func TestBucketScoreAveragesFiredBuckets(t *testing.T) {
	buckets := []keywordBucket{
		{keywords: []string{"one"}, min: 0.0, max: 0.4, weight: 1.0},
		{keywords: []string{"two"}, min: 0.6, max: 1.0, weight: 1.0},
		{keywords: []string{"absent"}, min: 0.0, max: 1.0, weight: 1.0},
	}

	// Both firing buckets contribute their full range (1/1 matches).
	got, ok := bucketScore("one two", "", buckets)
	if !ok {
		t.Fatal("buckets should fire")
	}
	want := (0.4 + 1.0) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestBucketScoreNoMatch(t *testing.T) {
	if _, ok := bucketScore("nothing here", "", evolutionBuckets); ok {
		t.Error("no evolution bucket should fire for neutral text")
	}
}

func TestBucketScoreMatchesDescription(t *testing.T) {
	got, ok := bucketScore("widget", "an experimental prototype", evolutionBuckets)
	if !ok {
		t.Fatal("genesis bucket should fire from the description")
	}
	// 2 of 14 genesis keywords, weight 1.0.
	want := 0.05 + 0.2*(2.0/14.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestEvolutionNameDefaults(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"Database Server", 0.85},
		{"gRPC api", 0.65},
		{"Forecasting algorithm", 0.35},
	}

	for _, tt := range tests {
		got, fired := evolutionByKeywords(tt.name, Context{})
		if !fired {
			t.Errorf("evolutionByKeywords(%q) should fire a name default", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("evolutionByKeywords(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEvolutionNoSignal(t *testing.T) {
	got, fired := evolutionByKeywords("Totally Novel Widget", Context{})
	if fired {
		t.Error("no evolution signal should fire")
	}
	if got != 0.5 {
		t.Errorf("unfired evolution = %v, want the 0.5 middle position", got)
	}
}

func TestVisibilityBuckets(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		// One keyword in each bucket: high (16), medium (11), low (14).
		{"Admin UI", (0.75 + 0.25*(1.0/16.0)) * 1.0},
		{"Edge Gateway", (0.4 + 0.35*(1.0/11.0)) * 0.9},
		{"Blob Storage", (0.05 + 0.35*(1.0/14.0)) * 0.9},
	}

	for _, tt := range tests {
		got, fired := visibilityByKeywords(tt.name, Context{})
		if !fired {
			t.Errorf("visibilityByKeywords(%q) should fire", tt.name)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("visibilityByKeywords(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestVisibilityFlagBeatsKeywords(t *testing.T) {
	// The name alone would land in the low bucket; the explicit flag wins.
	ctx := NewContext(map[string]bool{"is_customer_facing": true}, "")
	got, fired := visibilityByKeywords("Database Cluster", ctx)
	if !fired || got != 0.85 {
		t.Errorf("visibility = %v (fired %v), want 0.85 from the flag", got, fired)
	}
}
