package health

import "time"

// Built-in checks for the strategy engine

// SimpleCheck creates a simple health check that always returns healthy
func SimpleCheck(name string) Check {
	return Check{
		Name:        name,
		Status:      StatusHealthy,
		LastChecked: time.Now(),
	}
}

// CatalogCheck reports on the knowledge catalog. With an empty catalog
// every component falls through to default scoring.
func CatalogCheck(size func() (patterns, rules int)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "catalog",
			Details: make(map[string]any),
		}

		patterns, rules := size()

		check.Details["patterns"] = patterns
		check.Details["rules"] = rules

		if patterns == 0 && rules == 0 {
			check.Status = StatusUnhealthy
			check.Message = "Catalog empty"
		} else if patterns == 0 {
			check.Status = StatusDegraded
			check.Message = "No patterns loaded"
		} else {
			check.Status = StatusHealthy
			check.Message = "Catalog loaded"
		}

		return check
	}
}

// ScorerCheck probes the scorer with a component whose placement is known.
// The built-in catalog scores PostgreSQL as commodity with high confidence;
// anything else means the scoring chain is broken.
func ScorerCheck(probe func() (stage string, confidence float64, err error)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "scorer",
			Details: make(map[string]any),
		}

		stage, confidence, err := probe()
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}

		check.Details["stage"] = stage
		check.Details["confidence"] = confidence

		if stage != "commodity" {
			check.Status = StatusDegraded
			check.Message = "Probe returned unexpected stage"
		} else if confidence < 0.9 {
			check.Status = StatusDegraded
			check.Message = "Probe confidence low"
		} else {
			check.Status = StatusHealthy
			check.Message = "Scorer probe passed"
		}

		return check
	}
}

// ConfigCheck reports whether the running configuration is still valid
func ConfigCheck(validate func() error) CheckFunc {
	return func() Check {
		check := Check{
			Name: "config",
		}

		if err := validate(); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		} else {
			check.Status = StatusHealthy
			check.Message = "Configuration valid"
		}

		return check
	}
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		usagePercent := float64(alloc) / float64(sys) * 100

		if usagePercent > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}
