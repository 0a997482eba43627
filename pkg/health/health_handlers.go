package health

import (
	"encoding/json"
	"net/http"
)

// HTTPHandler returns an HTTP handler for the full health check endpoint.
// Degraded still serves 200; only unhealthy turns into 503.
func (hc *HealthChecker) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := hc.Check()

		code := http.StatusOK
		if response.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}

		writeResponse(w, code, response)
	}
}

// ReadinessHandler returns an HTTP handler for readiness checks.
// Readiness is binary: anything short of healthy is not ready.
func (hc *HealthChecker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := hc.CheckReadiness()
		writeResponse(w, binaryStatusCode(response.Status), response)
	}
}

// LivenessHandler returns an HTTP handler for liveness checks.
func (hc *HealthChecker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := hc.CheckLiveness()
		writeResponse(w, binaryStatusCode(response.Status), response)
	}
}

func binaryStatusCode(s Status) int {
	if s == StatusHealthy {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

func writeResponse(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
