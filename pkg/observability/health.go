package observability

import (
	"encoding/json"
	"net/http"
	"time"
)

const (
	StatusHealthy = "healthy"
)

// HealthChecker serves liveness and readiness probes. The linting core has
// no external dependencies, so readiness reduces to the process being up.
type HealthChecker struct {
	version string
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{version: version}
}

// HealthStatus is the probe response body
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// Liveness returns 200 whenever the server is running
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w)
}

// Readiness returns 200 once the server can serve traffic
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w)
}

func (h *HealthChecker) writeStatus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Version:   h.version,
	})
}
