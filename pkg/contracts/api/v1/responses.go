package api

// HealthResponse is the payload of the liveness and readiness endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health status values.
const (
	HealthStatusHealthy  = "healthy"
	HealthStatusReady    = "ready"
	HealthStatusNotReady = "not_ready"
)
