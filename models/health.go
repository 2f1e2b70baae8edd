package models

// Health status values reported by /management/health.
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// Health is the aggregated health of the gateway and its dependencies.
type Health struct {
	Status     string                     `json:"status"`
	Components map[string]HealthComponent `json:"components,omitempty"`
}

// HealthComponent is the health of a single dependency.
type HealthComponent struct {
	Status  string            `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// IsUp reports whether every component is up.
func (h Health) IsUp() bool {
	return h.Status == StatusUp
}
