package api

import (
	"errors"
	"fmt"
)

// ErrNotReady means the bridge answered but is not serving the project yet.
var ErrNotReady = errors.New("bridge not ready")

// HealthStatus is the bridge's readiness report.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Project string `json:"project,omitempty"`
}

// Ready reports whether project requests will be served.
func (h *HealthStatus) Ready() bool {
	return h != nil && h.Status == "ok"
}

// Health fetches the bridge's readiness report.
func (c *Client) Health() (*HealthStatus, error) {
	data, err := c.get("/api/health")
	if err != nil {
		return nil, err
	}
	return decodeOne[HealthStatus](data)
}

// Ping returns nil only when the bridge reports ready.
func (c *Client) Ping() error {
	h, err := c.Health()
	if err != nil {
		return err
	}
	if !h.Ready() {
		status := h.Status
		if status == "" {
			status = "no status"
		}
		return fmt.Errorf("%w: %s", ErrNotReady, status)
	}
	return nil
}
