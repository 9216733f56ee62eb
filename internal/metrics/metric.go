// Package metrics records one entry per prompt-generation request and
// answers summary queries over the recent history.
package metrics

import "time"

// Metric is a single recorded generation request.
type Metric struct {
	// Attribution (for filtering/aggregation)
	Mode        string `json:"mode"`                   // e.g. "flat", "batch", "export"
	CharacterID string `json:"character_id,omitempty"` // empty when lookup failed
	RequestID   string `json:"request_id,omitempty"`

	// Output
	Prompts int `json:"prompts"`

	// Timing
	DurationSeconds float64 `json:"duration_seconds"`

	// Status
	Status    int    `json:"status"`
	Success   bool   `json:"success"`
	ErrorType string `json:"error_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Duration returns the request latency.
func (m Metric) Duration() time.Duration {
	return time.Duration(m.DurationSeconds * float64(time.Second))
}
