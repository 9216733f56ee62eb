package metrics

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is the number of metrics a Recorder keeps when none is given.
const DefaultCapacity = 1000

// Recorder keeps the most recent metrics in a fixed-size ring.
// A nil Recorder discards everything.
type Recorder struct {
	mu    sync.RWMutex
	ring  []Metric
	next  int
	full  bool
	total int
}

// NewRecorder creates a recorder holding up to capacity metrics.
func NewRecorder(capacity int) *Recorder {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Recorder{ring: make([]Metric, capacity)}
}

// Record stores a single metric, evicting the oldest when full.
func (r *Recorder) Record(ctx context.Context, m Metric) {
	if r == nil {
		return
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ring[r.next] = m
	r.next = (r.next + 1) % len(r.ring)
	if r.next == 0 {
		r.full = true
	}
	r.total++
}

// Total returns how many metrics were ever recorded, including evicted ones.
func (r *Recorder) Total() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Filter specifies query filters.
type Filter struct {
	CharacterID string
	Mode        string
	After       time.Time
	Before      time.Time
	Success     *bool // nil = any, true = success only, false = errors only
}

func (f Filter) matches(m Metric) bool {
	if f.CharacterID != "" && m.CharacterID != f.CharacterID {
		return false
	}
	if f.Mode != "" && m.Mode != f.Mode {
		return false
	}
	if !f.After.IsZero() && !m.CreatedAt.After(f.After) {
		return false
	}
	if !f.Before.IsZero() && !m.CreatedAt.Before(f.Before) {
		return false
	}
	if f.Success != nil && m.Success != *f.Success {
		return false
	}
	return true
}

// List returns metrics matching the filter, newest first.
// A limit of 0 returns every match.
func (r *Recorder) List(ctx context.Context, f Filter, limit int) ([]Metric, error) {
	if r == nil {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.next
	if r.full {
		n = len(r.ring)
	}

	var out []Metric
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := (r.next - 1 - i + len(r.ring)) % len(r.ring)
		m := r.ring[idx]
		if !f.matches(m) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ErrorType maps an HTTP status to a short error label, or "" on success.
func ErrorType(status int) string {
	if status < http.StatusBadRequest {
		return ""
	}
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
