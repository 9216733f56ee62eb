package metrics

import (
	"context"
	"sync"
	"time"
)

// Observation collects attribution for a request while its handler runs.
// SetCharacter and AddPrompts are no-ops on a nil receiver.
type Observation struct {
	mu          sync.Mutex
	mode        string
	characterID string
	prompts     int
	start       time.Time
}

// NewObservation starts timing a request of the given mode.
func NewObservation(mode string) *Observation {
	return &Observation{mode: mode, start: time.Now()}
}

// SetCharacter attributes the request to a character.
func (o *Observation) SetCharacter(id string) {
	if o == nil {
		return
	}
	o.mu.Lock()
	o.characterID = id
	o.mu.Unlock()
}

// AddPrompts counts prompts produced by the request.
func (o *Observation) AddPrompts(n int) {
	if o == nil {
		return
	}
	o.mu.Lock()
	o.prompts += n
	o.mu.Unlock()
}

// Finish turns the observation into a Metric.
func (o *Observation) Finish(status int, requestID string) Metric {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	return Metric{
		Mode:            o.mode,
		CharacterID:     o.characterID,
		RequestID:       requestID,
		Prompts:         o.prompts,
		DurationSeconds: now.Sub(o.start).Seconds(),
		Status:          status,
		Success:         status < 400,
		ErrorType:       ErrorType(status),
		CreatedAt:       now,
	}
}

type observationKey struct{}

// WithObservation returns a new context carrying o.
func WithObservation(ctx context.Context, o *Observation) context.Context {
	return context.WithValue(ctx, observationKey{}, o)
}

// ObservationFrom extracts the observation from context, or nil.
func ObservationFrom(ctx context.Context) *Observation {
	o, _ := ctx.Value(observationKey{}).(*Observation)
	return o
}
