package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(r *Recorder, mode, char string, prompts, status int, seconds float64) {
	r.Record(context.Background(), Metric{
		Mode:            mode,
		CharacterID:     char,
		Prompts:         prompts,
		Status:          status,
		Success:         status < 400,
		ErrorType:       ErrorType(status),
		DurationSeconds: seconds,
	})
}

func TestRecorder_ListNewestFirst(t *testing.T) {
	r := NewRecorder(10)
	record(r, "flat", "cf-007", 1, 200, 0.1)
	record(r, "batch", "cf-007", 5, 200, 0.2)
	record(r, "flat", "cf-012", 1, 404, 0.05)

	all, err := r.List(context.Background(), Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "cf-012", all[0].CharacterID)
	assert.Equal(t, "batch", all[1].Mode)
	assert.False(t, all[0].CreatedAt.IsZero())

	limited, err := r.List(context.Background(), Filter{}, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRecorder_Eviction(t *testing.T) {
	r := NewRecorder(2)
	record(r, "flat", "a", 1, 200, 0.1)
	record(r, "flat", "b", 1, 200, 0.1)
	record(r, "flat", "c", 1, 200, 0.1)

	all, err := r.List(context.Background(), Filter{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c", all[0].CharacterID)
	assert.Equal(t, "b", all[1].CharacterID)
	assert.Equal(t, 3, r.Total())
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.Record(context.Background(), Metric{Mode: "flat"})

	all, err := r.List(context.Background(), Filter{}, 0)
	assert.NoError(t, err)
	assert.Empty(t, all)
	assert.Zero(t, r.Total())
}

func TestNewRecorder_DefaultCapacity(t *testing.T) {
	r := NewRecorder(0)
	assert.Len(t, r.ring, DefaultCapacity)
}

func TestFilter(t *testing.T) {
	r := NewRecorder(10)
	record(r, "flat", "cf-007", 1, 200, 0.1)
	record(r, "flat", "cf-012", 1, 200, 0.1)
	record(r, "sprites", "cf-007", 1, 400, 0.1)

	ctx := context.Background()
	yes, no := true, false

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 3},
		{"character", Filter{CharacterID: "cf-007"}, 2},
		{"mode", Filter{Mode: "flat"}, 2},
		{"both", Filter{CharacterID: "cf-007", Mode: "sprites"}, 1},
		{"success", Filter{Success: &yes}, 2},
		{"errors", Filter{Success: &no}, 1},
		{"after future", Filter{After: time.Now().Add(time.Hour)}, 0},
		{"before future", Filter{Before: time.Now().Add(time.Hour)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.List(ctx, tt.filter, 0)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestGetSummary(t *testing.T) {
	r := NewRecorder(10)
	record(r, "flat", "cf-007", 1, 200, 0.1)
	record(r, "batch", "cf-007", 5, 200, 0.3)
	record(r, "flat", "", 0, 404, 0.2)

	s, err := r.GetSummary(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.SuccessCount)
	assert.Equal(t, 1, s.ErrorCount)
	assert.Equal(t, 6, s.TotalPrompts)
	assert.InDelta(t, 2.0, s.AvgPrompts, 1e-9)
	assert.InDelta(t, 0.1, s.LatencyMin, 1e-9)
	assert.InDelta(t, 0.3, s.LatencyMax, 1e-9)
	assert.InDelta(t, 0.2, s.LatencyAvg, 1e-9)
	assert.InDelta(t, 0.2, s.LatencyP50, 1e-9)
}

func TestGetSummary_Empty(t *testing.T) {
	s, err := NewRecorder(4).GetSummary(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.LatencyMax)
}

func TestBreakdowns(t *testing.T) {
	r := NewRecorder(10)
	record(r, "flat", "cf-007", 1, 200, 0.1)
	record(r, "batch", "cf-007", 4, 200, 0.1)
	record(r, "batch", "cf-012", 2, 200, 0.1)
	record(r, "flat", "", 0, 404, 0.1)
	ctx := context.Background()

	byMode, err := r.CountByMode(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"flat": 2, "batch": 2}, byMode)

	byChar, err := r.CountByCharacter(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"cf-007": 2, "cf-012": 1}, byChar)

	prompts, err := r.PromptsByMode(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"flat": 1, "batch": 6}, prompts)

	summaries, err := r.ModeSummaries(ctx, Filter{})
	require.NoError(t, err)
	require.Contains(t, summaries, "batch")
	assert.Equal(t, 2, summaries["batch"].Count)
	assert.Equal(t, 1, summaries["flat"].ErrorCount)
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 50, 0},
		{"single", []float64{3}, 99, 3},
		{"median odd", []float64{1, 2, 3}, 50, 2},
		{"interpolated", []float64{1, 2, 3, 4}, 50, 2.5},
		{"max", []float64{1, 2, 3, 4}, 100, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentile(tt.values, tt.p), 1e-9)
		})
	}
}

func TestObservation(t *testing.T) {
	o := NewObservation("batch")
	o.SetCharacter("cf-007")
	o.AddPrompts(3)
	o.AddPrompts(2)

	m := o.Finish(200, "req-1")
	assert.Equal(t, "batch", m.Mode)
	assert.Equal(t, "cf-007", m.CharacterID)
	assert.Equal(t, "req-1", m.RequestID)
	assert.Equal(t, 5, m.Prompts)
	assert.True(t, m.Success)
	assert.Empty(t, m.ErrorType)
	assert.GreaterOrEqual(t, m.DurationSeconds, 0.0)

	failed := NewObservation("flat").Finish(404, "")
	assert.False(t, failed.Success)
	assert.Equal(t, "not_found", failed.ErrorType)
}

func TestObservation_Context(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ObservationFrom(ctx))
	ObservationFrom(ctx).SetCharacter("ignored")
	ObservationFrom(ctx).AddPrompts(1)

	o := NewObservation("flat")
	ctx = WithObservation(ctx, o)
	assert.Same(t, o, ObservationFrom(ctx))
}

func TestErrorType(t *testing.T) {
	assert.Empty(t, ErrorType(200))
	assert.Equal(t, "bad_request", ErrorType(400))
	assert.Equal(t, "too_many_requests", ErrorType(429))
	assert.Equal(t, "error", ErrorType(599))
}
