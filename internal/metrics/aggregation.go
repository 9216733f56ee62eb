package metrics

import (
	"context"
	"sort"
	"time"
)

// Summary provides comprehensive statistics for a filter.
type Summary struct {
	// Basic counts
	Count        int `json:"count"`
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`

	// Output
	TotalPrompts int     `json:"total_prompts"`
	AvgPrompts   float64 `json:"avg_prompts"`

	// Latency (seconds)
	TotalTime  time.Duration `json:"total_time"`
	LatencyP50 float64       `json:"latency_p50"`
	LatencyP95 float64       `json:"latency_p95"`
	LatencyP99 float64       `json:"latency_p99"`
	LatencyAvg float64       `json:"latency_avg"`
	LatencyMin float64       `json:"latency_min"`
	LatencyMax float64       `json:"latency_max"`
}

// GetSummary returns statistics for metrics matching the filter.
func (r *Recorder) GetSummary(ctx context.Context, f Filter) (*Summary, error) {
	metrics, err := r.List(ctx, f, 0)
	if err != nil {
		return nil, err
	}
	return summarize(metrics), nil
}

func summarize(metrics []Metric) *Summary {
	s := &Summary{Count: len(metrics)}
	if len(metrics) == 0 {
		return s
	}

	latencies := make([]float64, 0, len(metrics))
	var sum float64
	for _, m := range metrics {
		if m.Success {
			s.SuccessCount++
		} else {
			s.ErrorCount++
		}
		s.TotalPrompts += m.Prompts
		s.TotalTime += m.Duration()
		latencies = append(latencies, m.DurationSeconds)
		sum += m.DurationSeconds
	}

	s.AvgPrompts = float64(s.TotalPrompts) / float64(s.Count)

	sort.Float64s(latencies)
	s.LatencyMin = latencies[0]
	s.LatencyMax = latencies[len(latencies)-1]
	s.LatencyAvg = sum / float64(len(latencies))
	s.LatencyP50 = percentile(latencies, 50)
	s.LatencyP95 = percentile(latencies, 95)
	s.LatencyP99 = percentile(latencies, 99)
	return s
}

// percentile calculates the p-th percentile from a sorted slice of values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	n := float64(len(sorted))
	idx := (p / 100.0) * (n - 1)

	// Interpolate between floor and ceil indices
	lower := int(idx)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
