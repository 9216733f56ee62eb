package metrics

import "context"

// CountByMode returns request counts grouped by mode.
func (r *Recorder) CountByMode(ctx context.Context, f Filter) (map[string]int, error) {
	return r.countBy(ctx, f, func(m Metric) string { return m.Mode })
}

// CountByCharacter returns request counts grouped by character id.
// Requests that never resolved a character are left out.
func (r *Recorder) CountByCharacter(ctx context.Context, f Filter) (map[string]int, error) {
	return r.countBy(ctx, f, func(m Metric) string { return m.CharacterID })
}

// PromptsByMode returns the number of prompts produced per mode.
func (r *Recorder) PromptsByMode(ctx context.Context, f Filter) (map[string]int, error) {
	metrics, err := r.List(ctx, f, 0)
	if err != nil {
		return nil, err
	}
	breakdown := make(map[string]int)
	for _, m := range metrics {
		breakdown[m.Mode] += m.Prompts
	}
	return breakdown, nil
}

// ModeSummaries returns a Summary per mode.
func (r *Recorder) ModeSummaries(ctx context.Context, f Filter) (map[string]*Summary, error) {
	metrics, err := r.List(ctx, f, 0)
	if err != nil {
		return nil, err
	}
	byMode := make(map[string][]Metric)
	for _, m := range metrics {
		byMode[m.Mode] = append(byMode[m.Mode], m)
	}
	result := make(map[string]*Summary, len(byMode))
	for mode, ms := range byMode {
		result[mode] = summarize(ms)
	}
	return result, nil
}

func (r *Recorder) countBy(ctx context.Context, f Filter, key func(Metric) string) (map[string]int, error) {
	metrics, err := r.List(ctx, f, 0)
	if err != nil {
		return nil, err
	}
	breakdown := make(map[string]int)
	for _, m := range metrics {
		if k := key(m); k != "" {
			breakdown[k]++
		}
	}
	return breakdown, nil
}
