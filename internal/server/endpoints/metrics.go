package endpoints

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// defaultRecentMetrics is how many recent entries /api/metrics returns.
const defaultRecentMetrics = 20

// MetricsResponse summarizes recent generation requests.
type MetricsResponse struct {
	Total       int                         `json:"total" yaml:"total"`
	Summary     *metrics.Summary            `json:"summary" yaml:"summary"`
	ByMode      map[string]*metrics.Summary `json:"by_mode" yaml:"by_mode"`
	ByCharacter map[string]int              `json:"by_character" yaml:"by_character"`
	Recent      []metrics.Metric            `json:"recent" yaml:"recent"`
}

// MetricsEndpoint handles GET /api/metrics.
type MetricsEndpoint struct{}

func (e *MetricsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics", e.handler
}

func (e *MetricsEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Generation metrics
//	@Description	Counts, latency percentiles and recent entries for prompt requests
//	@Tags			metrics
//	@Produce		json
//	@Param			character	query		string	false	"Character id"
//	@Param			mode		query		string	false	"Request mode (flat, batch, export...)"
//	@Param			limit		query		int		false	"Recent entries to return"
//	@Success		200			{object}	MetricsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/metrics [get]
func (e *MetricsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	limit := defaultRecentMetrics
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	f := metrics.Filter{CharacterID: q.Get("character"), Mode: q.Get("mode")}
	rec := svcctx.MetricsFrom(ctx)

	summary, err := rec.GetSummary(ctx, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	byMode, err := rec.ModeSummaries(ctx, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	byCharacter, err := rec.CountByCharacter(ctx, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := MetricsResponse{
		Total:       rec.Total(),
		Summary:     summary,
		ByMode:      byMode,
		ByCharacter: byCharacter,
		Recent:      []metrics.Metric{},
	}
	if limit > 0 {
		recent, err := rec.List(ctx, f, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if recent != nil {
			resp.Recent = recent
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *MetricsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		character string
		mode      string
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show generation metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if character != "" {
				q.Set("character", character)
			}
			if mode != "" {
				q.Set("mode", mode)
			}
			if cmd.Flags().Changed("limit") {
				q.Set("limit", strconv.Itoa(limit))
			}
			path := "/api/metrics"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			client := api.NewClient(getServerURL())
			var resp MetricsResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&character, "character", "", "Only count requests for this character id")
	cmd.Flags().StringVar(&mode, "mode", "", "Only count requests of this mode")
	cmd.Flags().IntVar(&limit, "limit", defaultRecentMetrics, "Recent entries to show")
	return cmd
}

// recorded wraps a prompt handler so each request is recorded as a metric.
func recorded(mode string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		obs := metrics.NewObservation(mode)
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		h(rec, r.WithContext(metrics.WithObservation(ctx, obs)))

		m := obs.Finish(rec.status, svcctx.RequestIDFrom(ctx))
		svcctx.MetricsFrom(ctx).Record(ctx, m)
	}
}

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
