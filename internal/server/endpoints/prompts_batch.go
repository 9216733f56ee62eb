package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// maxBatchCount bounds a single batch request.
const maxBatchCount = 100

// BatchRequest is the request body for a batch.
type BatchRequest struct {
	Character string `json:"character"`
	// Count defaults to defaults.batch_count when omitted.
	Count   *int   `json:"count,omitempty"`
	Variety string `json:"variety,omitempty"` // scenes, outfits, moods, all
}

// BatchPromptEndpoint handles POST /api/prompts/batch.
type BatchPromptEndpoint struct{}

func (e *BatchPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts/batch", recorded("batch", e.handler)
}

func (e *BatchPromptEndpoint) RequiresInit() bool { return true }

func (e *BatchPromptEndpoint) Group() string { return groupPrompts }

// handler godoc
//
//	@Summary		Generate a batch
//	@Description	Count prompts cycling scenes, outfits and moods
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchRequest	true	"Batch options"
//	@Success		200		{object}	PromptsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/prompts/batch [post]
func (e *BatchPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BatchRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	defaults := svcctx.ConfigFrom(ctx).Defaults
	count := defaults.BatchCount
	if req.Count != nil {
		count = *req.Count
	}
	if count > maxBatchCount {
		writeError(w, http.StatusBadRequest, "count must be at most 100")
		return
	}

	name := req.Variety
	if name == "" {
		name = defaults.Variety
	}
	variety, err := prompt.ParseVariety(name)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	c, err := findCharacter(ctx, req.Character)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	prompts, err := prompt.Batch(c, count, variety)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	metrics.ObservationFrom(ctx).AddPrompts(len(prompts))
	writeJSON(w, http.StatusOK, PromptsResponse{Prompts: prompts})
}

func (e *BatchPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		req   BatchRequest
		count int
	)
	cmd := &cobra.Command{
		Use:   "batch <character>",
		Short: "Generate a batch of varied prompts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Character = args[0]
			if cmd.Flags().Changed("count") {
				req.Count = &count
			}
			client := api.NewClient(getServerURL())
			var resp PromptsResponse
			if err := client.Post(cmd.Context(), "/api/prompts/batch", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of prompts (default from config)")
	cmd.Flags().StringVar(&req.Variety, "variety", "", "What varies: scenes, outfits, moods or all (default from config)")
	return cmd
}
