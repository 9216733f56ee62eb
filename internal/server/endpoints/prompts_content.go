package endpoints

import (
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/character"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// ContentRequest is the request body for a social-content prompt.
type ContentRequest struct {
	Character   string `json:"character"`
	Mood        string `json:"mood"`
	ContentType string `json:"content_type"`
	// Seed pins the random scene pick so the same request gives the same
	// prompt.
	Seed *uint64 `json:"seed,omitempty"`
}

// ContentResponse is a content prompt plus the camera preset of its
// content type.
type ContentResponse struct {
	prompt.GenerationPrompt `yaml:",inline"`
	Camera                  *character.CameraPerspective `json:"camera,omitempty" yaml:"camera,omitempty"`
}

// ContentPromptEndpoint handles POST /api/prompts/content.
type ContentPromptEndpoint struct{}

func (e *ContentPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts/content", recorded("content", e.handler)
}

func (e *ContentPromptEndpoint) RequiresInit() bool { return true }

func (e *ContentPromptEndpoint) Group() string { return groupPrompts }

// handler godoc
//
//	@Summary		Generate a content prompt
//	@Description	Mood and content-type driven prompt with a randomly picked scene
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ContentRequest	true	"Content options"
//	@Success		200		{object}	ContentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/prompts/content [post]
func (e *ContentPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ContentRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mood, err := prompt.ParseMood(req.Mood)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	contentType, err := prompt.ParseContentType(req.ContentType)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	c, err := findCharacter(ctx, req.Character)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	planner := svcctx.PlannerFrom(ctx)
	if req.Seed != nil {
		planner = prompt.NewPlanner(rand.New(rand.NewPCG(*req.Seed, *req.Seed)))
	}

	gp, err := planner.Content(c, mood, contentType)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	svcctx.LoggerFrom(ctx).Debug("content prompt generated",
		"character", c.Identity.ID, "mood", mood, "type", contentType)
	resp := ContentResponse{GenerationPrompt: *gp}
	if cam, ok := prompt.ContentCamera(contentType); ok {
		resp.Camera = &cam
	}
	metrics.ObservationFrom(r.Context()).AddPrompts(1)
	writeJSON(w, http.StatusOK, resp)
}

func (e *ContentPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		req  ContentRequest
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "content <character>",
		Short: "Generate a social-content prompt",
		Long:  contentLong(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Character = args[0]
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			client := api.NewClient(getServerURL())
			var resp ContentResponse
			if err := client.Post(cmd.Context(), "/api/prompts/content", req, &resp); err != nil {
				return err
			}
			if api.GetOutputFormat() == api.OutputFormatText {
				return api.Output(resp.Prompt)
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Mood, "mood", string(prompt.MoodHappy), "Mood")
	cmd.Flags().StringVar(&req.ContentType, "type", string(prompt.ContentCandid), "Content type")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the scene pick (default: random)")
	return cmd
}

func contentLong() string {
	moods := make([]string, 0, len(prompt.Moods()))
	for _, m := range prompt.Moods() {
		moods = append(moods, string(m))
	}
	types := make([]string, 0, len(prompt.ContentTypes()))
	for _, t := range prompt.ContentTypes() {
		types = append(types, string(t))
	}
	return "Generate a social-content prompt.\n\n" +
		"Moods: " + strings.Join(moods, ", ") + "\n" +
		"Content types: " + strings.Join(types, ", ")
}
