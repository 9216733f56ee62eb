package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/character"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// SpriteSheetRequest is the request body for a sprite sheet.
type SpriteSheetRequest struct {
	Character string `json:"character"`
	// Poses lists pose ids in render order. Omitted means every pose; an
	// empty list is rejected.
	Poses      []string `json:"poses,omitempty"`
	Outfit     string   `json:"outfit,omitempty"`
	Background string   `json:"background,omitempty"` // neutral, transparent, scene
}

// SpriteSheetEndpoint handles POST /api/prompts/sprites.
type SpriteSheetEndpoint struct{}

func (e *SpriteSheetEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts/sprites", recorded("sprites", e.handler)
}

func (e *SpriteSheetEndpoint) RequiresInit() bool { return true }

func (e *SpriteSheetEndpoint) Group() string { return groupPrompts }

// handler godoc
//
//	@Summary		Generate a sprite sheet
//	@Description	One prompt per pose with a shared outfit and background
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SpriteSheetRequest	true	"Sprite sheet options"
//	@Success		200		{object}	PromptsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/prompts/sprites [post]
func (e *SpriteSheetEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SpriteSheetRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := findCharacter(ctx, req.Character)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	background := req.Background
	if background == "" {
		background = svcctx.ConfigFrom(ctx).Defaults.Background
	}
	opts := prompt.SpriteSheetOptions{Background: prompt.Background(background)}

	if req.Poses != nil {
		opts.Poses = make([]character.ReferencePose, 0, len(req.Poses))
		for _, id := range req.Poses {
			pose, ok := c.PoseByID(id)
			if !ok {
				writeEngineError(w, fmt.Errorf("pose %q for %s %w", id, c.Identity.ID, errNotFound))
				return
			}
			opts.Poses = append(opts.Poses, *pose)
		}
	}

	if opts.Outfit, err = findOutfit(c, req.Outfit); err != nil {
		writeEngineError(w, err)
		return
	}

	prompts, err := prompt.SpriteSheet(c, opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	metrics.ObservationFrom(r.Context()).AddPrompts(len(prompts))
	writeJSON(w, http.StatusOK, PromptsResponse{Prompts: prompts})
}

func (e *SpriteSheetEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req SpriteSheetRequest
	cmd := &cobra.Command{
		Use:   "sprites <character>",
		Short: "Generate a sprite sheet (one prompt per pose)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Character = args[0]
			if !cmd.Flags().Changed("pose") {
				req.Poses = nil
			}
			client := api.NewClient(getServerURL())
			var resp PromptsResponse
			if err := client.Post(cmd.Context(), "/api/prompts/sprites", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringSliceVar(&req.Poses, "pose", nil, "Pose ids to render, in order (default: all)")
	cmd.Flags().StringVar(&req.Outfit, "outfit", "", "Outfit name (default: first casual outfit)")
	cmd.Flags().StringVar(&req.Background, "background", "", "Background: neutral, transparent or scene (default from config)")
	return cmd
}
