package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/home"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// PlatformAll requests every known platform at once.
const PlatformAll = "all"

// ExportRequest is the request body for a platform export.
type ExportRequest struct {
	SelectionRequest
	// Platform defaults to defaults.platform. "all" exports every known
	// platform; unknown names get the plain prompt text.
	Platform string `json:"platform,omitempty"`
}

// ExportResponse holds the exported payloads keyed by platform.
type ExportResponse struct {
	CharacterID string            `json:"character_id" yaml:"character_id"`
	SceneID     string            `json:"scene_id" yaml:"scene_id"`
	Exports     map[string]string `json:"exports" yaml:"exports"`
}

// ExportPromptEndpoint handles POST /api/prompts/export.
type ExportPromptEndpoint struct {
	// Home locates the directory --save writes to.
	Home func() (*home.Dir, error)
}

func (e *ExportPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts/export", recorded("export", e.handler)
}

func (e *ExportPromptEndpoint) RequiresInit() bool { return true }

func (e *ExportPromptEndpoint) Group() string { return groupPrompts }

// handler godoc
//
//	@Summary		Export a prompt
//	@Description	Format a prompt for midjourney, dalle, stable_diffusion, nano_banana or all
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ExportRequest	true	"Selection and platform"
//	@Success		200		{object}	ExportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/prompts/export [post]
func (e *ExportPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExportRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, sel, err := req.resolve(ctx)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	gp, err := prompt.Generate(c, sel)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = svcctx.ConfigFrom(ctx).Defaults.Platform
	}

	resp := ExportResponse{
		CharacterID: gp.CharacterID,
		SceneID:     gp.SceneID,
		Exports:     make(map[string]string),
	}

	if platform == PlatformAll {
		all, err := prompt.ExportAll(*gp)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		for p, out := range all {
			resp.Exports[string(p)] = out
		}
	} else {
		out, err := prompt.Export(*gp, prompt.Platform(platform))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		resp.Exports[platform] = out
	}

	metrics.ObservationFrom(r.Context()).AddPrompts(len(resp.Exports))
	writeJSON(w, http.StatusOK, resp)
}

func (e *ExportPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		req  ExportRequest
		save bool
	)
	cmd := &cobra.Command{
		Use:   "export <character>",
		Short: "Export a prompt for an image generator",
		Long: `Export a prompt formatted for an image generator.

Platforms: midjourney, dalle, stable_diffusion, nano_banana, or all.
With --save each export is also written under <home>/exports/<character>/.
With --output text and a single platform only the payload is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Character = args[0]
			client := api.NewClient(getServerURL())
			var resp ExportResponse
			if err := client.Post(cmd.Context(), "/api/prompts/export", req, &resp); err != nil {
				return err
			}

			if save {
				paths, err := e.save(resp)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", p)
				}
			}

			if api.GetOutputFormat() == api.OutputFormatText && len(resp.Exports) == 1 {
				var only string
				for _, out := range resp.Exports {
					only = out
				}
				return api.Output(only)
			}
			return api.Output(resp)
		},
	}
	addSelectionFlags(cmd, &req.SelectionRequest)
	cmd.Flags().StringVarP(&req.Platform, "platform", "p", "", "Target platform or all (default from config)")
	cmd.Flags().BoolVar(&save, "save", false, "Also write the exports to the home exports directory")
	return cmd
}

// save writes each export to its file under the home exports directory
// and returns the paths in platform order.
func (e *ExportPromptEndpoint) save(resp ExportResponse) ([]string, error) {
	locate := e.Home
	if locate == nil {
		locate = func() (*home.Dir, error) { return home.New("") }
	}
	h, err := locate()
	if err != nil {
		return nil, err
	}
	if err := h.EnsureCharacterExportsDir(resp.CharacterID); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}

	platforms := make([]string, 0, len(resp.Exports))
	for p := range resp.Exports {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	paths := make([]string, 0, len(platforms))
	for _, p := range platforms {
		path := h.ExportPath(resp.CharacterID, resp.SceneID, p, isJSONPlatform(p))
		if err := os.WriteFile(path, []byte(resp.Exports[p]+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to save export: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func isJSONPlatform(p string) bool {
	switch prompt.Platform(p) {
	case prompt.StableDiffusion, prompt.NanoBanana:
		return true
	}
	return false
}
