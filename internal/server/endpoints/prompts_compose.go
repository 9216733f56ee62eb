package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
)

// StructuredPromptEndpoint handles POST /api/prompts/structured.
type StructuredPromptEndpoint struct{}

func (e *StructuredPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts/structured", recorded("structured", e.handler)
}

func (e *StructuredPromptEndpoint) RequiresInit() bool { return true }

func (e *StructuredPromptEndpoint) Group() string { return groupPrompts }

// handler godoc
//
//	@Summary		Compose a structured prompt
//	@Description	Sectioned prompt object for a character, scene, pose and outfit
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SelectionRequest	true	"Selection"
//	@Success		200		{object}	prompt.StructuredPrompt
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/prompts/structured [post]
func (e *StructuredPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, sel, err := req.resolve(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	sp, err := prompt.ComposeStructured(c, sel)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	metrics.ObservationFrom(r.Context()).AddPrompts(1)
	writeJSON(w, http.StatusOK, sp)
}

func (e *StructuredPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req SelectionRequest
	cmd := &cobra.Command{
		Use:   "structured <character>",
		Short: "Compose a structured prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Character = args[0]
			client := api.NewClient(getServerURL())
			var resp prompt.StructuredPrompt
			if err := client.Post(cmd.Context(), "/api/prompts/structured", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	addSelectionFlags(cmd, &req)
	return cmd
}

// FlatPromptEndpoint handles POST /api/prompts/flat.
// The response carries the negative prompt and render settings alongside
// the text.
type FlatPromptEndpoint struct{}

func (e *FlatPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/prompts/flat", recorded("flat", e.handler)
}

func (e *FlatPromptEndpoint) RequiresInit() bool { return true }

func (e *FlatPromptEndpoint) Group() string { return groupPrompts }

// handler godoc
//
//	@Summary		Compose a flat prompt
//	@Description	Single comma-separated prompt with its negative prompt
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SelectionRequest	true	"Selection"
//	@Success		200		{object}	prompt.GenerationPrompt
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/prompts/flat [post]
func (e *FlatPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, sel, err := req.resolve(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	gp, err := prompt.Generate(c, sel)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	metrics.ObservationFrom(r.Context()).AddPrompts(1)
	writeJSON(w, http.StatusOK, gp)
}

func (e *FlatPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req SelectionRequest
	cmd := &cobra.Command{
		Use:   "flat <character>",
		Short: "Compose a flat prompt",
		Long: `Compose a single comma-separated prompt.

With --output text only the prompt text is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Character = args[0]
			client := api.NewClient(getServerURL())
			var resp prompt.GenerationPrompt
			if err := client.Post(cmd.Context(), "/api/prompts/flat", req, &resp); err != nil {
				return err
			}
			if api.GetOutputFormat() == api.OutputFormatText {
				return api.Output(resp.Prompt)
			}
			return api.Output(resp)
		},
	}
	addSelectionFlags(cmd, &req)
	return cmd
}
