package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/api"
	"github.com/cosmicfriends/promptkit/internal/character"
	"github.com/cosmicfriends/promptkit/internal/prompt"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// ListCharactersResponse is the response for listing characters.
type ListCharactersResponse struct {
	Characters []character.Summary `json:"characters" yaml:"characters"`
}

// ListCharactersEndpoint handles GET /api/characters.
type ListCharactersEndpoint struct{}

func (e *ListCharactersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/characters", e.handler
}

func (e *ListCharactersEndpoint) RequiresInit() bool { return true }

func (e *ListCharactersEndpoint) Group() string { return groupCharacters }

// handler godoc
//
//	@Summary		List characters
//	@Description	Summaries of every loaded character, optionally filtered by theme color
//	@Tags			characters
//	@Produce		json
//	@Param			color	query		string	false	"Theme color"
//	@Success		200		{object}	ListCharactersResponse
//	@Router			/api/characters [get]
func (e *ListCharactersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	reg := svcctx.CharactersFrom(r.Context())
	if reg == nil {
		writeError(w, http.StatusInternalServerError, "character registry not available")
		return
	}

	chars := reg.All()
	if color := r.URL.Query().Get("color"); color != "" {
		chars = reg.ByColor(color)
	}

	resp := ListCharactersResponse{Characters: make([]character.Summary, 0, len(chars))}
	for _, c := range chars {
		resp.Characters = append(resp.Characters, c.Summarize())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListCharactersEndpoint) Command(getServerURL func() string) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loaded characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/characters"
			if color != "" {
				path += "?color=" + url.QueryEscape(color)
			}
			client := api.NewClient(getServerURL())
			var resp ListCharactersResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Only list characters with this theme color")
	return cmd
}

// GetCharacterEndpoint handles GET /api/characters/{id}.
// The id may also be a character name, matched ignoring case.
type GetCharacterEndpoint struct{}

func (e *GetCharacterEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/characters/{id}", e.handler
}

func (e *GetCharacterEndpoint) RequiresInit() bool { return true }

func (e *GetCharacterEndpoint) Group() string { return groupCharacters }

// handler godoc
//
//	@Summary		Get character
//	@Description	Full record of a character by id or name
//	@Tags			characters
//	@Produce		json
//	@Param			id	path		string	true	"Character id or name"
//	@Success		200	{object}	character.Character
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/characters/{id} [get]
func (e *GetCharacterEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	c, err := findCharacter(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (e *GetCharacterEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|name>",
		Short: "Get a character record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var c character.Character
			if err := client.Get(cmd.Context(), "/api/characters/"+url.PathEscape(args[0]), &c); err != nil {
				return err
			}
			return api.Output(c)
		},
	}
}

// NegativePromptResponse carries a character's negative prompt.
type NegativePromptResponse struct {
	CharacterID    string `json:"character_id" yaml:"character_id"`
	NegativePrompt string `json:"negative_prompt" yaml:"negative_prompt"`
	// Baseline lists the built-in keywords appended after the character's own.
	Baseline []string `json:"baseline" yaml:"baseline"`
}

// NegativePromptEndpoint handles GET /api/characters/{id}/negative.
type NegativePromptEndpoint struct{}

func (e *NegativePromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/characters/{id}/negative", e.handler
}

func (e *NegativePromptEndpoint) RequiresInit() bool { return true }

func (e *NegativePromptEndpoint) Group() string { return groupCharacters }

func (e *NegativePromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	c, err := findCharacter(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NegativePromptResponse{
		CharacterID:    c.Identity.ID,
		NegativePrompt: prompt.NegativePrompt(c),
		Baseline:       prompt.BaselineNegatives(),
	})
}

func (e *NegativePromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "negative <id|name>",
		Short: "Get a character's negative prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp NegativePromptResponse
			path := fmt.Sprintf("/api/characters/%s/negative", url.PathEscape(args[0]))
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			if api.GetOutputFormat() == api.OutputFormatText {
				return api.Output(resp.NegativePrompt)
			}
			return api.Output(resp)
		},
	}
}

var (
	errNotFound   = errors.New("not found")
	errBadRequest = errors.New("bad request")
)

// writeEngineError maps an error to its HTTP status.
func writeEngineError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, prompt.ErrNoPoses),
		errors.Is(err, prompt.ErrUnknownMood),
		errors.Is(err, prompt.ErrUnknownContentType),
		errors.Is(err, prompt.ErrUnknownBackground),
		errors.Is(err, prompt.ErrUnknownVariety):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
