package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmicfriends/promptkit/internal/character"
	"github.com/cosmicfriends/promptkit/internal/metrics"
	"github.com/cosmicfriends/promptkit/internal/prompt"
	"github.com/cosmicfriends/promptkit/internal/svcctx"
)

// SelectionRequest names a character and, optionally, the scene, pose and
// outfit to render. Empty fields fall back to the character's defaults.
type SelectionRequest struct {
	Character string           `json:"character"`
	SceneID   string           `json:"scene_id,omitempty"`
	PoseID    string           `json:"pose_id,omitempty"`
	Outfit    string           `json:"outfit,omitempty"` // outfit name
	Overrides prompt.Overrides `json:"overrides,omitempty"`
}

// PromptsResponse wraps a list of generated prompts.
type PromptsResponse struct {
	Prompts []prompt.GenerationPrompt `json:"prompts" yaml:"prompts"`
}

// findCharacter looks a character up by id, then by name.
func findCharacter(ctx context.Context, ref string) (*character.Character, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: character is required", errBadRequest)
	}
	reg := svcctx.CharactersFrom(ctx)
	if reg == nil {
		return nil, errors.New("character registry not available")
	}
	c, ok := reg.Find(ref)
	if !ok {
		return nil, fmt.Errorf("character %q %w", ref, errNotFound)
	}
	metrics.ObservationFrom(ctx).SetCharacter(c.Identity.ID)
	return c, nil
}

// findOutfit searches the whole wardrobe for an outfit by name.
func findOutfit(c *character.Character, name string) (*character.OutfitTemplate, error) {
	if name == "" {
		return nil, nil
	}
	o, ok := c.Visual.Style.Wardrobe.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("outfit %q for %s %w", name, c.Identity.ID, errNotFound)
	}
	return o, nil
}

// resolve loads the character and turns the request ids into a selection.
func (req SelectionRequest) resolve(ctx context.Context) (*character.Character, prompt.Selection, error) {
	c, err := findCharacter(ctx, req.Character)
	if err != nil {
		return nil, prompt.Selection{}, err
	}

	sel := prompt.Selection{Overrides: req.Overrides}

	if req.SceneID != "" {
		scene, ok := c.SceneByID(req.SceneID)
		if !ok {
			return nil, prompt.Selection{}, fmt.Errorf("scene %q for %s %w", req.SceneID, c.Identity.ID, errNotFound)
		}
		sel.Scene = scene
	}
	if req.PoseID != "" {
		pose, ok := c.PoseByID(req.PoseID)
		if !ok {
			return nil, prompt.Selection{}, fmt.Errorf("pose %q for %s %w", req.PoseID, c.Identity.ID, errNotFound)
		}
		sel.Pose = pose
	}
	outfit, err := findOutfit(c, req.Outfit)
	if err != nil {
		return nil, prompt.Selection{}, err
	}
	sel.Outfit = outfit

	return c, sel, nil
}

// addSelectionFlags binds the selection and override flags shared by the
// prompt commands.
func addSelectionFlags(cmd *cobra.Command, req *SelectionRequest) {
	f := cmd.Flags()
	f.StringVar(&req.SceneID, "scene", "", "Scene template id (default: first scene)")
	f.StringVar(&req.PoseID, "pose", "", "Reference pose id (default: first pose)")
	f.StringVar(&req.Outfit, "outfit", "", "Outfit name (default: first outfit of the scene's category)")
	f.StringVar(&req.Overrides.Location, "location", "", "Override the scene location")
	f.StringVar(&req.Overrides.Time, "time", "", "Override the time of day")
	f.StringVar(&req.Overrides.Atmosphere, "atmosphere", "", "Override the atmosphere")
	f.StringVar(&req.Overrides.Expression, "expression", "", "Override the facial expression")
	f.StringVar(&req.Overrides.Action, "action", "", "Override the scene interaction")
}
