package prompt

import (
	"fmt"

	"github.com/cosmicfriends/promptkit/internal/character"
)

// Background selects the scene a sprite sheet is rendered against.
type Background string

const (
	BackgroundNeutral     Background = "neutral"
	BackgroundTransparent Background = "transparent"
	BackgroundScene       Background = "scene" // the character's first scene
)

// ParseBackground validates a background name. Empty means neutral.
func ParseBackground(s string) (Background, error) {
	switch b := Background(s); b {
	case "":
		return BackgroundNeutral, nil
	case BackgroundNeutral, BackgroundTransparent, BackgroundScene:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackground, s)
	}
}

// SpriteSheetOptions configures SpriteSheet.
type SpriteSheetOptions struct {
	// Poses to render, in order. Nil means every reference pose.
	Poses []character.ReferencePose
	// Outfit held constant across the sheet. Nil means the first casual
	// outfit.
	Outfit     *character.OutfitTemplate
	Background Background
}

// SpriteSheet returns one prompt per pose, all sharing a background and an
// outfit. Each scene id is "sprite_<pose id>".
func SpriteSheet(c *character.Character, opts SpriteSheetOptions) ([]GenerationPrompt, error) {
	bg, err := ParseBackground(string(opts.Background))
	if err != nil {
		return nil, err
	}

	poses := opts.Poses
	if poses == nil {
		poses = c.Visual.ReferencePoses
	}
	if len(poses) == 0 {
		return nil, ErrNoPoses
	}

	outfit := opts.Outfit
	if outfit == nil {
		outfit, _ = c.Visual.Style.Wardrobe.First(character.Casual)
	}

	scene := backgroundScene(c, bg)
	negative := NegativePrompt(c)
	settings := settingsFor(c)

	out := make([]GenerationPrompt, 0, len(poses))
	for i := range poses {
		pose := &poses[i]
		text, err := ComposeFlat(c, Selection{Scene: scene, Pose: pose, Outfit: outfit})
		if err != nil {
			return nil, err
		}

		gp := GenerationPrompt{
			CharacterID:    c.Identity.ID,
			SceneID:        "sprite_" + pose.ID,
			Prompt:         text,
			NegativePrompt: negative,
			Settings:       settings,
		}
		if outfit != nil {
			gp.OutfitID = outfit.Name
		}
		out = append(out, gp)
	}
	return out, nil
}

func backgroundScene(c *character.Character, bg Background) *character.SceneTemplate {
	var s character.SceneTemplate
	switch bg {
	case BackgroundTransparent:
		s = TransparentBackgroundScene()
	case BackgroundScene:
		return firstScene(c)
	default:
		s = NeutralBackgroundScene()
	}
	return &s
}
