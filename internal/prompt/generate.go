package prompt

import "github.com/cosmicfriends/promptkit/internal/character"

// Generate renders a single selection as a ready-to-send prompt carrying
// the resolved scene and outfit ids.
func Generate(c *character.Character, sel Selection) (*GenerationPrompt, error) {
	r, err := resolve(c, sel)
	if err != nil {
		return nil, err
	}

	text, err := ComposeFlat(c, sel)
	if err != nil {
		return nil, err
	}

	gp := &GenerationPrompt{
		CharacterID:    c.Identity.ID,
		SceneID:        r.scene.ID,
		Prompt:         text,
		NegativePrompt: NegativePrompt(c),
		Settings:       settingsFor(c),
	}
	if r.outfit != nil {
		gp.OutfitID = r.outfit.Name
	}
	return gp, nil
}
