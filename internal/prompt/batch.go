package prompt

import (
	"fmt"

	"github.com/cosmicfriends/promptkit/internal/character"
)

// Variety selects which axis changes from one batch entry to the next.
type Variety string

const (
	VarietyScenes  Variety = "scenes"
	VarietyOutfits Variety = "outfits"
	VarietyMoods   Variety = "moods"
	VarietyAll     Variety = "all"
)

// ParseVariety validates a variety name. Empty means all.
func ParseVariety(s string) (Variety, error) {
	switch v := Variety(s); v {
	case "":
		return VarietyAll, nil
	case VarietyScenes, VarietyOutfits, VarietyMoods, VarietyAll:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariety, s)
	}
}

// batchExpressions are shorter than the content expressions so they sit
// better next to the scene's own pose text.
var batchExpressions = map[Mood]string{
	MoodHappy:      "warm genuine smile, joyful eyes",
	MoodPensive:    "thoughtful gaze, contemplative expression",
	MoodExcited:    "bright animated expression, energetic",
	MoodCalm:       "serene peaceful, soft content smile",
	MoodMysterious: "enigmatic slight smile, knowing look",
}

// Batch returns count prompts. Entry i uses scenes[i%N], outfits[i%M] and
// moods[i%5] on the axes the variety allows to change; fixed axes use the
// first scene, the first outfit and a calm mood. Outfits are the casual
// outfits followed by the going-out ones. An unknown variety behaves like
// VarietyAll.
func Batch(c *character.Character, count int, variety Variety) ([]GenerationPrompt, error) {
	if count <= 0 {
		return []GenerationPrompt{}, nil
	}

	scenes := make([]*character.SceneTemplate, 0, len(c.Visual.SceneTemplates))
	for i := range c.Visual.SceneTemplates {
		scenes = append(scenes, &c.Visual.SceneTemplates[i])
	}
	if len(scenes) == 0 {
		scenes = append(scenes, firstScene(c))
	}

	wardrobe := c.Visual.Style.Wardrobe
	var outfits []character.OutfitTemplate
	outfits = append(outfits, wardrobe.Outfits(character.Casual)...)
	outfits = append(outfits, wardrobe.Outfits(character.GoingOut)...)

	outfitAt := func(i int) *character.OutfitTemplate {
		if len(outfits) == 0 {
			return nil
		}
		return &outfits[i%len(outfits)]
	}

	negative := NegativePrompt(c)
	settings := settingsFor(c)

	out := make([]GenerationPrompt, 0, count)
	for i := 0; i < count; i++ {
		var (
			scene  *character.SceneTemplate
			outfit *character.OutfitTemplate
			mood   Mood
		)

		switch variety {
		case VarietyScenes:
			scene, outfit, mood = scenes[i%len(scenes)], outfitAt(0), MoodCalm
		case VarietyOutfits:
			scene, outfit, mood = scenes[0], outfitAt(i), MoodCalm
		case VarietyMoods:
			scene, outfit, mood = scenes[0], outfitAt(0), moods[i%len(moods)]
		default:
			scene, outfit, mood = scenes[i%len(scenes)], outfitAt(i), moods[i%len(moods)]
		}

		text, err := ComposeFlat(c, Selection{
			Scene:     scene,
			Outfit:    outfit,
			Overrides: Overrides{Expression: batchExpressions[mood]},
		})
		if err != nil {
			return nil, err
		}

		gp := GenerationPrompt{
			CharacterID:    c.Identity.ID,
			SceneID:        fmt.Sprintf("batch_%d_%s", i, scene.ID),
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
