package prompt

import "github.com/cosmicfriends/promptkit/internal/character"

// DefaultScene is the studio portrait used when a character has no scene
// templates.
func DefaultScene() character.SceneTemplate {
	return character.SceneTemplate{
		ID:       "default",
		Name:     "Default",
		Category: character.CategoryEveryday,
		Scene: character.Setting{
			Location:    "neutral studio environment",
			Environment: []string{"soft gradient background", "professional lighting"},
			Time:        "afternoon",
			Atmosphere:  "calm and focused",
		},
		CameraPerspective: character.CameraPerspective{
			POV:      "professional portrait",
			Angle:    "eye level",
			Framing:  "portrait",
			Distance: "2 meters",
			Motion:   "still",
		},
		Pose: character.ScenePose{
			Position:    "standing centered",
			Body:        "relaxed natural stance",
			Arms:        "natural at sides",
			Expression:  "neutral engaging",
			Interaction: "looking at camera",
		},
		OutfitCategory: character.Casual,
		Vibe:           "approachable and present",
	}
}

// NeutralBackgroundScene is the plain gray studio used for reference sprites.
func NeutralBackgroundScene() character.SceneTemplate {
	return character.SceneTemplate{
		ID:       "neutral_bg",
		Name:     "Neutral Background",
		Category: character.CategorySpecial,
		Scene: character.Setting{
			Location: "professional studio",
			Environment: []string{
				"soft gray gradient background",
				"even professional lighting",
				"clean minimal space",
			},
			Time:       "afternoon",
			Atmosphere: "neutral, focused on subject",
		},
		CameraPerspective: character.CameraPerspective{
			POV:      "reference photo angle",
			Angle:    "varies per pose",
			Framing:  "varies per pose",
			Distance: "2 meters",
			Motion:   "completely still",
		},
		Pose: character.ScenePose{
			Position:    "centered in frame",
			Body:        "clear view of full pose",
			Arms:        "visible and defined",
			Expression:  "neutral reference expression",
			Interaction: "none - pure reference",
		},
		OutfitCategory: character.Casual,
		Vibe:           "clean reference image",
	}
}

// TransparentBackgroundScene isolates the subject for cutout assets.
func TransparentBackgroundScene() character.SceneTemplate {
	return character.SceneTemplate{
		ID:       "transparent_bg",
		Name:     "Transparent Background",
		Category: character.CategorySpecial,
		Scene: character.Setting{
			Location: "isolated on transparent background",
			Environment: []string{
				"pure transparent/alpha background",
				"subject fully isolated",
				"even lighting for cutout",
			},
			Time:       "afternoon",
			Atmosphere: "clean isolated subject",
		},
		CameraPerspective: character.CameraPerspective{
			POV:      "asset generation angle",
			Angle:    "varies per pose",
			Framing:  "varies per pose",
			Distance: "2 meters",
			Motion:   "completely still",
		},
		Pose: character.ScenePose{
			Position:    "centered, full body visible",
			Body:        "no cropping, complete figure",
			Arms:        "not crossing body edges",
			Expression:  "clear and defined",
			Interaction: "none",
		},
		OutfitCategory: character.Casual,
		Vibe:           "clean asset for compositing",
	}
}

// OutfitForScene returns the first outfit of the wardrobe category a scene
// asks for (casual when it names none). It returns nil when that category
// is missing or empty.
func OutfitForScene(c *character.Character, scene *character.SceneTemplate) *character.OutfitTemplate {
	category := character.Casual
	if scene != nil && scene.OutfitCategory != "" {
		category = scene.OutfitCategory
	}
	o, ok := c.Visual.Style.Wardrobe.First(category)
	if !ok {
		return nil
	}
	return o
}
