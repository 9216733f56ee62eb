package prompt

import (
	"github.com/cosmicfriends/promptkit/internal/character"
)

// testCharacter returns a fully populated record with two poses, three
// scenes and two wardrobe categories. Each call returns a fresh value.
func testCharacter() *character.Character {
	return &character.Character{
		Identity: character.Identity{
			ID:        "cf-007",
			Number:    7,
			Name:      "Zephyr",
			Archetype: "The Dreamer",
			Tagline:   "Always somewhere between clouds",
			Color:     "sky",
		},
		Visual: character.Visual{
			Physical: character.Physical{
				Gender:    "female",
				AgeRange:  "early 20s",
				Ethnicity: "Japanese",
				Body:      character.Body{Type: "slim", Height: "average height", Build: "delicate frame"},
				Hair: character.Hair{
					Color:   "silver",
					Length:  "shoulder-length",
					Style:   "wavy",
					Details: []string{"loose strands framing face", "subtle sheen"},
				},
				Face: character.Face{
					Eyes: character.Eyes{Color: "grey-blue", Shape: "almond"},
					Skin: character.Skin{Tone: "fair", Texture: "natural with light freckles"},
				},
			},
			Style: character.Style{
				Makeup:    character.Makeup{Style: "soft natural"},
				Aesthetic: []string{"dreamy", "pastel"},
				Wardrobe: character.Wardrobe{
					character.Casual: {
						{
							Name:        "cloud hoodie",
							Top:         character.Garment{Type: "oversized hoodie", Color: "pale blue"},
							Bottom:      character.Garment{Type: "pleated skirt", Color: "white"},
							Footwear:    character.Garment{Type: "canvas sneakers", Color: "white"},
							Accessories: []string{"silver hair clip"},
						},
						{
							Name:        "lazy sunday",
							Top:         character.Garment{Type: "knit sweater", Color: "cream"},
							Bottom:      character.Garment{Type: "wide jeans", Color: "light wash"},
							Footwear:    character.Garment{Type: "loafers", Color: "brown"},
							Accessories: []string{},
						},
					},
					character.GoingOut: {
						{
							Name:        "night sky dress",
							Top:         character.Garment{Type: "slip dress", Color: "navy"},
							Bottom:      character.Garment{Type: "sheer tights", Color: "black"},
							Footwear:    character.Garment{Type: "ankle boots", Color: "black"},
							Accessories: []string{"star earrings", "small clutch"},
						},
					},
				},
			},
			Generation: character.Generation{
				Meta:   character.Meta{AspectRatio: "9:16", Quality: "ultra detailed", Resolution: "4k", Style: "photorealistic"},
				Camera: character.Camera{Type: "full-frame mirrorless", Lens: "85mm f/1.4"},
				Lighting: character.Lighting{
					PreferredType: "golden hour",
					KeyLight:      "warm sun from left",
					FillLight:     "soft bounce",
					Mood:          "gentle and warm",
				},
				PositivePrompts: []string{"film grain", "natural skin"},
				NegativePrompts: []string{"extra fingers", "plastic skin"},
			},
			ReferencePoses: []character.ReferencePose{
				{
					ID:              "front",
					Angle:           character.Angle{Height: "eye level", Framing: "full_body"},
					PoseDescription: "standing straight, arms relaxed",
					Expression:      "soft smile",
				},
				{
					ID:              "three_quarter",
					Angle:           character.Angle{Height: "slightly above", Framing: "half_body"},
					PoseDescription: "turned three quarters, hand on hip",
					Expression:      "curious look",
				},
			},
			SceneTemplates: []character.SceneTemplate{
				{
					ID:       "rooftop",
					Name:     "Rooftop Clouds",
					Category: character.CategoryAesthetic,
					Scene: character.Setting{
						Location:    "city rooftop",
						Environment: []string{"drifting clouds", "distant skyline"},
						Time:        "late afternoon",
						Atmosphere:  "airy and quiet",
					},
					CameraPerspective: character.CameraPerspective{
						POV:      "friend's phone",
						Angle:    "low angle",
						Framing:  "full body",
						Distance: "3 meters",
						Motion:   "hair moving in wind",
					},
					Pose: character.ScenePose{
						Position:    "leaning on railing",
						Body:        "relaxed lean",
						Arms:        "resting on rail",
						Expression:  "wistful smile",
						Interaction: "gazing at sky",
					},
					OutfitCategory: character.Casual,
					Vibe:           "daydream",
				},
				{
					ID:       "cafe",
					Name:     "Corner Cafe",
					Category: character.CategoryEveryday,
					Scene: character.Setting{
						Location:    "small corner cafe",
						Environment: []string{"steamed windows", "wooden table"},
						Time:        "morning",
						Atmosphere:  "cozy",
					},
					CameraPerspective: character.CameraPerspective{
						POV:      "across the table",
						Angle:    "eye level",
						Framing:  "half body",
						Distance: "1 meter",
						Motion:   "still",
					},
					Pose: character.ScenePose{
						Position:    "seated by window",
						Body:        "leaning forward",
						Arms:        "hands around mug",
						Expression:  "sleepy grin",
						Interaction: "looking at camera",
					},
					OutfitCategory: character.GoingOut,
					Vibe:           "slow morning",
				},
				{
					ID:       "rain",
					Name:     "Rainy Window",
					Category: character.CategoryEmotional,
					Scene: character.Setting{
						Location:    "bedroom window seat",
						Environment: []string{"rain on glass"},
						Time:        "dusk",
						Atmosphere:  "melancholic",
					},
					CameraPerspective: character.CameraPerspective{
						POV:      "doorway",
						Angle:    "slightly high",
						Framing:  "medium",
						Distance: "2 meters",
						Motion:   "still",
					},
					Pose: character.ScenePose{
						Position:    "curled on cushion",
						Body:        "knees up",
						Arms:        "hugging knees",
						Expression:  "distant",
						Interaction: "watching raindrops",
					},
					OutfitCategory: character.Casual,
					Vibe:           "quiet longing",
				},
			},
		},
	}
}
