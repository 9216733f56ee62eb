package prompt

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/cosmicfriends/promptkit/internal/character"
)

// Mood drives the facial expression of content and batch prompts.
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodPensive    Mood = "pensive"
	MoodExcited    Mood = "excited"
	MoodCalm       Mood = "calm"
	MoodMysterious Mood = "mysterious"
)

// moods is the fixed mood cycle used by batches.
var moods = []Mood{MoodHappy, MoodPensive, MoodExcited, MoodCalm, MoodMysterious}

var contentExpressions = map[Mood]string{
	MoodHappy:      "genuine warm smile, eyes crinkled with joy",
	MoodPensive:    "thoughtful distant gaze, contemplative",
	MoodExcited:    "bright eyes, animated expression, energy visible",
	MoodCalm:       "serene peaceful expression, soft content smile",
	MoodMysterious: "enigmatic slight smile, knowing eyes",
}

// Moods returns every mood in cycle order.
func Moods() []Mood {
	return slices.Clone(moods)
}

// ParseMood validates a mood name.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if _, ok := contentExpressions[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
	}
	return m, nil
}

// Expression returns the content expression text for the mood.
func (m Mood) Expression() (string, bool) {
	e, ok := contentExpressions[m]
	return e, ok
}

// ContentType selects camera presets and the aspect ratio of content
// prompts.
type ContentType string

const (
	ContentSelfie    ContentType = "selfie"
	ContentCandid    ContentType = "candid"
	ContentAesthetic ContentType = "aesthetic"
	ContentStory     ContentType = "story"
)

var contentCameras = map[ContentType]character.CameraPerspective{
	ContentSelfie: {
		POV:      "selfie angle",
		Angle:    "slightly above eye level",
		Framing:  "closeup to portrait",
		Distance: "arm length",
		Motion:   "candid moment",
	},
	ContentCandid: {
		POV:      "friend taking photo",
		Angle:    "natural eye level",
		Framing:  "half_body to full_body",
		Distance: "2-3 meters",
		Motion:   "caught naturally",
	},
	ContentAesthetic: {
		POV:      "artistic composition",
		Angle:    "creative angle",
		Framing:  "dramatic framing",
		Distance: "varies for composition",
		Motion:   "perfectly still moment",
	},
	ContentStory: {
		POV:      "narrative perspective",
		Angle:    "cinematic",
		Framing:  "wide establishing",
		Distance: "environmental",
		Motion:   "story beat frozen",
	},
}

// ContentTypes returns every content type.
func ContentTypes() []ContentType {
	return []ContentType{ContentSelfie, ContentCandid, ContentAesthetic, ContentStory}
}

// ParseContentType validates a content type name.
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if _, ok := contentCameras[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
	return t, nil
}

// ContentCamera returns the camera preset for a content type. The flat
// prompt does not use it; it is there for structured consumers.
func ContentCamera(t ContentType) (character.CameraPerspective, bool) {
	cam, ok := contentCameras[t]
	return cam, ok
}

// AspectRatio is 16:9 for stories and 9:16 for everything else.
func (t ContentType) AspectRatio() string {
	if t == ContentStory {
		return "16:9"
	}
	return "9:16"
}

// sceneCategories lists the scene categories a content type draws from.
func (t ContentType) sceneCategories() []character.SceneCategory {
	if t == ContentAesthetic {
		return []character.SceneCategory{character.CategoryAesthetic, character.CategoryEmotional}
	}
	return []character.SceneCategory{character.CategoryEveryday, character.CategoryAesthetic}
}

// Rand is the random source used for scene picks. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Planner generates prompts that involve a random choice.
type Planner struct {
	rnd Rand
}

// NewPlanner creates a planner drawing from rnd. A nil rnd uses the
// process-wide generator, which is safe for concurrent use.
func NewPlanner(rnd Rand) *Planner {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Planner{rnd: rnd}
}

// Content builds a single social-content prompt. The scene is picked at
// random from the categories the content type allows, falling back to the
// character's first scene.
func (p *Planner) Content(c *character.Character, mood Mood, contentType ContentType) (*GenerationPrompt, error) {
	expression, ok := mood.Expression()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMood, mood)
	}
	if _, ok := contentCameras[contentType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
	}

	text, err := ComposeFlat(c, Selection{
		Scene:     p.pickScene(c, contentType),
		Overrides: Overrides{Expression: expression},
	})
	if err != nil {
		return nil, err
	}

	meta := c.Visual.Generation.Meta
	return &GenerationPrompt{
		CharacterID:    c.Identity.ID,
		SceneID:        fmt.Sprintf("content_%s_%s", contentType, mood),
		Prompt:         text,
		NegativePrompt: NegativePrompt(c),
		Settings: Settings{
			AspectRatio: contentType.AspectRatio(),
			Quality:     meta.Quality,
			Resolution:  meta.Resolution,
		},
	}, nil
}

// pickScene returns nil when no scene matches so the composer applies its
// own fallback.
func (p *Planner) pickScene(c *character.Character, contentType ContentType) *character.SceneTemplate {
	allowed := contentType.sceneCategories()
	var candidates []*character.SceneTemplate
	for i := range c.Visual.SceneTemplates {
		s := &c.Visual.SceneTemplates[i]
		if slices.Contains(allowed, s.Category) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[p.rnd.IntN(len(candidates))]
}
