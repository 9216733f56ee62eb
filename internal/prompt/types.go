// Package prompt assembles image-generation prompts from character records.
//
// Everything here is a pure function of its inputs: no I/O, no package state
// that changes after init, and the records passed in are never modified. The
// only randomness (the scene pick in Planner.Content) goes through an
// injectable Rand.
package prompt

import (
	"errors"

	"github.com/cosmicfriends/promptkit/internal/character"
)

var (
	// ErrNoPoses is returned when no reference pose can be resolved.
	ErrNoPoses = errors.New("character has no reference poses")

	ErrUnknownMood        = errors.New("unknown mood")
	ErrUnknownContentType = errors.New("unknown content type")
	ErrUnknownBackground  = errors.New("unknown background")
	ErrUnknownVariety     = errors.New("unknown batch variety")
)

// Overrides replace individual resolved values. An empty string means the
// override was not supplied.
type Overrides struct {
	Location   string `json:"location,omitempty" yaml:"location,omitempty"`
	Time       string `json:"time,omitempty" yaml:"time,omitempty"`
	Atmosphere string `json:"atmosphere,omitempty" yaml:"atmosphere,omitempty"`
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`
	Action     string `json:"action,omitempty" yaml:"action,omitempty"` // scene pose interaction
}

// Selection picks the scene, pose and outfit to render. Nil fields fall back
// to the character's defaults.
type Selection struct {
	Scene     *character.SceneTemplate
	Pose      *character.ReferencePose
	Outfit    *character.OutfitTemplate
	Overrides Overrides
}

// Settings carries the render settings a generator needs alongside the text.
type Settings struct {
	AspectRatio string `json:"aspect_ratio" yaml:"aspect_ratio"`
	Quality     string `json:"quality" yaml:"quality"`
	Resolution  string `json:"resolution" yaml:"resolution"`
}

// GenerationPrompt is one ready-to-send prompt.
type GenerationPrompt struct {
	CharacterID    string   `json:"character_id" yaml:"character_id"`
	SceneID        string   `json:"scene_id" yaml:"scene_id"`
	OutfitID       string   `json:"outfit_id,omitempty" yaml:"outfit_id,omitempty"`
	Prompt         string   `json:"prompt" yaml:"prompt"`
	NegativePrompt string   `json:"negative_prompt" yaml:"negative_prompt"`
	Settings       Settings `json:"settings" yaml:"settings"`
}

// StructuredPrompt is the fully resolved, sectioned form of a prompt.
type StructuredPrompt struct {
	Meta              Meta              `json:"meta" yaml:"meta"`
	Scene             Scene             `json:"scene" yaml:"scene"`
	Lighting          Lighting          `json:"lighting" yaml:"lighting"`
	CameraPerspective CameraPerspective `json:"camera_perspective" yaml:"camera_perspective"`
	Subject           Subject           `json:"subject" yaml:"subject"`
	Details           Details           `json:"details" yaml:"details"`
}

type Meta struct {
	CharacterID   string `json:"character_id" yaml:"character_id"`
	CharacterName string `json:"character_name" yaml:"character_name"`
	AspectRatio   string `json:"aspect_ratio" yaml:"aspect_ratio"`
	Quality       string `json:"quality" yaml:"quality"`
	Resolution    string `json:"resolution" yaml:"resolution"`
	Camera        string `json:"camera" yaml:"camera"`
	Lens          string `json:"lens" yaml:"lens"`
	Style         string `json:"style" yaml:"style"`
}

type Scene struct {
	Location    string   `json:"location" yaml:"location"`
	Environment []string `json:"environment" yaml:"environment"`
	Time        string   `json:"time" yaml:"time"`
	Atmosphere  string   `json:"atmosphere" yaml:"atmosphere"`
}

type Lighting struct {
	Type      string `json:"type" yaml:"type"`
	KeyLight  string `json:"key_light" yaml:"key_light"`
	FillLight string `json:"fill_light" yaml:"fill_light"`
	Effect    string `json:"effect" yaml:"effect"`
}

// CameraPerspective mixes the scene's camera with the pose's angle and
// framing.
type CameraPerspective struct {
	POV      string `json:"pov" yaml:"pov"`
	Angle    string `json:"angle" yaml:"angle"`
	Framing  string `json:"framing" yaml:"framing"`
	Distance string `json:"distance" yaml:"distance"`
	Motion   string `json:"motion" yaml:"motion"`
}

type Subject struct {
	Gender    string      `json:"gender" yaml:"gender"`
	Age       string      `json:"age" yaml:"age"`
	Ethnicity string      `json:"ethnicity" yaml:"ethnicity"`
	Body      SubjectBody `json:"body" yaml:"body"`
	Hair      SubjectHair `json:"hair" yaml:"hair"`
	Face      SubjectFace `json:"face" yaml:"face"`
	Pose      SubjectPose `json:"pose" yaml:"pose"`
	Outfit    *Outfit     `json:"outfit,omitempty" yaml:"outfit,omitempty"`
}

type SubjectBody struct {
	Type    string `json:"type" yaml:"type"`
	Height  string `json:"height" yaml:"height"`
	Build   string `json:"build" yaml:"build"`
	Posture string `json:"posture" yaml:"posture"`
}

type SubjectHair struct {
	Color   string `json:"color" yaml:"color"`
	Length  string `json:"length" yaml:"length"`
	Style   string `json:"style" yaml:"style"`
	Details string `json:"details" yaml:"details"`
}

type SubjectFace struct {
	Expression string `json:"expression" yaml:"expression"`
	Eyes       string `json:"eyes" yaml:"eyes"`
	Makeup     string `json:"makeup" yaml:"makeup"`
	Skin       string `json:"skin" yaml:"skin"`
}

type SubjectPose struct {
	Position    string `json:"position" yaml:"position"`
	Body        string `json:"body" yaml:"body"`
	Arms        string `json:"arms" yaml:"arms"`
	Head        string `json:"head" yaml:"head"`
	Interaction string `json:"interaction" yaml:"interaction"`
}

type Outfit struct {
	Top         character.Garment `json:"top" yaml:"top"`
	Bottom      character.Garment `json:"bottom" yaml:"bottom"`
	Footwear    character.Garment `json:"footwear" yaml:"footwear"`
	Accessories []string          `json:"accessories" yaml:"accessories"`
}

type Details struct {
	Vibe             string   `json:"vibe" yaml:"vibe"`
	Aesthetic        string   `json:"aesthetic" yaml:"aesthetic"`
	Focus            string   `json:"focus" yaml:"focus"`
	PositiveKeywords []string `json:"positive_keywords" yaml:"positive_keywords"`
	NegativeKeywords []string `json:"negative_keywords" yaml:"negative_keywords"`
}

// settingsFor copies the render settings from the character meta.
func settingsFor(c *character.Character) Settings {
	meta := c.Visual.Generation.Meta
	return Settings{
		AspectRatio: meta.AspectRatio,
		Quality:     meta.Quality,
		Resolution:  meta.Resolution,
	}
}
