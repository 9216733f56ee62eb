// Package character defines the persona records consumed by the prompt engine
// and the collaborators that load, validate and index them.
//
// Records are read-only once loaded. Nothing in this package or in the prompt
// engine mutates a Character after it has been decoded.
package character

// Character is one persona: identity plus everything needed to render it.
type Character struct {
	Identity Identity `json:"identity" yaml:"identity"`
	Visual   Visual   `json:"visual" yaml:"visual"`
}

// Identity holds the display-level facts about a character.
type Identity struct {
	ID        string `json:"id" yaml:"id"`
	Number    int    `json:"number,omitempty" yaml:"number,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Archetype string `json:"archetype" yaml:"archetype"`
	Tagline   string `json:"tagline" yaml:"tagline"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"` // theme color label
}

// Visual groups the physical, style and generation data plus the pose and
// scene catalogs.
type Visual struct {
	Physical       Physical        `json:"physical" yaml:"physical"`
	Style          Style           `json:"style" yaml:"style"`
	Generation     Generation      `json:"generation" yaml:"generation"`
	ReferencePoses []ReferencePose `json:"reference_poses" yaml:"reference_poses"`
	SceneTemplates []SceneTemplate `json:"scene_templates" yaml:"scene_templates"`
}

// Physical describes the body, hair and face.
type Physical struct {
	Gender    string `json:"gender" yaml:"gender"`
	AgeRange  string `json:"age_range" yaml:"age_range"`
	Ethnicity string `json:"ethnicity" yaml:"ethnicity"`
	Body      Body   `json:"body" yaml:"body"`
	Hair      Hair   `json:"hair" yaml:"hair"`
	Face      Face   `json:"face" yaml:"face"`
}

type Body struct {
	Type   string `json:"type" yaml:"type"`
	Height string `json:"height" yaml:"height"`
	Build  string `json:"build" yaml:"build"`
}

type Hair struct {
	Color   string   `json:"color" yaml:"color"`
	Length  string   `json:"length" yaml:"length"`
	Style   string   `json:"style" yaml:"style"`
	Details []string `json:"details" yaml:"details"`
}

type Face struct {
	Eyes Eyes `json:"eyes" yaml:"eyes"`
	Skin Skin `json:"skin" yaml:"skin"`
}

type Eyes struct {
	Color string `json:"color" yaml:"color"`
	Shape string `json:"shape" yaml:"shape"`
}

type Skin struct {
	Tone    string `json:"tone" yaml:"tone"`
	Texture string `json:"texture" yaml:"texture"`
}

// Style holds makeup, aesthetic keywords and the wardrobe catalog.
type Style struct {
	Makeup    Makeup   `json:"makeup" yaml:"makeup"`
	Aesthetic []string `json:"aesthetic" yaml:"aesthetic"`
	Wardrobe  Wardrobe `json:"wardrobe" yaml:"wardrobe"`
}

type Makeup struct {
	Style string `json:"style" yaml:"style"`
}

// Generation holds the image-generation preferences of a character.
type Generation struct {
	Meta            Meta     `json:"meta" yaml:"meta"`
	Camera          Camera   `json:"camera" yaml:"camera"`
	Lighting        Lighting `json:"lighting" yaml:"lighting"`
	PositivePrompts []string `json:"positive_prompts" yaml:"positive_prompts"`
	NegativePrompts []string `json:"negative_prompts" yaml:"negative_prompts"`
}

type Meta struct {
	AspectRatio string `json:"aspect_ratio" yaml:"aspect_ratio"` // e.g. "9:16"
	Quality     string `json:"quality" yaml:"quality"`
	Resolution  string `json:"resolution" yaml:"resolution"`
	Style       string `json:"style" yaml:"style"`
}

type Camera struct {
	Type string `json:"type" yaml:"type"`
	Lens string `json:"lens" yaml:"lens"`
}

type Lighting struct {
	PreferredType string `json:"preferred_type" yaml:"preferred_type"`
	KeyLight      string `json:"key_light" yaml:"key_light"`
	FillLight     string `json:"fill_light" yaml:"fill_light"`
	Mood          string `json:"mood" yaml:"mood"`
}

// ReferencePose is a body/face pose independent of any scene.
type ReferencePose struct {
	ID              string `json:"id" yaml:"id"`
	Angle           Angle  `json:"angle" yaml:"angle"`
	PoseDescription string `json:"pose_description" yaml:"pose_description"`
	Expression      string `json:"expression" yaml:"expression"`
}

type Angle struct {
	Height  string `json:"height" yaml:"height"`
	Framing string `json:"framing" yaml:"framing"`
}

// OutfitTemplate is one wardrobe entry.
type OutfitTemplate struct {
	Name        string   `json:"name" yaml:"name"`
	Top         Garment  `json:"top" yaml:"top"`
	Bottom      Garment  `json:"bottom" yaml:"bottom"`
	Footwear    Garment  `json:"footwear" yaml:"footwear"`
	Accessories []string `json:"accessories" yaml:"accessories"`
}

// Garment is a single clothing piece.
type Garment struct {
	Type  string `json:"type" yaml:"type"`
	Color string `json:"color" yaml:"color"`
}

// SceneCategory tags a scene template. The set is open: unknown categories
// load fine and simply never match the content-generation filters.
type SceneCategory string

const (
	CategoryEveryday  SceneCategory = "everyday"
	CategoryAesthetic SceneCategory = "aesthetic"
	CategoryEmotional SceneCategory = "emotional"
	CategorySpecial   SceneCategory = "special"
)

// SceneTemplate bundles location, camera and pose context for one shot.
type SceneTemplate struct {
	ID                string            `json:"id" yaml:"id"`
	Name              string            `json:"name" yaml:"name"`
	Category          SceneCategory     `json:"category" yaml:"category"`
	Scene             Setting           `json:"scene" yaml:"scene"`
	CameraPerspective CameraPerspective `json:"camera_perspective" yaml:"camera_perspective"`
	Pose              ScenePose         `json:"pose" yaml:"pose"`
	OutfitCategory    OutfitCategory    `json:"outfit_category" yaml:"outfit_category"`
	Vibe              string            `json:"vibe" yaml:"vibe"`
}

// Setting is the where/when of a scene.
type Setting struct {
	Location    string   `json:"location" yaml:"location"`
	Environment []string `json:"environment" yaml:"environment"`
	Time        string   `json:"time" yaml:"time"`
	Atmosphere  string   `json:"atmosphere" yaml:"atmosphere"`
}

type CameraPerspective struct {
	POV      string `json:"pov" yaml:"pov"`
	Angle    string `json:"angle" yaml:"angle"`
	Framing  string `json:"framing" yaml:"framing"`
	Distance string `json:"distance" yaml:"distance"`
	Motion   string `json:"motion" yaml:"motion"`
}

type ScenePose struct {
	Position    string `json:"position" yaml:"position"`
	Body        string `json:"body" yaml:"body"`
	Arms        string `json:"arms" yaml:"arms"`
	Expression  string `json:"expression" yaml:"expression"`
	Interaction string `json:"interaction" yaml:"interaction"`
}
