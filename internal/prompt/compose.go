package prompt

import (
	"strings"

	"github.com/cosmicfriends/promptkit/internal/character"
)

// Focus is the fixed depth-of-field phrase every prompt carries.
const Focus = "subject razor sharp, environment appropriately soft"

// resolved is a Selection with every fallback applied.
type resolved struct {
	scene  *character.SceneTemplate
	pose   *character.ReferencePose
	outfit *character.OutfitTemplate
	over   Overrides
}

// resolve applies the scene, pose and outfit fallbacks shared by every
// builder.
func resolve(c *character.Character, sel Selection) (resolved, error) {
	r := resolved{scene: sel.Scene, pose: sel.Pose, outfit: sel.Outfit, over: sel.Overrides}

	if r.scene == nil {
		r.scene = firstScene(c)
	}
	if r.pose == nil {
		if len(c.Visual.ReferencePoses) == 0 {
			return resolved{}, ErrNoPoses
		}
		r.pose = &c.Visual.ReferencePoses[0]
	}
	if r.outfit == nil {
		r.outfit = OutfitForScene(c, r.scene)
	}
	return r, nil
}

// firstScene returns the character's first scene template, or the built-in
// default scene when it has none.
func firstScene(c *character.Character) *character.SceneTemplate {
	if len(c.Visual.SceneTemplates) > 0 {
		return &c.Visual.SceneTemplates[0]
	}
	s := DefaultScene()
	return &s
}

// ComposeStructured builds the sectioned prompt for a character.
func ComposeStructured(c *character.Character, sel Selection) (*StructuredPrompt, error) {
	r, err := resolve(c, sel)
	if err != nil {
		return nil, err
	}

	v := c.Visual
	phys := v.Physical
	gen := v.Generation

	sp := &StructuredPrompt{
		Meta: Meta{
			CharacterID:   c.Identity.ID,
			CharacterName: c.Identity.Name,
			AspectRatio:   gen.Meta.AspectRatio,
			Quality:       gen.Meta.Quality,
			Resolution:    gen.Meta.Resolution,
			Camera:        gen.Camera.Type,
			Lens:          gen.Camera.Lens,
			Style:         gen.Meta.Style,
		},
		Scene: Scene{
			Location:    pick(r.over.Location, r.scene.Scene.Location),
			Environment: cloneList(r.scene.Scene.Environment),
			Time:        pick(r.over.Time, r.scene.Scene.Time),
			Atmosphere:  pick(r.over.Atmosphere, r.scene.Scene.Atmosphere),
		},
		Lighting: Lighting{
			Type:      gen.Lighting.PreferredType,
			KeyLight:  gen.Lighting.KeyLight,
			FillLight: gen.Lighting.FillLight,
			Effect:    gen.Lighting.Mood,
		},
		CameraPerspective: CameraPerspective{
			POV:      r.scene.CameraPerspective.POV,
			Angle:    r.pose.Angle.Height,
			Framing:  r.pose.Angle.Framing,
			Distance: r.scene.CameraPerspective.Distance,
			Motion:   r.scene.CameraPerspective.Motion,
		},
		Subject: Subject{
			Gender:    phys.Gender,
			Age:       phys.AgeRange,
			Ethnicity: phys.Ethnicity,
			Body: SubjectBody{
				Type:    phys.Body.Type,
				Height:  phys.Body.Height,
				Build:   phys.Body.Build,
				Posture: r.pose.PoseDescription,
			},
			Hair: SubjectHair{
				Color:   phys.Hair.Color,
				Length:  phys.Hair.Length,
				Style:   phys.Hair.Style,
				Details: joinList(phys.Hair.Details),
			},
			Face: SubjectFace{
				Expression: pick(r.over.Expression, r.pose.Expression),
				Eyes:       joinList([]string{phys.Face.Eyes.Color, phys.Face.Eyes.Shape}),
				Makeup:     v.Style.Makeup.Style,
				Skin:       joinList([]string{phys.Face.Skin.Tone, phys.Face.Skin.Texture}),
			},
			Pose: SubjectPose{
				Position:    r.scene.Pose.Position,
				Body:        r.scene.Pose.Body,
				Arms:        r.scene.Pose.Arms,
				Head:        r.pose.PoseDescription,
				Interaction: pick(r.over.Action, r.scene.Pose.Interaction),
			},
		},
		Details: Details{
			Vibe:             r.scene.Vibe,
			Aesthetic:        joinList(v.Style.Aesthetic),
			Focus:            Focus,
			PositiveKeywords: cloneList(gen.PositivePrompts),
			NegativeKeywords: cloneList(gen.NegativePrompts),
		},
	}

	if o := r.outfit; o != nil {
		sp.Subject.Outfit = &Outfit{
			Top:         o.Top,
			Bottom:      o.Bottom,
			Footwear:    o.Footwear,
			Accessories: cloneList(o.Accessories),
		}
	}

	return sp, nil
}

// ComposeFlat renders the same resolved values as ComposeStructured into a
// single comma-separated prompt. Fragment order is fixed: quality and style,
// subject, hair, face and pose, outfit, scene, camera, lighting, keywords.
func ComposeFlat(c *character.Character, sel Selection) (string, error) {
	r, err := resolve(c, sel)
	if err != nil {
		return "", err
	}

	v := c.Visual
	phys := v.Physical
	gen := v.Generation

	var f fragments

	f.add(suffixed(gen.Meta.Quality, " photograph"), gen.Meta.Style)
	f.add(v.Style.Aesthetic...)

	f.add(
		suffixed(phys.Gender, " character"),
		phys.AgeRange,
		phys.Ethnicity,
		suffixed(phys.Body.Type, " build"),
		phys.Body.Height,
		phys.Body.Build,
		r.pose.PoseDescription,
	)

	f.add(suffixed(joinWords(phys.Hair.Color, phys.Hair.Length, phys.Hair.Style), " hair"))
	f.add(phys.Hair.Details...)

	f.add(
		suffixed(joinList([]string{phys.Face.Eyes.Color, phys.Face.Eyes.Shape}), " eyes"),
		suffixed(joinList([]string{phys.Face.Skin.Tone, phys.Face.Skin.Texture}), " skin"),
		suffixed(v.Style.Makeup.Style, " makeup"),
		pick(r.over.Expression, r.pose.Expression),
		r.scene.Pose.Position,
		r.scene.Pose.Body,
		r.scene.Pose.Arms,
		pick(r.over.Action, r.scene.Pose.Interaction),
	)

	if o := r.outfit; o != nil {
		f.add(
			prefixed("wearing ", garment(o.Top)),
			garment(o.Bottom),
			garment(o.Footwear),
		)
		f.add(o.Accessories...)
	}

	f.add(
		prefixed("in ", pick(r.over.Location, r.scene.Scene.Location)),
		pick(r.over.Time, r.scene.Scene.Time),
		pick(r.over.Atmosphere, r.scene.Scene.Atmosphere),
	)
	f.add(r.scene.Scene.Environment...)
	f.add(r.scene.Vibe)

	f.add(
		prefixed("shot on ", gen.Camera.Type),
		gen.Camera.Lens,
		r.scene.CameraPerspective.POV,
		r.pose.Angle.Height,
		suffixed(r.pose.Angle.Framing, " shot"),
		r.scene.CameraPerspective.Distance,
		r.scene.CameraPerspective.Motion,
	)

	f.add(
		gen.Lighting.PreferredType,
		gen.Lighting.KeyLight,
		gen.Lighting.FillLight,
		gen.Lighting.Mood,
	)

	f.add(Focus)
	f.add(gen.PositivePrompts...)

	return f.String(), nil
}

// fragments collects the non-empty pieces of a flat prompt.
type fragments []string

func (f *fragments) add(parts ...string) {
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			*f = append(*f, p)
		}
	}
}

func (f fragments) String() string {
	return strings.Join(f, ", ")
}

// pick returns override when it was supplied, otherwise value.
func pick(override, value string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return value
}

// joinList joins the non-empty items with ", ".
func joinList(items []string) string {
	var f fragments
	f.add(items...)
	return f.String()
}

// joinWords joins the non-empty words with single spaces.
func joinWords(words ...string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

func garment(g character.Garment) string {
	return joinWords(g.Color, g.Type)
}

func prefixed(prefix, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return prefix + value
}

func suffixed(value, suffix string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value + suffix
}

// cloneList copies a list so callers cannot reach back into the record.
// The result is never nil.
func cloneList(items []string) []string {
	return append([]string{}, items...)
}
