package character

import "fmt"

// String returns "Name (id)".
func (c *Character) String() string {
	return fmt.Sprintf("%s (%s)", c.Identity.Name, c.Identity.ID)
}

// SceneByID returns the scene template with the given id.
func (c *Character) SceneByID(id string) (*SceneTemplate, bool) {
	for _, s := range c.Visual.SceneTemplates {
		if s.ID == id {
			found := s
			return &found, true
		}
	}
	return nil, false
}

// PoseByID returns the reference pose with the given id.
func (c *Character) PoseByID(id string) (*ReferencePose, bool) {
	for _, p := range c.Visual.ReferencePoses {
		if p.ID == id {
			found := p
			return &found, true
		}
	}
	return nil, false
}

// Summary is the list view of a character.
type Summary struct {
	ID        string `json:"id" yaml:"id"`
	Number    int    `json:"number,omitempty" yaml:"number,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Archetype string `json:"archetype" yaml:"archetype"`
	Tagline   string `json:"tagline" yaml:"tagline"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	Poses     int    `json:"poses" yaml:"poses"`
	Scenes    int    `json:"scenes" yaml:"scenes"`
}

// Summarize projects a character into its list view.
func (c *Character) Summarize() Summary {
	return Summary{
		ID:        c.Identity.ID,
		Number:    c.Identity.Number,
		Name:      c.Identity.Name,
		Archetype: c.Identity.Archetype,
		Tagline:   c.Identity.Tagline,
		Color:     c.Identity.Color,
		Poses:     len(c.Visual.ReferencePoses),
		Scenes:    len(c.Visual.SceneTemplates),
	}
}
