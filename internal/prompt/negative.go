package prompt

import (
	"strings"

	"github.com/cosmicfriends/promptkit/internal/character"
)

// baselineNegatives follow the character's own negative keywords in every
// negative prompt.
var baselineNegatives = []string{
	"blurry",
	"low quality",
	"distorted",
	"deformed",
	"bad anatomy",
	"extra limbs",
	"ugly",
	"duplicate",
	"watermark",
	"text",
	"signature",
}

// BaselineNegatives returns a copy of the built-in negative keywords.
func BaselineNegatives() []string {
	return cloneList(baselineNegatives)
}

// NegativePrompt joins the character's negative keywords and the baseline
// list, in that order. Keywords present in both lists appear twice.
func NegativePrompt(c *character.Character) string {
	own := c.Visual.Generation.NegativePrompts
	all := make([]string, 0, len(own)+len(baselineNegatives))
	all = append(all, own...)
	all = append(all, baselineNegatives...)
	return strings.Join(all, ", ")
}
