package character

import "sort"

// OutfitCategory keys the wardrobe catalog.
type OutfitCategory string

const (
	Casual   OutfitCategory = "casual"
	GoingOut OutfitCategory = "going_out"
)

// Wardrobe maps an outfit category to its ordered outfits.
type Wardrobe map[OutfitCategory][]OutfitTemplate

// Outfits returns the outfits for a category. A missing category yields an
// empty slice.
func (w Wardrobe) Outfits(category OutfitCategory) []OutfitTemplate {
	if w == nil {
		return []OutfitTemplate{}
	}
	outfits, ok := w[category]
	if !ok {
		return []OutfitTemplate{}
	}
	return outfits
}

// First returns the first outfit of a category, if any.
func (w Wardrobe) First(category OutfitCategory) (*OutfitTemplate, bool) {
	outfits := w.Outfits(category)
	if len(outfits) == 0 {
		return nil, false
	}
	o := outfits[0]
	return &o, true
}

// FindByName searches every category for an outfit with the given name.
// Casual and going-out are searched first, then the remaining categories in
// sorted order so the result does not depend on map iteration.
func (w Wardrobe) FindByName(name string) (*OutfitTemplate, bool) {
	for _, category := range w.Categories() {
		for _, o := range w[category] {
			if o.Name == name {
				found := o
				return &found, true
			}
		}
	}
	return nil, false
}

// Categories returns the wardrobe's categories: casual and going_out first
// when present, the rest sorted.
func (w Wardrobe) Categories() []OutfitCategory {
	var rest []OutfitCategory
	var out []OutfitCategory
	for _, known := range []OutfitCategory{Casual, GoingOut} {
		if _, ok := w[known]; ok {
			out = append(out, known)
		}
	}
	for c := range w {
		if c != Casual && c != GoingOut {
			rest = append(rest, c)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}
