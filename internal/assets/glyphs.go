package assets

import "chosenoffset.com/kizilcik/internal/ui/label"

// Glyphs stands in for images on a character terminal: each name is drawn as its
// upper-cased initial.
type Glyphs struct {
	runes map[string]rune
}

// NewGlyphs assigns a glyph to every non-empty name.
func NewGlyphs(names []string) *Glyphs {
	g := &Glyphs{runes: make(map[string]rune, len(names))}
	for _, name := range names {
		if r := label.Initial(name); r != '?' {
			g.runes[label.Key(name)] = r
		}
	}
	return g
}

// Ready reports whether the name has a glyph.
func (g *Glyphs) Ready(name string) bool {
	_, ok := g.runes[label.Key(name)]
	return ok
}

// Rune returns the glyph for a name, or '?' when it has none.
func (g *Glyphs) Rune(name string) rune {
	if r, ok := g.runes[label.Key(name)]; ok {
		return r
	}
	return '?'
}
