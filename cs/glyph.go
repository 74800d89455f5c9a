package cs

import "errors"

// Glyph is the result of executing a glyph program.
type Glyph struct {
	Name        string       // glyph name, if known
	Path        Path         // outline in font units
	Width       float32      // advance width
	SideBearing Point        // left side bearing point (Type 1 hsbw/sbw)
	Issues      []Diagnostic // problems found while decoding and rendering
}

// Empty reports whether g has no outline.
func (g Glyph) Empty() bool {
	return len(g.Path) == 0
}

// GlyphLookup resolves glyph names to rendered glyphs. It is the capability
// an Interpreter uses to compose accented characters (seac). Implementations
// decide about caching and about how deep compositions may nest.
type GlyphLookup interface {
	LookupGlyph(name string) (Glyph, error)
}

// GlyphLookupFunc adapts a function to the GlyphLookup interface.
type GlyphLookupFunc func(name string) (Glyph, error)

// LookupGlyph calls f(name).
func (f GlyphLookupFunc) LookupGlyph(name string) (Glyph, error) {
	return f(name)
}

// ErrNoLookup is reported for seac if an Interpreter has no GlyphLookup.
var ErrNoLookup = errors.New("no glyph lookup available")

// NoGlyphs is a GlyphLookup which never finds a glyph.
var NoGlyphs GlyphLookup = GlyphLookupFunc(func(string) (Glyph, error) {
	return Glyph{}, ErrNoLookup
})
