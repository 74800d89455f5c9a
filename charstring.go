/*
Package charstring renders glyph outlines from the charstrings of Type 1 and
CFF fonts.

The execution engine lives in package cs. This package adds two conveniences
on top of it:

▪︎ Type1Outline and Type2Outline decode and render a single charstring in one
step.

▪︎ A Program is the set of glyph programs of one font: its charstrings by
glyph name plus its subroutine tables. A Program renders glyphs by name,
caches them and resolves accented characters (seac) from its own glyphs.

Reading font containers (PFB segments, CFF INDEX structures, etc.) is the
business of clients. Package charstring starts from charstring bytes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package charstring

import (
	"github.com/npillmayer/charstring/cs"
)

// Type1Outline decodes and renders a plain (decrypted) Type 1 charstring.
//
// Components of accented characters are resolved with lookup, which may be
// nil. The only errors returned are those of decoding (see cs.Decoder); all
// other issues are reported in the glyph's Issues.
func Type1Outline(code []byte, subrs [][]byte, lookup cs.GlyphLookup) (cs.Glyph, error) {
	diag := &cs.Diagnostics{}
	seq, err := cs.Decoder{Format: cs.Type1, Diag: diag}.Decode(code, nil, subrs)
	if err != nil {
		return cs.Glyph{Issues: diag.Issues()}, err
	}
	g := cs.Interpreter{Format: cs.Type1, Diag: diag}.Render(seq, lookup)
	g.Issues = diag.Issues()
	return g, nil
}

// Type2Outline decodes and renders a Type 2 charstring. nominal and dflt are
// the nominalWidthX and defaultWidthX values of the font's private dictionary.
//
// Components of accented characters (endchar with seac operands) are
// resolved with lookup, which may be nil.
func Type2Outline(code []byte, gsubrs, lsubrs [][]byte, nominal, dflt float32,
	lookup cs.GlyphLookup) (cs.Glyph, error) {
	//
	diag := &cs.Diagnostics{}
	seq, err := cs.Decoder{Format: cs.Type2, Diag: diag}.Decode(code, gsubrs, lsubrs)
	if err != nil {
		return cs.Glyph{Issues: diag.Issues()}, err
	}
	ip := cs.Interpreter{
		Format:        cs.Type2,
		NominalWidthX: nominal,
		DefaultWidthX: dflt,
		Diag:          diag,
	}
	g := ip.Render(seq, lookup)
	g.Issues = diag.Issues()
	return g, nil
}
