/*
Package cs executes glyph programs of embedded vector fonts, i.e. Type 1 and
Type 2 (CFF) charstrings.

A charstring is a short, densely encoded instruction stream for a small stack
machine. Interpreting it yields a glyph outline (move/line/cubic path
segments) and an advance width. Package cs splits this into two stages:

▪︎ A Decoder turns raw charstring bytes plus global and local subroutine
tables into a flat sequence of numbers and commands. Every subroutine call is
inlined, so the result is the exact execution order of the glyph program.

▪︎ An Interpreter walks such a sequence, maintaining an operand accumulator, a
current point and a path accumulator, and produces a Glyph.

Package cs will not look up glyphs by name or code point, nor will it read any
font container format. Callers hand in the charstring bytes and subroutine
tables extracted by their own font parser. The only way back into the font is
the GlyphLookup capability, which is consulted for accented characters
(`seac`).

Fonts in the wild are frequently broken. Package cs never fails on malformed
glyph programs; it records a Diagnostic, skips the offending instruction and
carries on. The worst outcome is an incomplete outline. The single exception
are subroutine call chains which are too deep (often cyclic) or expand to an
unreasonable size: decoding the affected glyph fails with an error.

# Links

Adobe Type 1 Font Format:
https://adobe-type-tools.github.io/font-tech-notes/pdfs/T1_SPEC.pdf

Type 2 Charstring Format (Technical Note #5177):
https://adobe-type-tools.github.io/font-tech-notes/pdfs/5177.Type2.pdf

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package cs

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.charstring'
func tracer() tracing.Trace {
	return tracing.Select("font.charstring")
}
