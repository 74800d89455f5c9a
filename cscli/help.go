package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "subr", "subrs", "gsubr", "bias":
		pterm.Info.Println("Subroutines")
		pterm.Println(`
	Charstrings call subroutines by number. Type 1 numbers are plain indices
	into the Subrs array. Type 2 numbers are biased, depending on the size of
	the subroutine table:
	+------------------+-------+
	| Subroutines      | Bias  |
	+------------------+-------+
	| fewer than 1240  |   107 |
	| fewer than 33900 |  1131 |
	| more             | 32768 |
	+------------------+-------+
	'subr:HEX' and 'gsubr:HEX' append a subroutine to the local or global table.
	'bias:N' shows the bias for a table of N subroutines.
	`)
	case "decode", "render":
		pterm.Info.Println("Decoding and Rendering")
		pterm.Println(`
	'decode:HEX' flattens a charstring into a list of operands and commands,
	inlining subroutine calls. 'render:HEX' executes it and shows the outline.
	Settings apply from left to right, e.g.
	    type2 nominal:500 decode:9f8b8b150e
	`)
	default:
		pterm.Info.Println("Operations")
		pterm.Println(`
	type1 | type2       select the charstring format
	nominal:W           set nominalWidthX (Type 2)
	default:W           set defaultWidthX (Type 2)
	subr:HEX            append a local subroutine
	gsubr:HEX           append a global subroutine
	decode:HEX          decode a charstring
	render:HEX          decode and render a charstring
	bias:N              show the subroutine bias for N subroutines
	load:FILE           load a glyph program fixture
	glyph[:NAME]        render a glyph of the loaded fixture, or list glyphs
	info                show information about the loaded fixture
	help[:TOPIC]        help on subr or decode
	quit                leave
	`)
	}
}
