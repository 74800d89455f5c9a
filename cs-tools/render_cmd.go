package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/charstring/csquery"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// charstringInput is a charstring given on the command line, together with
// its subroutines.
type charstringInput struct {
	format cs.Format
	code   []byte
	subrs  [][]byte
	gsubrs [][]byte
}

func parseCharstringInput(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) charstringInput {
	var in charstringInput
	var err error
	if in.format, err = parseFormat(flags["format"]); err != nil {
		fatalf("%v", err)
	}
	if in.code, err = parseHex(args["code"].Value); err != nil {
		fatalf("%v", err)
	}
	if in.subrs, err = parseSubrs(flags["subrs"]); err != nil {
		fatalf("invalid --subrs flag: %v", err)
	}
	if in.gsubrs, err = parseSubrs(flags["gsubrs"]); err != nil {
		fatalf("invalid --gsubrs flag: %v", err)
	}
	if in.format == cs.Type1 && len(in.gsubrs) > 0 {
		fatalf("Type 1 charstrings have no global subroutines")
	}
	return in
}

func (in charstringInput) decode(diag *cs.Diagnostics) (cs.Instructions, error) {
	return cs.Decoder{Format: in.format, Diag: diag}.Decode(in.code, in.gsubrs, in.subrs)
}

func runDecodeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	in := parseCharstringInput(args, flags)
	diag := &cs.Diagnostics{}
	seq, err := in.decode(diag)
	fmt.Printf("Format: %s\n", in.format)
	fmt.Printf("Instructions: %d (commands: %d)\n", len(seq), seq.CommandCount())
	fmt.Println(seq.String())
	printIssues(diag.Issues())
	if err != nil {
		fatalf("decode failed: %v", err)
	}
}

func runRenderCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	in := parseCharstringInput(args, flags)
	diag := &cs.Diagnostics{}
	seq, err := in.decode(diag)
	if err != nil {
		printIssues(diag.Issues())
		fatalf("decode failed: %v", err)
	}
	ip := cs.Interpreter{
		Format:        in.format,
		NominalWidthX: float32(mustFlagInt(flags["nominal"], "nominal")),
		DefaultWidthX: float32(mustFlagInt(flags["default"], "default")),
		Diag:          diag,
	}
	g := ip.Render(seq, cs.NoGlyphs)
	g.Issues = diag.Issues()
	printGlyph(g, mustFlagInt(flags["ppem"], "ppem"))
	printIssues(g.Issues)
}

func printGlyph(g cs.Glyph, ppem int) {
	m := csquery.GlyphMetrics(g)
	if g.Name != "" {
		fmt.Printf("Glyph: %s\n", g.Name)
	}
	fmt.Printf("Width: %g\n", g.Width)
	fmt.Printf("Metrics: advance=%d lsb=%d rsb=%d\n", m.Advance, m.LSB, m.RSB)
	fmt.Printf("BBox: (%d,%d)-(%d,%d)\n", m.BBox.MinX, m.BBox.MinY, m.BBox.MaxX, m.BBox.MaxY)
	fmt.Printf("Path: %s\n", g.Path.String())
	if ppem > 0 {
		fmt.Printf("Segments @%dppem: %s\n", ppem, formatSegments(csquery.Segments(g.Path, 1000, fixed.I(ppem))))
	}
}

func formatSegments(segs sfnt.Segments) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		n := 1
		op := "?"
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			op = "M"
		case sfnt.SegmentOpLineTo:
			op = "L"
		case sfnt.SegmentOpCubeTo:
			op, n = "C", 3
		}
		pts := make([]string, n)
		for i := range n {
			pts[i] = fmt.Sprintf("%.2f %.2f", fix2f(s.Args[i].X), fix2f(s.Args[i].Y))
		}
		parts = append(parts, op+strings.Join(pts, ","))
	}
	return strings.Join(parts, " ")
}

func fix2f(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func printIssues(issues []cs.Diagnostic) {
	if len(issues) == 0 {
		return
	}
	fmt.Printf("Issues (%d):\n", len(issues))
	for _, d := range issues {
		fmt.Printf("  %s\n", d.Error())
	}
}
