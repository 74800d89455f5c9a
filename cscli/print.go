package main

import (
	"fmt"

	"github.com/npillmayer/charstring"
	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/charstring/csquery"
	"github.com/pterm/pterm"
)

func printInstructions(seq cs.Instructions) {
	if len(seq) == 0 {
		return
	}
	pterm.Printf("%d instructions, %d commands\n", len(seq), seq.CommandCount())
	pterm.Println(seq.String())
}

func printIssues(issues []cs.Diagnostic) {
	if len(issues) == 0 {
		return
	}
	data := [][]string{
		{"Severity", "Stage", "Command", "At", "Issue"},
	}
	for _, d := range issues {
		data = append(data, []string{
			d.Severity.String(),
			d.Stage.String(),
			d.Command,
			fmt.Sprintf("%d", d.Index),
			d.Issue,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printGlyph(g cs.Glyph) {
	m := csquery.GlyphMetrics(g)
	name := g.Name
	if name == "" {
		name = "<anonymous>"
	}
	pterm.Printf("glyph %s: width=%g sb=(%g,%g)\n", name, g.Width, g.SideBearing.X, g.SideBearing.Y)
	data := [][]string{
		{"Advance", "LSB", "RSB", "BBox", "Subpaths", "Curves"},
		{
			fmt.Sprintf("%d", m.Advance),
			fmt.Sprintf("%d", m.LSB),
			fmt.Sprintf("%d", m.RSB),
			fmt.Sprintf("(%d,%d)-(%d,%d)", m.BBox.MinX, m.BBox.MinY, m.BBox.MaxX, m.BBox.MaxY),
			fmt.Sprintf("%d", len(g.Path)),
			fmt.Sprintf("%d", g.Path.SegmentCount(cs.CubeTo)),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if !g.Empty() {
		pterm.Println(g.Path.String())
	}
	printIssues(g.Issues)
}

func printInfo(prog *charstring.Program) {
	info := csquery.Info(prog)
	data := [][]string{
		{"Name", "Format", "Glyphs", "Subrs", "Global Subrs"},
		{
			info.Name,
			info.Format,
			fmt.Sprintf("%d", info.Glyphs),
			fmt.Sprintf("%d", info.Subrs),
			fmt.Sprintf("%d", info.GlobalSubrs),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
