package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/npillmayer/charstring/csquery"
	"github.com/thatisuday/commando"
)

func runGlyphCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	path := strings.TrimSpace(args["prog"].Value)
	if path == "" {
		fatalf("glyph program path is required")
	}
	prog := mustLoadProgram(path)
	names := splitCSVSpace(args["names"].Value)
	if len(names) == 0 || names[0] == "-" {
		names = prog.Names()
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	showIssues := mustFlagBool(flags["issues"], "issues")
	for i, name := range names {
		if i > 0 {
			fmt.Println()
		}
		g, err := prog.Glyph(name)
		if err != nil {
			fmt.Printf("Glyph: %s\nError: %v\n", name, err)
			continue
		}
		printGlyph(g, ppem)
		if showIssues {
			printIssues(g.Issues)
		} else if len(g.Issues) > 0 {
			fmt.Printf("Issues: %d\n", len(g.Issues))
		}
	}
}

func runCheckCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	path := strings.TrimSpace(args["prog"].Value)
	if path == "" {
		fatalf("glyph program path is required")
	}
	prog := mustLoadProgram(path)
	info := csquery.Info(prog)
	fmt.Printf("Name: %s\n", info.Name)
	fmt.Printf("Format: %s\n", info.Format)
	fmt.Printf("Glyphs: %d subrs=%d gsubrs=%d\n", info.Glyphs, info.Subrs, info.GlobalSubrs)
	glyphs, err := prog.RenderAll(context.Background(), mustFlagInt(flags["workers"], "workers"))
	if err != nil {
		fatalf("check failed: %v", err)
	}
	clean := 0
	for _, name := range prog.Names() {
		g := glyphs[name]
		if len(g.Issues) == 0 {
			clean++
			continue
		}
		fmt.Printf("%s: %d issues\n", name, len(g.Issues))
		for _, d := range g.Issues {
			fmt.Printf("  %s\n", d.Error())
		}
	}
	fmt.Printf("Clean glyphs: %d of %d\n", clean, len(glyphs))
}
