package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/charstring"
	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/charstring/internal/progload"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("cs-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for decoding and rendering Type 1 and Type 2 charstrings.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("decode").
		SetDescription("Decode a charstring given in hex and print its flattened instructions.").
		SetShortDescription("decode a charstring").
		AddArgument("code", "charstring bytes in hex", "").
		AddFlag("format,f", "charstring format: 1|2", commando.String, "2").
		AddFlag("subrs,s", "local subroutines in hex (comma separated)", commando.String, "-").
		AddFlag("gsubrs,g", "global subroutines in hex (comma separated)", commando.String, "-").
		SetAction(runDecodeCommand)

	commando.
		Register("render").
		SetDescription("Decode and render a charstring given in hex and print its outline.").
		SetShortDescription("render a charstring").
		AddArgument("code", "charstring bytes in hex", "").
		AddFlag("format,f", "charstring format: 1|2", commando.String, "2").
		AddFlag("subrs,s", "local subroutines in hex (comma separated)", commando.String, "-").
		AddFlag("gsubrs,g", "global subroutines in hex (comma separated)", commando.String, "-").
		AddFlag("nominal,n", "nominalWidthX (Type 2)", commando.Int, 0).
		AddFlag("default,d", "defaultWidthX (Type 2)", commando.Int, 0).
		AddFlag("ppem,p", "print sfnt segments at this many pixels per em (0 = off)", commando.Int, 0).
		SetAction(runRenderCommand)

	commando.
		Register("glyph").
		SetDescription("Render glyphs from a glyph program fixture.").
		SetShortDescription("render fixture glyphs").
		AddArgument("prog", "glyph program fixture path", "").
		AddArgument("names...", "glyph names (all glyphs if omitted)", "-").
		AddFlag("ppem,p", "print sfnt segments at this many pixels per em (0 = off)", commando.Int, 0).
		AddFlag("issues,e", "print issues found while rendering", commando.Bool, nil).
		SetAction(runGlyphCommand)

	commando.
		Register("check").
		SetDescription("Render every glyph of a glyph program fixture concurrently and report issues.").
		SetShortDescription("check a fixture").
		AddArgument("prog", "glyph program fixture path", "").
		AddFlag("workers,w", "number of concurrent workers (0 = unlimited)", commando.Int, 4).
		SetAction(runCheckCommand)

	commando.
		Register("bias").
		SetDescription("Print the Type 2 subroutine bias for a subroutine table size.").
		SetShortDescription("subroutine bias").
		AddArgument("count", "number of subroutines", "").
		SetAction(runBiasCommand)

	commando.Parse(nil)
}

func runBiasCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	n, err := strconv.Atoi(strings.TrimSpace(args["count"].Value))
	if err != nil || n < 0 {
		fatalf("subroutine count must be a non-negative number")
	}
	bias := cs.Bias(n)
	fmt.Printf("Subroutines: %d\n", n)
	fmt.Printf("Bias: %d\n", bias)
	fmt.Printf("Operands: %d .. %d\n", -bias, n-1-bias)
}

// --- Helpers ----------------------------------------------------------

func parseFormat(flag commando.FlagValue) (cs.Format, error) {
	s, err := flag.GetString()
	if err != nil {
		return 0, err
	}
	switch strings.TrimSpace(s) {
	case "1", "type1", "Type1":
		return cs.Type1, nil
	case "2", "type2", "Type2":
		return cs.Type2, nil
	}
	return 0, fmt.Errorf("invalid --format %q (expected 1 or 2)", s)
}

// parseHex decodes charstring bytes, ignoring whitespace and underscores.
func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", "_", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("charstring is empty")
	}
	code, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("charstring is not valid hex: %w", err)
	}
	return code, nil
}

// parseSubrs decodes a comma separated list of subroutines. "-" means none.
func parseSubrs(flag commando.FlagValue) ([][]byte, error) {
	raw, err := flag.GetString()
	if err != nil {
		return nil, err
	}
	if raw = strings.TrimSpace(raw); raw == "" || raw == "-" {
		return nil, nil
	}
	var subrs [][]byte
	for _, item := range splitCSVSpace(raw) {
		code, err := parseHex(item)
		if err != nil {
			return nil, err
		}
		subrs = append(subrs, code)
	}
	return subrs, nil
}

func splitCSVSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func mustLoadProgram(path string) *charstring.Program {
	prog, err := progload.Load(path)
	if err != nil {
		fatalf("load glyph programs: %v", err)
	}
	return prog
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "cs-tools: "+format+"\n", args...)
	os.Exit(1)
}
