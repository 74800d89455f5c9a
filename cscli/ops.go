package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/charstring/internal/progload"
	"github.com/pterm/pterm"
)

var errNoArg = errors.New("operation needs an argument, e.g. 'decode:8b8b150e'")
var errNoProgram = errors.New("no glyph programs loaded, use 'load:FILE'")

func formatOp(intp *Intp, op *Op) (error, bool) {
	if op.code == TYPE1 {
		intp.format = cs.Type1
	} else {
		intp.format = cs.Type2
	}
	tracer().Infof("charstring format is %s", intp.format)
	return nil, false
}

func widthOp(intp *Intp, op *Op) (error, bool) {
	w, err := strconv.ParseFloat(op.arg, 32)
	if err != nil {
		return fmt.Errorf("width not numeric: %q", op.arg), false
	}
	if op.code == NOMINAL {
		intp.nominal = float32(w)
	} else {
		intp.dflt = float32(w)
	}
	return nil, false
}

// subrOp appends a subroutine to the local or global table.
func subrOp(intp *Intp, op *Op) (error, bool) {
	code, err := hexArg(op)
	if err != nil {
		return err, false
	}
	if op.code == GSUBR {
		intp.gsubrs = append(intp.gsubrs, code)
		pterm.Printf("global subroutine %d (operand %d)\n", len(intp.gsubrs)-1,
			len(intp.gsubrs)-1-cs.Bias(len(intp.gsubrs)))
	} else {
		intp.subrs = append(intp.subrs, code)
		pterm.Printf("local subroutine %d\n", len(intp.subrs)-1)
	}
	return nil, false
}

func decodeOp(intp *Intp, op *Op) (error, bool) {
	code, err := hexArg(op)
	if err != nil {
		return err, false
	}
	diag := &cs.Diagnostics{}
	seq, err := intp.decoder(diag).Decode(code, intp.gsubrs, intp.subrs)
	printInstructions(seq)
	printIssues(diag.Issues())
	return err, false
}

func renderOp(intp *Intp, op *Op) (error, bool) {
	code, err := hexArg(op)
	if err != nil {
		return err, false
	}
	diag := &cs.Diagnostics{}
	seq, err := intp.decoder(diag).Decode(code, intp.gsubrs, intp.subrs)
	if err != nil {
		printIssues(diag.Issues())
		return err, false
	}
	ip := cs.Interpreter{
		Format:        intp.format,
		NominalWidthX: intp.nominal,
		DefaultWidthX: intp.dflt,
		Diag:          diag,
	}
	var lookup cs.GlyphLookup = cs.NoGlyphs
	if intp.prog != nil {
		lookup = intp.prog
	}
	g := ip.Render(seq, lookup)
	g.Issues = diag.Issues()
	printGlyph(g)
	return nil, false
}

// biasOp shows the subroutine bias for a table size.
func biasOp(intp *Intp, op *Op) (error, bool) {
	n, err := strconv.Atoi(op.arg)
	if err != nil || n < 0 {
		return fmt.Errorf("subroutine count not numeric: %q", op.arg), false
	}
	bias := cs.Bias(n)
	pterm.Printf("%d subroutines: bias %d, operands %d … %d\n", n, bias, -bias, n-1-bias)
	return nil, false
}

func loadOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		return errNoArg, false
	}
	return intp.loadProgram(op.arg), false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	if intp.prog == nil {
		return errNoProgram, false
	}
	if op.arg == "" {
		pterm.Printf("glyphs: %s\n", strings.Join(intp.prog.Names(), " "))
		return nil, false
	}
	g, err := intp.prog.Glyph(op.arg)
	if err != nil {
		printIssues(g.Issues)
		return err, false
	}
	printGlyph(g)
	return nil, false
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	if intp.prog == nil {
		return errNoProgram, false
	}
	printInfo(intp.prog)
	return nil, false
}

// --- Glyph program loading -------------------------------------------------

// loadProgram loads a glyph program fixture and takes over its settings.
func (intp *Intp) loadProgram(path string) error {
	prog, err := progload.Load(path)
	if err != nil {
		tracer().Errorf("cannot load glyph programs %s: %s", path, err)
		return err
	}
	intp.prog = prog
	intp.format = prog.Format
	intp.nominal, intp.dflt = prog.NominalWidthX, prog.DefaultWidthX
	intp.subrs, intp.gsubrs = slices.Clone(prog.PlainSubrs()), slices.Clone(prog.GlobalSubrs)
	tracer().Infof("loaded glyph programs %s: %d glyphs", prog.Name, len(prog.CharStrings))
	return nil
}

// ----------------------------------------------------------------------

func (intp *Intp) decoder(diag *cs.Diagnostics) cs.Decoder {
	return cs.Decoder{Format: intp.format, Diag: diag}
}

func hexArg(op *Op) ([]byte, error) {
	if op.arg == "" {
		return nil, errNoArg
	}
	code, err := hex.DecodeString(strings.ReplaceAll(op.arg, "_", ""))
	if err != nil {
		return nil, fmt.Errorf("charstring is not valid hex: %w", err)
	}
	return code, nil
}
