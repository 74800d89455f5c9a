package cs

import (
	"fmt"
	"math/rand/v2"
)

// Interpreter executes decoded glyph programs. It holds configuration only;
// per-glyph state is allocated for every call to Render, so a single
// Interpreter may be shared, provided Diag is not.
type Interpreter struct {
	Format        Format       // charstring dialect
	NominalWidthX float32      // Type 2: base of encoded widths
	DefaultWidthX float32      // Type 2: width of glyphs without encoded width
	GlyphName     string       // name of the glyph being rendered, if known
	Diag          *Diagnostics // optional sink for issues
}

// state is the interpreter state for a single glyph.
type state struct {
	seq         Instructions
	inx         int       // index of the instruction being executed
	operands    []float32 // operand accumulator
	current     Point
	sideBearing Point
	width       option[float32]
	widthSeen   bool // Type 2: first stack-clearing operator has been seen
	path        pathBuilder
	flex        bool    // Type 1: collecting flex points
	flexPoints  []Point // Type 1: relative flex points
	commands    int
	transient   [32]float32 // Type 2: storage for put/get
	random      *rand.Rand
	lookup      GlyphLookup
	diag        *Diagnostics
	done        bool
}

// step executes a single command on the interpreter state.
type step func(ip *Interpreter, st *state, ins Instruction)

// Render executes seq and returns the resulting glyph. Glyph components
// (seac) are fetched through lookup, which may be nil.
//
// Render never fails. Problems are recorded as diagnostics, both in ip.Diag
// and in the Issues of the resulting glyph, and the offending command is
// skipped.
func (ip Interpreter) Render(seq Instructions, lookup GlyphLookup) Glyph {
	if lookup == nil {
		lookup = NoGlyphs
	}
	diag := ip.Diag
	if diag == nil {
		diag = &Diagnostics{}
	}
	mark := diag.Len()
	st := &state{
		seq:      seq,
		operands: make([]float32, 0, 48),
		lookup:   lookup,
		diag:     diag,
	}
	var ops map[Keyword]step
	switch ip.Format {
	case Type1:
		ops = type1Steps
	case Type2:
		ops = type2Steps
	default:
		st.report(StageInterpret, nil, fmt.Sprintf("cannot interpret charstring format %d", ip.Format), SeverityCritical)
		st.done = true
	}
	for st.inx = 0; st.inx < len(seq) && !st.done; st.inx++ {
		ins := seq[st.inx]
		if !ins.IsCommand() {
			st.operands = append(st.operands, ins.Number)
			continue
		}
		st.commands++
		stepFn, ok := ops[ins.Cmd.Keyword()]
		if !ok || !ins.Cmd.ValidIn(ip.Format) {
			st.report(StageInterpret, ins.Cmd, "unknown or unexpected command", SeverityMinor)
			st.clear()
			continue
		}
		stepFn(&ip, st, ins)
	}
	if ip.Format == Type2 {
		st.path.close() // Type 2 contours are closed implicitly
	}
	g := Glyph{
		Name:        ip.GlyphName,
		Path:        st.path.result(),
		SideBearing: st.sideBearing,
	}
	if ip.Format == Type2 {
		g.Width = st.width.or(ip.DefaultWidthX)
	} else {
		g.Width = st.width.or(0)
	}
	if issues := diag.Issues(); len(issues) > mark {
		g.Issues = append([]Diagnostic(nil), issues[mark:]...)
	}
	tracer().Debugf("rendered glyph %q: %d commands, %d subpaths, width %g",
		ip.GlyphName, st.commands, len(g.Path), g.Width)
	return g
}

// --- State helpers ---------------------------------------------------------

func (st *state) report(stage Stage, cmd *Command, issue string, sev Severity) {
	name := ""
	if cmd != nil {
		name = cmd.String()
	}
	st.diag.add(stage, name, issue, sev, st.inx)
}

func (st *state) clear() {
	st.operands = st.operands[:0]
}

// need checks that at least n operands are available.
func (st *state) need(cmd *Command, n int) bool {
	if len(st.operands) < n {
		st.report(StageInterpret, cmd,
			fmt.Sprintf("expects %d operands, found %d", n, len(st.operands)), SeverityMajor)
		return false
	}
	return true
}

// top returns the n topmost operands, bottom to top.
func (st *state) top(n int) []float32 {
	return st.operands[len(st.operands)-n:]
}

func (st *state) push(v float32) {
	st.operands = append(st.operands, v)
}

func (st *state) pop() float32 {
	v := st.operands[len(st.operands)-1]
	st.operands = st.operands[:len(st.operands)-1]
	return v
}

// --- Path operations shared by both formats --------------------------------

// ensureOpen makes sure there is a subpath to draw into. Drawing without a
// preceding moveto starts a subpath at the current point.
func (st *state) ensureOpen(cmd *Command) {
	if !st.path.hasOpen() {
		st.report(StageInterpret, cmd, "drawing without moveto", SeverityMinor)
		st.path.moveTo(st.current)
	}
}

func (st *state) moveTo(d Point) {
	st.current = st.current.Add(d)
	st.path.moveTo(st.current)
}

func (st *state) lineTo(cmd *Command, d Point) {
	st.ensureOpen(cmd)
	st.current = st.current.Add(d)
	st.path.lineTo(st.current)
}

// curveTo appends a cubic Bézier, with each point relative to its predecessor.
func (st *state) curveTo(cmd *Command, d1, d2, d3 Point) {
	st.ensureOpen(cmd)
	c1 := st.current.Add(d1)
	c2 := c1.Add(d2)
	st.current = c2.Add(d3)
	st.path.cubeTo(c1, c2, st.current)
}

// rlineto: {dx dy}+
func (st *state) rlineto(cmd *Command, args []float32) {
	for ; len(args) >= 2; args = args[2:] {
		st.lineTo(cmd, Point{X: args[0], Y: args[1]})
	}
}

// hlineto and vlineto: lines alternating between horizontal and vertical.
func (st *state) alternatingLines(cmd *Command, args []float32, horizontal bool) {
	for _, a := range args {
		if horizontal {
			st.lineTo(cmd, Point{X: a})
		} else {
			st.lineTo(cmd, Point{Y: a})
		}
		horizontal = !horizontal
	}
}

// rrcurveto: {dxa dya dxb dyb dxc dyc}+
func (st *state) rrcurveto(cmd *Command, args []float32) {
	for ; len(args) >= 6; args = args[6:] {
		st.curveTo(cmd,
			Point{X: args[0], Y: args[1]},
			Point{X: args[2], Y: args[3]},
			Point{X: args[4], Y: args[5]})
	}
}

// hvcurveto and vhcurveto: curves starting alternately horizontal and
// vertical, each ending perpendicular to its start tangent. An odd last
// operand is the final curve's deviation along its end tangent.
func (st *state) alternatingCurves(cmd *Command, args []float32, horizontal bool) {
	for len(args) >= 4 {
		var last float32
		if len(args) == 5 {
			last = args[4]
		}
		if horizontal {
			st.curveTo(cmd, Point{X: args[0]}, Point{X: args[1], Y: args[2]}, Point{X: last, Y: args[3]})
		} else {
			st.curveTo(cmd, Point{Y: args[0]}, Point{X: args[1], Y: args[2]}, Point{X: args[3], Y: last})
		}
		if len(args) == 5 {
			args = args[5:]
		} else {
			args = args[4:]
		}
		horizontal = !horizontal
	}
}
