package cs

import "fmt"

// Flex is a pair of curves which a rasterizer may render as a straight line
// when it is shallow enough at small sizes. We always draw the curves.

// Type 1 flex is a protocol with othersubrs: othersubr 1 starts collecting
// points from moveto operators, othersubr 0 turns the collected points into
// two curves. The first point is the flex reference point, relative to the
// current point, the following six are the curve points.

const flexPointCount = 7

func (st *state) startFlex() {
	st.flex = true
	st.flexPoints = st.flexPoints[:0]
}

func (st *state) endFlex(cmd *Command) {
	if !st.flex {
		st.report(StageInterpret, cmd, "flex end without flex start", SeverityMinor)
	}
	st.flex = false
	pts := st.flexPoints
	st.flexPoints = st.flexPoints[:0]
	if len(pts) < flexPointCount {
		st.report(StageInterpret, cmd,
			fmt.Sprintf("flex needs %d points, found %d", flexPointCount, len(pts)), SeverityMajor)
		return
	}
	// make the first curve point relative to the current point instead of
	// the reference point
	first := pts[0].Add(pts[1])
	st.curveTo(cmd, first, pts[2], pts[3])
	st.curveTo(cmd, pts[4], pts[5], pts[6])
}

// Type 2 flex operators. The final operand of flex is the flex depth, which
// we do not need.

// flex: dx1 dy1 dx2 dy2 dx3 dy3 dx4 dy4 dx5 dy5 dx6 dy6 fd
func t2Flex(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	if !st.need(ins.Cmd, 13) {
		return
	}
	st.rrcurveto(ins.Cmd, st.top(13)[:12])
}

// hflex: dx1 dx2 dy2 dx3 dx4 dx5 dx6
func t2Hflex(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	if !st.need(ins.Cmd, 7) {
		return
	}
	a := st.top(7)
	st.rrcurveto(ins.Cmd, []float32{
		a[0], 0, a[1], a[2], a[3], 0,
		a[4], 0, a[5], -a[2], a[6], 0,
	})
}

// hflex1: dx1 dy1 dx2 dy2 dx3 dx4 dx5 dy5 dx6
func t2Hflex1(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	if !st.need(ins.Cmd, 9) {
		return
	}
	a := st.top(9)
	st.rrcurveto(ins.Cmd, []float32{
		a[0], a[1], a[2], a[3], a[4], 0,
		a[5], 0, a[6], a[7], a[8], -(a[1] + a[3] + a[7]),
	})
}

// flex1: dx1 dy1 dx2 dy2 dx3 dy3 dx4 dy4 dx5 dy5 d6
//
// The last point returns to the start point's y (or x) coordinate, whichever
// makes the flex run along its dominant direction.
func t2Flex1(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	if !st.need(ins.Cmd, 11) {
		return
	}
	a := st.top(11)
	var dx, dy float32
	for i := 0; i < 10; i += 2 {
		dx += a[i]
		dy += a[i+1]
	}
	args := append(append([]float32(nil), a[:10]...), 0, 0)
	if abs32(dx) > abs32(dy) {
		args[10], args[11] = a[10], -dy
	} else {
		args[10], args[11] = -dx, a[10]
	}
	st.rrcurveto(ins.Cmd, args)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
