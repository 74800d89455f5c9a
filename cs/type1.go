package cs

import "fmt"

// Type 1 operators. Operators taking a fixed number of operands use the
// topmost ones; the accumulator is cleared after every operator except div.
var type1Steps = map[Keyword]step{
	Keyword(T1Hstem):           t1Hint,
	Keyword(T1Vstem):           t1Hint,
	Keyword(T1Hstem3):          t1Hint,
	Keyword(T1Vstem3):          t1Hint,
	Keyword(T1Dotsection):      t1Hint,
	Keyword(T1Rmoveto):         t1Moveto,
	Keyword(T1Hmoveto):         t1Moveto,
	Keyword(T1Vmoveto):         t1Moveto,
	Keyword(T1Rlineto):         t1Rlineto,
	Keyword(T1Hlineto):         t1Hlineto,
	Keyword(T1Vlineto):         t1Vlineto,
	Keyword(T1Rrcurveto):       t1Rrcurveto,
	Keyword(T1Vhcurveto):       t1Vhcurveto,
	Keyword(T1Hvcurveto):       t1Hvcurveto,
	Keyword(T1Closepath):       t1Closepath,
	Keyword(T1Hsbw):            t1Hsbw,
	Keyword(T1Sbw):             t1Sbw,
	Keyword(T1Seac):            t1Seac,
	Keyword(T1Div):             t1Div,
	Keyword(T1Callothersubr):   t1Callothersubr,
	Keyword(T1Setcurrentpoint): t1Setcurrentpoint,
	Keyword(T1Endchar):         t1Endchar,
	Keyword(T1Callsubr):        t1Unexpected,
	Keyword(T1Return):          t1Unexpected,
	Keyword(T1Pop):             t1Unexpected,
}

func t1Hint(ip *Interpreter, st *state, ins Instruction) {
	st.clear()
}

func t1Moveto(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	var d Point
	op, _ := ins.Cmd.Type1()
	switch op {
	case T1Rmoveto:
		if !st.need(ins.Cmd, 2) {
			return
		}
		args := st.top(2)
		d = Point{X: args[0], Y: args[1]}
	case T1Hmoveto:
		if !st.need(ins.Cmd, 1) {
			return
		}
		d = Point{X: st.top(1)[0]}
	case T1Vmoveto:
		if !st.need(ins.Cmd, 1) {
			return
		}
		d = Point{Y: st.top(1)[0]}
	}
	if st.flex {
		st.flexPoints = append(st.flexPoints, d)
		return
	}
	st.moveTo(d)
}

func t1Rlineto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 2) {
		st.rlineto(ins.Cmd, st.top(2))
	}
	st.clear()
}

func t1Hlineto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 1) {
		st.alternatingLines(ins.Cmd, st.top(1), true)
	}
	st.clear()
}

func t1Vlineto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 1) {
		st.alternatingLines(ins.Cmd, st.top(1), false)
	}
	st.clear()
}

func t1Rrcurveto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 6) {
		st.rrcurveto(ins.Cmd, st.top(6))
	}
	st.clear()
}

func t1Vhcurveto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 4) {
		st.alternatingCurves(ins.Cmd, st.top(4), false)
	}
	st.clear()
}

func t1Hvcurveto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 4) {
		st.alternatingCurves(ins.Cmd, st.top(4), true)
	}
	st.clear()
}

// closepath closes the subpath and re-opens an empty one at the current
// point, so that drawing may continue without a moveto.
func t1Closepath(ip *Interpreter, st *state, ins Instruction) {
	if !st.path.close() {
		st.report(StageInterpret, ins.Cmd, "no open subpath to close", SeverityMinor)
	}
	st.path.moveTo(st.current)
	st.clear()
}

// hsbw: sbx wx
func t1Hsbw(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 2) {
		args := st.top(2)
		st.setSideBearing(Point{X: args[0]}, args[1])
	}
	st.clear()
}

// sbw: sbx sby wx wy
func t1Sbw(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 4) {
		args := st.top(4)
		st.setSideBearing(Point{X: args[0], Y: args[1]}, args[2])
	}
	st.clear()
}

func (st *state) setSideBearing(sb Point, width float32) {
	st.sideBearing = sb
	st.width = some(width)
	st.current = sb
}

// seac: asb adx ady bchar achar
func t1Seac(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 5) {
		args := st.top(5)
		ip.seac(st, ins.Cmd, args[0], args[1], args[2], int(args[3]), int(args[4]))
	}
	st.clear()
}

// div: num1 num2 → num1/num2
func t1Div(ip *Interpreter, st *state, ins Instruction) {
	st.divide(ins.Cmd)
}

func (st *state) divide(cmd *Command) {
	if !st.need(cmd, 2) {
		st.clear()
		return
	}
	b, a := st.pop(), st.pop()
	if b == 0 {
		st.report(StageInterpret, cmd, "division by zero", SeverityMinor)
		st.push(0)
		return
	}
	st.push(a / b)
}

// callothersubr: othersubr#. The remaining othersubr protocol has been
// resolved while decoding.
func t1Callothersubr(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	if !st.need(ins.Cmd, 1) {
		return
	}
	switch n := int(st.top(1)[0]); n {
	case 1:
		st.startFlex()
	case 0:
		st.endFlex(ins.Cmd)
	default:
		st.report(StageInterpret, ins.Cmd, fmt.Sprintf("othersubr %d not supported", n), SeverityMinor)
	}
}

// setcurrentpoint: x y
func t1Setcurrentpoint(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 2) {
		args := st.top(2)
		st.current = Point{X: args[0], Y: args[1]}
	}
	st.clear()
}

func t1Endchar(ip *Interpreter, st *state, ins Instruction) {
	st.path.close()
	st.clear()
	st.done = true
}

func t1Unexpected(ip *Interpreter, st *state, ins Instruction) {
	st.report(StageInterpret, ins.Cmd, "unexpected command", SeverityMinor)
	st.clear()
}
