package cs

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Type 2 operators. Path operators consume the whole accumulator; arithmetic
// operators replace their operands by their result.
var type2Steps = map[Keyword]step{
	Keyword(T2Hstem):      t2Stem,
	Keyword(T2Vstem):      t2Stem,
	Keyword(T2Hstemhm):    t2Stem,
	Keyword(T2Vstemhm):    t2Stem,
	Keyword(T2Hintmask):   t2Stem,
	Keyword(T2Cntrmask):   t2Stem,
	Keyword(T2Dotsection): t2Dotsection,
	Keyword(T2Rmoveto):    t2Moveto,
	Keyword(T2Hmoveto):    t2Moveto,
	Keyword(T2Vmoveto):    t2Moveto,
	Keyword(T2Rlineto):    t2Rlineto,
	Keyword(T2Hlineto):    t2Hlineto,
	Keyword(T2Vlineto):    t2Vlineto,
	Keyword(T2Rrcurveto):  t2Rrcurveto,
	Keyword(T2Rcurveline): t2Rcurveline,
	Keyword(T2Rlinecurve): t2Rlinecurve,
	Keyword(T2Vvcurveto):  t2Vvcurveto,
	Keyword(T2Hhcurveto):  t2Hhcurveto,
	Keyword(T2Vhcurveto):  t2Vhcurveto,
	Keyword(T2Hvcurveto):  t2Hvcurveto,
	Keyword(T2Flex):       t2Flex,
	Keyword(T2Hflex):      t2Hflex,
	Keyword(T2Flex1):      t2Flex1,
	Keyword(T2Hflex1):     t2Hflex1,
	Keyword(T2Endchar):    t2Endchar,
	Keyword(T2And):        t2Arithmetic,
	Keyword(T2Or):         t2Arithmetic,
	Keyword(T2Not):        t2Arithmetic,
	Keyword(T2Abs):        t2Arithmetic,
	Keyword(T2Add):        t2Arithmetic,
	Keyword(T2Sub):        t2Arithmetic,
	Keyword(T2Div):        t2Arithmetic,
	Keyword(T2Neg):        t2Arithmetic,
	Keyword(T2Eq):         t2Arithmetic,
	Keyword(T2Mul):        t2Arithmetic,
	Keyword(T2Sqrt):       t2Arithmetic,
	Keyword(T2Ifelse):     t2Arithmetic,
	Keyword(T2Random):     t2Arithmetic,
	Keyword(T2Drop):       t2Stack,
	Keyword(T2Dup):        t2Stack,
	Keyword(T2Exch):       t2Stack,
	Keyword(T2Index):      t2Stack,
	Keyword(T2Roll):       t2Stack,
	Keyword(T2Put):        t2Storage,
	Keyword(T2Get):        t2Storage,
	Keyword(T2Callsubr):   t2Unexpected,
	Keyword(T2Callgsubr):  t2Unexpected,
	Keyword(T2Return):     t2Unexpected,
}

// checkWidth handles the optional width operand, which may precede the
// operands of the first stack-clearing operator of a glyph program.
func (ip *Interpreter) checkWidth(st *state, hasWidth bool) {
	if st.widthSeen {
		return
	}
	st.widthSeen = true
	if hasWidth && len(st.operands) > 0 {
		st.width = some(ip.NominalWidthX + st.operands[0])
		st.operands = st.operands[1:]
	}
}

// Stem hints and hint masks. Operands left before a mask operator are an
// implicit vstem. Hints are not applied.
func t2Stem(ip *Interpreter, st *state, ins Instruction) {
	ip.checkWidth(st, len(st.operands)%2 == 1)
	st.clear()
}

func t2Dotsection(ip *Interpreter, st *state, ins Instruction) {
	st.clear()
}

// Type 2 moveto closes the current subpath implicitly.
func t2Moveto(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	op, _ := ins.Cmd.Type2()
	n := 1
	if op == T2Rmoveto {
		n = 2
	}
	ip.checkWidth(st, len(st.operands) > n)
	if !st.need(ins.Cmd, n) {
		return
	}
	args := st.top(n)
	var d Point
	switch op {
	case T2Rmoveto:
		d = Point{X: args[0], Y: args[1]}
	case T2Hmoveto:
		d = Point{X: args[0]}
	case T2Vmoveto:
		d = Point{Y: args[0]}
	}
	st.path.close()
	st.moveTo(d)
}

// rlineto: {dxa dya}+
func t2Rlineto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 2) {
		st.rlineto(ins.Cmd, st.operands)
	}
	st.clear()
}

// hlineto: dx1 {dya dxb}* or {dxa dyb}+
func t2Hlineto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 1) {
		st.alternatingLines(ins.Cmd, st.operands, true)
	}
	st.clear()
}

// vlineto: dy1 {dxa dyb}* or {dya dxb}+
func t2Vlineto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 1) {
		st.alternatingLines(ins.Cmd, st.operands, false)
	}
	st.clear()
}

// rrcurveto: {dxa dya dxb dyb dxc dyc}+
func t2Rrcurveto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 6) {
		st.rrcurveto(ins.Cmd, st.operands)
	}
	st.clear()
}

// rcurveline: {dxa dya dxb dyb dxc dyc}+ dxd dyd
func t2Rcurveline(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 8) {
		args := st.operands
		st.rrcurveto(ins.Cmd, args[:len(args)-2])
		st.lineTo(ins.Cmd, Point{X: args[len(args)-2], Y: args[len(args)-1]})
	}
	st.clear()
}

// rlinecurve: {dxa dya}+ dxb dyb dxc dyc dxd dyd
func t2Rlinecurve(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 8) {
		args := st.operands
		st.rlineto(ins.Cmd, args[:len(args)-6])
		st.rrcurveto(ins.Cmd, args[len(args)-6:])
	}
	st.clear()
}

// vvcurveto: dx1? {dya dxb dyb dyc}+
func t2Vvcurveto(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	if !st.need(ins.Cmd, 4) {
		return
	}
	args := st.operands
	var dx1 float32
	if len(args)%2 == 1 {
		dx1, args = args[0], args[1:]
	}
	for ; len(args) >= 4; args = args[4:] {
		st.curveTo(ins.Cmd, Point{X: dx1, Y: args[0]}, Point{X: args[1], Y: args[2]}, Point{Y: args[3]})
		dx1 = 0
	}
}

// hhcurveto: dy1? {dxa dxb dyb dxc}+
func t2Hhcurveto(ip *Interpreter, st *state, ins Instruction) {
	defer st.clear()
	if !st.need(ins.Cmd, 4) {
		return
	}
	args := st.operands
	var dy1 float32
	if len(args)%2 == 1 {
		dy1, args = args[0], args[1:]
	}
	for ; len(args) >= 4; args = args[4:] {
		st.curveTo(ins.Cmd, Point{X: args[0], Y: dy1}, Point{X: args[1], Y: args[2]}, Point{X: args[3]})
		dy1 = 0
	}
}

// vhcurveto: dy1 dx2 dy2 dx3 {dxa dxb dyb dyc dyd dxe dye dxf}* dyf?
func t2Vhcurveto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 4) {
		st.alternatingCurves(ins.Cmd, st.operands, false)
	}
	st.clear()
}

// hvcurveto: dx1 dx2 dy2 dy3 {dya dxb dyb dxc dxd dxe dye dyf}* dxf?
func t2Hvcurveto(ip *Interpreter, st *state, ins Instruction) {
	if st.need(ins.Cmd, 4) {
		st.alternatingCurves(ins.Cmd, st.operands, true)
	}
	st.clear()
}

// endchar may carry the seac operands adx ady bchar achar, with an implied
// accent side bearing of zero.
func t2Endchar(ip *Interpreter, st *state, ins Instruction) {
	ip.checkWidth(st, len(st.operands) == 1 || len(st.operands) == 5)
	if len(st.operands) >= 4 {
		args := st.top(4)
		st.path.close()
		ip.seac(st, ins.Cmd, 0, args[0], args[1], int(args[2]), int(args[3]))
	}
	st.path.close()
	st.clear()
	st.done = true
}

func t2Unexpected(ip *Interpreter, st *state, ins Instruction) {
	st.report(StageInterpret, ins.Cmd, "unexpected command", SeverityMinor)
	st.clear()
}

// --- Arithmetic and storage ------------------------------------------------

func t2Arithmetic(ip *Interpreter, st *state, ins Instruction) {
	op, _ := ins.Cmd.Type2()
	switch op {
	case T2Div:
		st.divide(ins.Cmd)
	case T2Random:
		if st.random == nil {
			st.random = rand.New(rand.NewPCG(0x63686172, 0x73747269))
		}
		st.push(1 - st.random.Float32()) // in (0,1]
	case T2Not, T2Abs, T2Neg, T2Sqrt:
		if !st.need(ins.Cmd, 1) {
			return
		}
		a := st.pop()
		st.push(st.unary(ins.Cmd, op, a))
	case T2Ifelse:
		if !st.need(ins.Cmd, 4) {
			st.clear()
			return
		}
		v2, v1, s2, s1 := st.pop(), st.pop(), st.pop(), st.pop()
		if v1 <= v2 {
			st.push(s1)
		} else {
			st.push(s2)
		}
	default:
		if !st.need(ins.Cmd, 2) {
			st.clear()
			return
		}
		b, a := st.pop(), st.pop()
		st.push(binaryOp(op, a, b))
	}
}

func (st *state) unary(cmd *Command, op Type2Keyword, a float32) float32 {
	switch op {
	case T2Not:
		return boolf(a == 0)
	case T2Abs:
		return abs32(a)
	case T2Neg:
		return -a
	case T2Sqrt:
		if a < 0 {
			st.report(StageInterpret, cmd, "square root of negative number", SeverityMinor)
			return 0
		}
		return float32(math.Sqrt(float64(a)))
	}
	return a
}

func binaryOp(op Type2Keyword, a, b float32) float32 {
	switch op {
	case T2And:
		return boolf(a != 0 && b != 0)
	case T2Or:
		return boolf(a != 0 || b != 0)
	case T2Add:
		return a + b
	case T2Sub:
		return a - b
	case T2Mul:
		return a * b
	case T2Eq:
		return boolf(a == b)
	}
	return 0
}

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func t2Stack(ip *Interpreter, st *state, ins Instruction) {
	op, _ := ins.Cmd.Type2()
	switch op {
	case T2Drop:
		if st.need(ins.Cmd, 1) {
			st.pop()
		}
	case T2Dup:
		if st.need(ins.Cmd, 1) {
			st.push(st.top(1)[0])
		}
	case T2Exch:
		if st.need(ins.Cmd, 2) {
			b, a := st.pop(), st.pop()
			st.push(b)
			st.push(a)
		}
	case T2Index:
		if !st.need(ins.Cmd, 1) {
			return
		}
		i := int(st.pop())
		if i < 0 {
			i = 0
		}
		if i >= len(st.operands) {
			st.report(StageInterpret, ins.Cmd, fmt.Sprintf("index %d out of range", i), SeverityMinor)
			st.clear()
			return
		}
		st.push(st.operands[len(st.operands)-1-i])
	case T2Roll:
		if !st.need(ins.Cmd, 2) {
			st.clear()
			return
		}
		j, n := int(st.pop()), int(st.pop())
		if n <= 0 || n > len(st.operands) {
			st.report(StageInterpret, ins.Cmd, fmt.Sprintf("cannot roll %d operands", n), SeverityMinor)
			st.clear()
			return
		}
		seg := st.operands[len(st.operands)-n:]
		j = ((j % n) + n) % n
		rolled := append(append([]float32(nil), seg[n-j:]...), seg[:n-j]...)
		copy(seg, rolled)
	}
}

// put: val i; get: i
func t2Storage(ip *Interpreter, st *state, ins Instruction) {
	op, _ := ins.Cmd.Type2()
	n := 1
	if op == T2Put {
		n = 2
	}
	if !st.need(ins.Cmd, n) {
		st.clear()
		return
	}
	i := int(st.pop())
	if i < 0 || i >= len(st.transient) {
		st.report(StageInterpret, ins.Cmd, fmt.Sprintf("transient array index %d out of range", i), SeverityMinor)
		st.clear()
		return
	}
	if op == T2Put {
		st.transient[i] = st.pop()
	} else {
		st.push(st.transient[i])
	}
}
