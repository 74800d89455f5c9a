package cs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Instruction is an element of a decoded glyph program: either a number or a
// command. Mask operators (hintmask, cntrmask) carry their mask bytes.
type Instruction struct {
	Cmd    *Command // nil for numbers
	Number float32  // operand value, valid if Cmd is nil
	Mask   []byte   // hint mask payload of hintmask/cntrmask
}

// Num creates a number instruction.
func Num(v float32) Instruction {
	return Instruction{Number: v}
}

// Op creates a command instruction.
func Op(c *Command) Instruction {
	return Instruction{Cmd: c}
}

// IsCommand reports whether ins is a command (and not a number).
func (ins Instruction) IsCommand() bool {
	return ins.Cmd != nil
}

func (ins Instruction) String() string {
	if ins.Cmd == nil {
		return strconv.FormatFloat(float64(ins.Number), 'g', -1, 32)
	}
	if len(ins.Mask) > 0 {
		return fmt.Sprintf("%s<%x>", ins.Cmd, ins.Mask)
	}
	return ins.Cmd.String()
}

// Instructions is a flat glyph program. Numbers always precede the command
// consuming them; subroutine calls have been inlined.
type Instructions []Instruction

func (seq Instructions) String() string {
	sb := strings.Builder{}
	for i, ins := range seq {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(ins.String())
	}
	return sb.String()
}

// CommandCount returns the number of commands in seq.
func (seq Instructions) CommandCount() int {
	n := 0
	for _, ins := range seq {
		if ins.IsCommand() {
			n++
		}
	}
	return n
}

// Limits for decoding, used if a Decoder does not set them.
const (
	DefaultMaxSubrDepth    = 64
	DefaultMaxInstructions = 65536
	DefaultMaxSubrCalls    = 16384
)

// Decoder decodes charstring bytes into Instructions.
//
// The zero value is not usable, as it lacks a Format. A Decoder holds
// configuration only; it may be used for many glyphs and from concurrent
// goroutines, provided Diag is not shared.
type Decoder struct {
	Format          Format       // charstring dialect
	MaxSubrDepth    int          // maximum nesting of subroutine calls; 0 means default
	MaxInstructions int          // maximum length of the decoded program; 0 means default
	MaxSubrCalls    int          // maximum number of subroutine calls per program; 0 means default
	Diag            *Diagnostics // optional sink for decoding issues
}

// DecodeType2 decodes a Type 2 charstring with default limits.
func DecodeType2(code []byte, global, local [][]byte) (Instructions, error) {
	return Decoder{Format: Type2}.Decode(code, global, local)
}

// DecodeType1 decodes a Type 1 charstring with default limits. Type 1 fonts do
// not have global subroutines.
func DecodeType1(code []byte, subrs [][]byte) (Instructions, error) {
	return Decoder{Format: Type1}.Decode(code, nil, subrs)
}

// Decode decodes code into a flat sequence of numbers and commands. Calls to
// subroutines in tables global and local are inlined recursively.
//
// Malformed code is decoded on a best-effort basis and reported to d.Diag.
// An error is returned only if subroutine calls nest deeper than
// d.MaxSubrDepth (ErrSubrDepth) or if the program expands beyond
// d.MaxInstructions or calls more than d.MaxSubrCalls subroutines in total
// (ErrProgramTooLarge). The instructions decoded so far are returned in
// either case.
func (d Decoder) Decode(code []byte, global, local [][]byte) (Instructions, error) {
	if d.Format != Type1 && d.Format != Type2 {
		return nil, fmt.Errorf("cannot decode charstring of unknown format %d", d.Format)
	}
	dec := &decoding{
		Decoder: d,
		global:  global,
		local:   local,
		seq:     make(Instructions, 0, len(code)),
		frames:  arraystack.New(),
	}
	dec.frames.Push(&frame{code: codeSegm(code)})
	for !dec.done {
		top, ok := dec.frames.Peek()
		if !ok {
			break
		}
		fr := top.(*frame)
		if fr.pos >= len(fr.code) {
			dec.frames.Pop()
			continue
		}
		if err := dec.step(fr); err != nil {
			return dec.seq, err
		}
		if len(dec.seq) > d.maxInstructions() {
			return dec.seq, fmt.Errorf("%w: more than %d instructions", ErrProgramTooLarge, d.maxInstructions())
		}
	}
	tracer().Debugf("decoded %s charstring of %d bytes into %d instructions", d.Format, len(code), len(dec.seq))
	return dec.seq, nil
}

func (d Decoder) maxSubrDepth() int {
	if d.MaxSubrDepth <= 0 {
		return DefaultMaxSubrDepth
	}
	return d.MaxSubrDepth
}

func (d Decoder) maxSubrCalls() int {
	if d.MaxSubrCalls <= 0 {
		return DefaultMaxSubrCalls
	}
	return d.MaxSubrCalls
}

func (d Decoder) maxInstructions() int {
	if d.MaxInstructions <= 0 {
		return DefaultMaxInstructions
	}
	return d.MaxInstructions
}

// --- Decoding state --------------------------------------------------------

type frameKind uint8

const (
	frameCharString frameKind = iota
	frameLocalSubr
	frameGlobalSubr
)

// frame is a piece of code being decoded: the charstring itself or a called
// subroutine.
type frame struct {
	code codeSegm
	pos  int
	kind frameKind
	inx  int // subroutine index
}

// decoding holds the state of one Decode call.
type decoding struct {
	Decoder
	global, local [][]byte
	seq           Instructions
	frames        *arraystack.Stack // worklist of *frame, top is being decoded
	hstems        int               // Type 2 horizontal stem hints seen so far
	vstems        int               // Type 2 vertical stem hints seen so far
	results       []float32         // Type 1 othersubr results waiting for 'pop'
	calls         int               // subroutine calls so far
	done          bool
}

func (dec *decoding) emit(ins Instruction) {
	dec.seq = append(dec.seq, ins)
}

// pending returns the number of operands decoded since the last command.
func (dec *decoding) pending() int {
	n := 0
	for i := len(dec.seq) - 1; i >= 0 && !dec.seq[i].IsCommand(); i-- {
		n++
	}
	return n
}

// popNumber removes the most recent pending operand.
func (dec *decoding) popNumber() (float32, bool) {
	if len(dec.seq) == 0 || dec.seq[len(dec.seq)-1].IsCommand() {
		return 0, false
	}
	v := dec.seq[len(dec.seq)-1].Number
	dec.seq = dec.seq[:len(dec.seq)-1]
	return v, true
}

// step decodes the next number or command of frame fr.
func (dec *decoding) step(fr *frame) error {
	b := fr.code[fr.pos]
	if dec.Format == Type1 && len(dec.results) > 0 && !fr.isPop() {
		dec.Diag.add(StageDecode, "callothersubr", "othersubr results left on stack", SeverityMinor, fr.pos)
		dec.results = dec.results[:0]
	}
	if dec.Format.isNumber(b) {
		v, n, err := dec.Format.decodeNumber(fr.code, fr.pos)
		if err != nil {
			dec.Diag.add(StageDecode, "", "truncated operand", SeverityMajor, fr.pos)
			fr.pos = len(fr.code)
			return nil
		}
		fr.pos += n
		dec.emit(Num(v))
		return nil
	}
	start := fr.pos
	fr.pos++
	cmd := Lookup(b)
	if b == escapeByte {
		b1, err := fr.code.u8(fr.pos)
		if err != nil {
			dec.Diag.add(StageDecode, "", "truncated escape operator", SeverityMajor, start)
			fr.pos = len(fr.code)
			return nil
		}
		fr.pos++
		cmd = LookupEscape(b, b1)
	}
	if !cmd.ValidIn(dec.Format) {
		tracer().Debugf("unknown %s operator %x at %d", dec.Format, fr.code[start:fr.pos], start)
		dec.emit(Op(Unknown))
		return nil
	}
	if dec.Format == Type2 {
		return dec.type2Command(fr, cmd, start)
	}
	return dec.type1Command(fr, cmd, start)
}

func (fr *frame) isPop() bool {
	return fr.pos+1 < len(fr.code) && fr.code[fr.pos] == escapeByte &&
		fr.code[fr.pos+1] == byte(T1Pop&0xff)
}

func (dec *decoding) type2Command(fr *frame, cmd *Command, start int) error {
	op, _ := cmd.Type2()
	switch op {
	case T2Callsubr:
		return dec.call(cmd, dec.local, frameLocalSubr, start)
	case T2Callgsubr:
		return dec.call(cmd, dec.global, frameGlobalSubr, start)
	case T2Return:
		dec.ret(cmd)
	case T2Endchar:
		dec.emit(Op(cmd))
		dec.done = true
	case T2Hstem, T2Hstemhm:
		dec.hstems += dec.pending() / 2
		dec.emit(Op(cmd))
	case T2Vstem, T2Vstemhm:
		dec.vstems += dec.pending() / 2
		dec.emit(Op(cmd))
	case T2Hintmask, T2Cntrmask:
		// operands left before a mask operator are an implicit vstem
		dec.vstems += dec.pending() / 2
		n := (dec.hstems + dec.vstems + 7) / 8
		mask, err := fr.code.view(fr.pos, n)
		if err != nil {
			dec.Diag.add(StageDecode, cmd.String(), "truncated hint mask", SeverityMajor, start)
			mask = fr.code[fr.pos:]
		}
		fr.pos += len(mask)
		dec.emit(Instruction{Cmd: cmd, Mask: mask})
	default:
		dec.emit(Op(cmd))
	}
	return nil
}

func (dec *decoding) type1Command(fr *frame, cmd *Command, start int) error {
	op, _ := cmd.Type1()
	switch op {
	case T1Callsubr:
		return dec.call(cmd, dec.local, frameLocalSubr, start)
	case T1Return:
		dec.ret(cmd)
	case T1Endchar:
		dec.emit(Op(cmd))
		dec.done = true
	case T1Callothersubr:
		dec.callOtherSubr(cmd, start)
	case T1Pop:
		if len(dec.results) == 0 {
			dec.Diag.add(StageDecode, cmd.String(), "pop without othersubr result", SeverityMinor, start)
			return nil
		}
		r := dec.results[len(dec.results)-1]
		dec.results = dec.results[:len(dec.results)-1]
		dec.emit(Num(r))
	default:
		dec.emit(Op(cmd))
	}
	return nil
}

// call inlines a subroutine by pushing a new frame onto the worklist.
func (dec *decoding) call(cmd *Command, table [][]byte, kind frameKind, at int) error {
	operand, ok := dec.popNumber()
	if !ok {
		dec.Diag.add(StageDecode, cmd.String(), "subroutine call without operand", SeverityMajor, at)
		return nil
	}
	if len(table) == 0 {
		dec.Diag.add(StageDecode, cmd.String(), "no subroutines available", SeverityMinor, at)
		return nil
	}
	inx, ok := dec.Format.SubrIndex(int(operand), len(table))
	if !ok {
		dec.Diag.add(StageDecode, cmd.String(),
			fmt.Sprintf("subroutine index %d out of range [0…%d)", inx, len(table)), SeverityMinor, at)
		return nil
	}
	if dec.calls++; dec.calls > dec.maxSubrCalls() {
		return fmt.Errorf("%w: more than %d subroutine calls", ErrProgramTooLarge, dec.maxSubrCalls())
	}
	if dec.frames.Size() > dec.maxSubrDepth() {
		return fmt.Errorf("%w: %s %d at depth %d", ErrSubrDepth, cmd, inx, dec.frames.Size()-1)
	}
	tracer().Debugf("%s %d (operand %d)", cmd, inx, int(operand))
	dec.frames.Push(&frame{code: codeSegm(table[inx]), kind: kind, inx: inx})
	return nil
}

// ret ends the current subroutine. A return in the charstring itself is passed
// on to the interpreter, which will report it.
func (dec *decoding) ret(cmd *Command) {
	if dec.frames.Size() <= 1 {
		dec.emit(Op(cmd))
		return
	}
	dec.frames.Pop()
}

// callOtherSubr resolves the Type 1 othersubr protocol. Othersubrs are
// PostScript procedures of the font program; we emulate the standard ones
// (flex, hint replacement) and leave their results for subsequent 'pop'
// operators. Only flex start/end and unsupported othersubrs reach the
// interpreter, as '<n> callothersubr'.
func (dec *decoding) callOtherSubr(cmd *Command, at int) {
	othersubr, ok1 := dec.popNumber()
	nargs, ok2 := dec.popNumber()
	if !ok1 || !ok2 {
		dec.Diag.add(StageDecode, cmd.String(), "missing othersubr number or argument count", SeverityMajor, at)
		return
	}
	dec.results = dec.results[:0]
	switch int(othersubr) {
	case 0: // end flex: flexheight x y
		y, _ := dec.popNumber()
		x, _ := dec.popNumber()
		if _, ok := dec.popNumber(); !ok {
			dec.Diag.add(StageDecode, cmd.String(), "flex end with too few arguments", SeverityMinor, at)
		}
		dec.results = append(dec.results, y, x)
		dec.emit(Num(0))
		dec.emit(Op(cmd))
	case 1: // start flex
		dec.emit(Num(1))
		dec.emit(Op(cmd))
	case 2: // flex point marker
	case 3: // hint replacement: returns the subroutine number
		subr, ok := dec.popNumber()
		if !ok {
			dec.Diag.add(StageDecode, cmd.String(), "hint replacement without subroutine number", SeverityMinor, at)
			return
		}
		dec.results = append(dec.results, subr)
	default:
		for i := 0; i < int(nargs); i++ {
			arg, ok := dec.popNumber()
			if !ok {
				break
			}
			dec.results = append(dec.results, arg)
		}
		dec.emit(Num(othersubr))
		dec.emit(Op(cmd))
	}
}
