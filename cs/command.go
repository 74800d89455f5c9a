package cs

import "fmt"

// Format selects one of the two charstring dialects.
type Format uint8

const (
	// Type1 charstrings are found in Type 1 (PostScript) font programs.
	Type1 Format = 1
	// Type2 charstrings are found in CFF font programs.
	Type2 Format = 2
)

func (f Format) String() string {
	switch f {
	case Type1:
		return "Type1"
	case Type2:
		return "Type2"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// escapeByte introduces 2-byte operators.
const escapeByte = 12

// Keyword is the numeric identity of a charstring operator. 1-byte operators
// use their opcode, escaped operators use (12<<8 | b1).
type Keyword uint16

// UnknownKeyword is the keyword of the Unknown command.
const UnknownKeyword Keyword = 0xffff

// IsEscaped reports whether k is a 2-byte operator.
func (k Keyword) IsEscaped() bool {
	return k != UnknownKeyword && k>>8 == escapeByte
}

// Type1Keyword enumerates the operators of the Type 1 instruction set.
type Type1Keyword uint16

// Type 1 operators
const (
	T1Hstem           Type1Keyword = 1
	T1Vstem           Type1Keyword = 3
	T1Vmoveto         Type1Keyword = 4
	T1Rlineto         Type1Keyword = 5
	T1Hlineto         Type1Keyword = 6
	T1Vlineto         Type1Keyword = 7
	T1Rrcurveto       Type1Keyword = 8
	T1Closepath       Type1Keyword = 9
	T1Callsubr        Type1Keyword = 10
	T1Return          Type1Keyword = 11
	T1Hsbw            Type1Keyword = 13
	T1Endchar         Type1Keyword = 14
	T1Rmoveto         Type1Keyword = 21
	T1Hmoveto         Type1Keyword = 22
	T1Vhcurveto       Type1Keyword = 30
	T1Hvcurveto       Type1Keyword = 31
	T1Dotsection      Type1Keyword = 12<<8 | 0
	T1Vstem3          Type1Keyword = 12<<8 | 1
	T1Hstem3          Type1Keyword = 12<<8 | 2
	T1Seac            Type1Keyword = 12<<8 | 6
	T1Sbw             Type1Keyword = 12<<8 | 7
	T1Div             Type1Keyword = 12<<8 | 12
	T1Callothersubr   Type1Keyword = 12<<8 | 16
	T1Pop             Type1Keyword = 12<<8 | 17
	T1Setcurrentpoint Type1Keyword = 12<<8 | 33
)

// Type2Keyword enumerates the operators of the Type 2 instruction set.
type Type2Keyword uint16

// Type 2 operators
const (
	T2Hstem      Type2Keyword = 1
	T2Vstem      Type2Keyword = 3
	T2Vmoveto    Type2Keyword = 4
	T2Rlineto    Type2Keyword = 5
	T2Hlineto    Type2Keyword = 6
	T2Vlineto    Type2Keyword = 7
	T2Rrcurveto  Type2Keyword = 8
	T2Callsubr   Type2Keyword = 10
	T2Return     Type2Keyword = 11
	T2Endchar    Type2Keyword = 14
	T2Hstemhm    Type2Keyword = 18
	T2Hintmask   Type2Keyword = 19
	T2Cntrmask   Type2Keyword = 20
	T2Rmoveto    Type2Keyword = 21
	T2Hmoveto    Type2Keyword = 22
	T2Vstemhm    Type2Keyword = 23
	T2Rcurveline Type2Keyword = 24
	T2Rlinecurve Type2Keyword = 25
	T2Vvcurveto  Type2Keyword = 26
	T2Hhcurveto  Type2Keyword = 27
	T2Callgsubr  Type2Keyword = 29
	T2Vhcurveto  Type2Keyword = 30
	T2Hvcurveto  Type2Keyword = 31
	T2Dotsection Type2Keyword = 12<<8 | 0
	T2And        Type2Keyword = 12<<8 | 3
	T2Or         Type2Keyword = 12<<8 | 4
	T2Not        Type2Keyword = 12<<8 | 5
	T2Abs        Type2Keyword = 12<<8 | 9
	T2Add        Type2Keyword = 12<<8 | 10
	T2Sub        Type2Keyword = 12<<8 | 11
	T2Div        Type2Keyword = 12<<8 | 12
	T2Neg        Type2Keyword = 12<<8 | 14
	T2Eq         Type2Keyword = 12<<8 | 15
	T2Drop       Type2Keyword = 12<<8 | 18
	T2Put        Type2Keyword = 12<<8 | 20
	T2Get        Type2Keyword = 12<<8 | 21
	T2Ifelse     Type2Keyword = 12<<8 | 22
	T2Random     Type2Keyword = 12<<8 | 23
	T2Mul        Type2Keyword = 12<<8 | 24
	T2Sqrt       Type2Keyword = 12<<8 | 26
	T2Dup        Type2Keyword = 12<<8 | 27
	T2Exch       Type2Keyword = 12<<8 | 28
	T2Index      Type2Keyword = 12<<8 | 29
	T2Roll       Type2Keyword = 12<<8 | 30
	T2Hflex      Type2Keyword = 12<<8 | 34
	T2Flex       Type2Keyword = 12<<8 | 35
	T2Hflex1     Type2Keyword = 12<<8 | 36
	T2Flex1      Type2Keyword = 12<<8 | 37
)

type membership uint8

const (
	inType1 membership = 1 << iota
	inType2
	inBoth = inType1 | inType2
)

// Command is a charstring operator. Commands are interned: there is exactly
// one instance per keyword, and clients may compare commands by pointer.
// Commands are immutable.
type Command struct {
	keyword Keyword
	member  membership
}

// Unknown represents every byte pattern outside the operator catalogue.
var Unknown = &Command{keyword: UnknownKeyword}

// Keyword returns the numeric identity of c.
func (c *Command) Keyword() Keyword {
	return c.keyword
}

// IsUnknown reports whether c is the Unknown sentinel.
func (c *Command) IsUnknown() bool {
	return c == nil || c.keyword == UnknownKeyword
}

// IsType1 reports whether c is part of the Type 1 instruction set.
func (c *Command) IsType1() bool {
	return c != nil && c.member&inType1 != 0
}

// IsType2 reports whether c is part of the Type 2 instruction set.
func (c *Command) IsType2() bool {
	return c != nil && c.member&inType2 != 0
}

// ValidIn reports whether c is part of the instruction set of format f.
func (c *Command) ValidIn(f Format) bool {
	switch f {
	case Type1:
		return c.IsType1()
	case Type2:
		return c.IsType2()
	}
	return false
}

// Type1 returns the Type 1 view of c. The second return value is false if c
// is not a Type 1 operator.
func (c *Command) Type1() (Type1Keyword, bool) {
	if !c.IsType1() {
		return 0, false
	}
	return Type1Keyword(c.keyword), true
}

// Type2 returns the Type 2 view of c. The second return value is false if c
// is not a Type 2 operator.
func (c *Command) Type2() (Type2Keyword, bool) {
	if !c.IsType2() {
		return 0, false
	}
	return Type2Keyword(c.keyword), true
}

func (c *Command) String() string {
	if c.IsUnknown() {
		return "unknown"
	}
	return keywordName(c.keyword)
}

// Lookup returns the command for the 1-byte opcode b0. The escape byte and
// bytes outside the catalogue yield Unknown.
func Lookup(b0 byte) *Command {
	if int(b0) >= len(oneByteCommands) {
		return Unknown
	}
	if c := oneByteCommands[b0]; c != nil {
		return c
	}
	return Unknown
}

// LookupEscape returns the command for the 2-byte opcode (b0, b1). If b0 is
// not the escape byte, or the pair is not part of the catalogue, Unknown is
// returned.
func LookupEscape(b0, b1 byte) *Command {
	if b0 != escapeByte {
		return Unknown
	}
	if c := escapedCommands[b1]; c != nil {
		return c
	}
	return Unknown
}

// LookupKeyword returns the command with keyword k, or Unknown.
func LookupKeyword(k Keyword) *Command {
	if k.IsEscaped() {
		return LookupEscape(escapeByte, byte(k&0xff))
	}
	if k > 0xff {
		return Unknown
	}
	return Lookup(byte(k))
}

// --- Catalogue -------------------------------------------------------------

// The catalogue is built by variable initialization, so it is in place
// before other package-level variables and init functions use it.
var oneByteCommands, escapedCommands = buildCatalogue()

func buildCatalogue() (oneByte [32]*Command, escaped [256]*Command) {
	for _, entry := range []struct {
		k Keyword
		m membership
	}{
		{1, inBoth},           // hstem
		{3, inBoth},           // vstem
		{4, inBoth},           // vmoveto
		{5, inBoth},           // rlineto
		{6, inBoth},           // hlineto
		{7, inBoth},           // vlineto
		{8, inBoth},           // rrcurveto
		{9, inType1},          // closepath
		{10, inBoth},          // callsubr
		{11, inBoth},          // return
		{13, inType1},         // hsbw
		{14, inBoth},          // endchar
		{18, inType2},         // hstemhm
		{19, inType2},         // hintmask
		{20, inType2},         // cntrmask
		{21, inBoth},          // rmoveto
		{22, inBoth},          // hmoveto
		{23, inType2},         // vstemhm
		{24, inType2},         // rcurveline
		{25, inType2},         // rlinecurve
		{26, inType2},         // vvcurveto
		{27, inType2},         // hhcurveto
		{29, inType2},         // callgsubr
		{30, inBoth},          // vhcurveto
		{31, inBoth},          // hvcurveto
		{12<<8 | 0, inBoth},   // dotsection
		{12<<8 | 1, inType1},  // vstem3
		{12<<8 | 2, inType1},  // hstem3
		{12<<8 | 3, inType2},  // and
		{12<<8 | 4, inType2},  // or
		{12<<8 | 5, inType2},  // not
		{12<<8 | 6, inType1},  // seac
		{12<<8 | 7, inType1},  // sbw
		{12<<8 | 9, inType2},  // abs
		{12<<8 | 10, inType2}, // add
		{12<<8 | 11, inType2}, // sub
		{12<<8 | 12, inBoth},  // div
		{12<<8 | 14, inType2}, // neg
		{12<<8 | 15, inType2}, // eq
		{12<<8 | 16, inType1}, // callothersubr
		{12<<8 | 17, inType1}, // pop
		{12<<8 | 18, inType2}, // drop
		{12<<8 | 20, inType2}, // put
		{12<<8 | 21, inType2}, // get
		{12<<8 | 22, inType2}, // ifelse
		{12<<8 | 23, inType2}, // random
		{12<<8 | 24, inType2}, // mul
		{12<<8 | 26, inType2}, // sqrt
		{12<<8 | 27, inType2}, // dup
		{12<<8 | 28, inType2}, // exch
		{12<<8 | 29, inType2}, // index
		{12<<8 | 30, inType2}, // roll
		{12<<8 | 33, inType1}, // setcurrentpoint
		{12<<8 | 34, inType2}, // hflex
		{12<<8 | 35, inType2}, // flex
		{12<<8 | 36, inType2}, // hflex1
		{12<<8 | 37, inType2}, // flex1
	} {
		c := &Command{keyword: entry.k, member: entry.m}
		if entry.k.IsEscaped() {
			escaped[entry.k&0xff] = c
		} else {
			oneByte[entry.k] = c
		}
	}
	return
}

func keywordName(k Keyword) string {
	switch k {
	case 1:
		return "hstem"
	case 3:
		return "vstem"
	case 4:
		return "vmoveto"
	case 5:
		return "rlineto"
	case 6:
		return "hlineto"
	case 7:
		return "vlineto"
	case 8:
		return "rrcurveto"
	case 9:
		return "closepath"
	case 10:
		return "callsubr"
	case 11:
		return "return"
	case 13:
		return "hsbw"
	case 14:
		return "endchar"
	case 18:
		return "hstemhm"
	case 19:
		return "hintmask"
	case 20:
		return "cntrmask"
	case 21:
		return "rmoveto"
	case 22:
		return "hmoveto"
	case 23:
		return "vstemhm"
	case 24:
		return "rcurveline"
	case 25:
		return "rlinecurve"
	case 26:
		return "vvcurveto"
	case 27:
		return "hhcurveto"
	case 29:
		return "callgsubr"
	case 30:
		return "vhcurveto"
	case 31:
		return "hvcurveto"
	case 12<<8 | 0:
		return "dotsection"
	case 12<<8 | 1:
		return "vstem3"
	case 12<<8 | 2:
		return "hstem3"
	case 12<<8 | 3:
		return "and"
	case 12<<8 | 4:
		return "or"
	case 12<<8 | 5:
		return "not"
	case 12<<8 | 6:
		return "seac"
	case 12<<8 | 7:
		return "sbw"
	case 12<<8 | 9:
		return "abs"
	case 12<<8 | 10:
		return "add"
	case 12<<8 | 11:
		return "sub"
	case 12<<8 | 12:
		return "div"
	case 12<<8 | 14:
		return "neg"
	case 12<<8 | 15:
		return "eq"
	case 12<<8 | 16:
		return "callothersubr"
	case 12<<8 | 17:
		return "pop"
	case 12<<8 | 18:
		return "drop"
	case 12<<8 | 20:
		return "put"
	case 12<<8 | 21:
		return "get"
	case 12<<8 | 22:
		return "ifelse"
	case 12<<8 | 23:
		return "random"
	case 12<<8 | 24:
		return "mul"
	case 12<<8 | 26:
		return "sqrt"
	case 12<<8 | 27:
		return "dup"
	case 12<<8 | 28:
		return "exch"
	case 12<<8 | 29:
		return "index"
	case 12<<8 | 30:
		return "roll"
	case 12<<8 | 33:
		return "setcurrentpoint"
	case 12<<8 | 34:
		return "hflex"
	case 12<<8 | 35:
		return "flex"
	case 12<<8 | 36:
		return "hflex1"
	case 12<<8 | 37:
		return "flex1"
	}
	if k.IsEscaped() {
		return fmt.Sprintf("escape(%d)", k&0xff)
	}
	return fmt.Sprintf("op(%d)", k)
}
