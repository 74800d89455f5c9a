package cs

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	code := program(Type2, 100, 200, "rmoveto", 500, -300, "rlineto", 3, 2, "add", "endchar")
	seq, err := DecodeType2(code, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "100 200 rmoveto 500 -300 rlineto 3 2 add endchar", seq.String())
	assert.Equal(t, 4, seq.CommandCount())
}

func TestDecodeIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	local := [][]byte{program(Type2, 10, 10, "rlineto", "return")}
	code := program(Type2, 0, 0, "rmoveto", -107, "callsubr", -107, "callsubr", "endchar")
	seq1, err1 := DecodeType2(code, nil, local)
	seq2, err2 := DecodeType2(code, nil, local)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, seq1, seq2)
}

func TestDecodeSubroutineChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	global := [][]byte{
		program(Type2, "return"),
		program(Type2, "return"),
		program(Type2, 10, 20, "rlineto", "return"),
	}
	local := [][]byte{
		program(Type2, -105, "callgsubr", 30, "hlineto", "return"),
	}
	code := program(Type2, 0, 0, "rmoveto", -107, "callsubr", "endchar")
	seq, err := DecodeType2(code, global, local)
	require.NoError(t, err)
	assert.Equal(t, "0 0 rmoveto 10 20 rlineto 30 hlineto endchar", seq.String())
}

func TestDecodeType1Subroutines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	subrs := [][]byte{
		program(Type1, "return"),
		program(Type1, 5, 5, "rlineto", "return"),
	}
	code := program(Type1, 1, "callsubr", "endchar")
	seq, err := DecodeType1(code, subrs)
	require.NoError(t, err)
	assert.Equal(t, "5 5 rlineto endchar", seq.String())
}

func TestDecodeHintMask(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	code := program(Type2,
		1, 2, 3, 4, 5, 6, "hstemhm", // 3 horizontal stems
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, "vstemhm", // 5 vertical stems
		"hintmask", []byte{0xff},
		0, 0, "rmoveto", "endchar")
	seq, err := DecodeType2(code, nil, nil)
	require.NoError(t, err)
	var mask *Instruction
	for i := range seq {
		if seq[i].IsCommand() && seq[i].Cmd.String() == "hintmask" {
			mask = &seq[i]
		}
	}
	require.NotNil(t, mask)
	assert.Equal(t, []byte{0xff}, mask.Mask)
	assert.Equal(t, "0 0 rmoveto endchar", seq[len(seq)-4:].String())
}

func TestDecodeHintMaskImplicitVstem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	code := program(Type2,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, "hstem", // 5 horizontal stems
		1, 2, 3, 4, 5, 6, 7, 8, "hintmask", []byte{0xff, 0x80}, // 4 implicit vstems
		"cntrmask", []byte{0x01, 0x02},
		"endchar")
	seq, err := DecodeType2(code, nil, nil)
	require.NoError(t, err)
	masks := 0
	for _, ins := range seq {
		if ins.IsCommand() && len(ins.Mask) > 0 {
			masks++
			assert.Len(t, ins.Mask, 2, "9 stems need 2 mask bytes")
		}
	}
	assert.Equal(t, 2, masks)
	assert.Equal(t, "endchar", seq[len(seq)-1].String())
}

func TestDecodeStopsAtEndchar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	local := [][]byte{program(Type2, 10, 10, "rlineto", "endchar", 99, 99, "rlineto")}
	code := program(Type2, 0, 0, "rmoveto", -107, "callsubr", 5, 5, "rlineto")
	seq, err := DecodeType2(code, nil, local)
	require.NoError(t, err)
	assert.Equal(t, "0 0 rmoveto 10 10 rlineto endchar", seq.String())
}

func TestDecodeRecursiveSubroutine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	local := [][]byte{program(Type2, -107, "callsubr", "return")}
	code := program(Type2, -107, "callsubr", "endchar")
	_, err := Decoder{Format: Type2, MaxSubrDepth: 10}.Decode(code, nil, local)
	assert.ErrorIs(t, err, ErrSubrDepth)
}

func TestDecodeInstructionLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	local := [][]byte{program(Type2, 1, 1, "rlineto", 1, 1, "rlineto", "return")}
	code := program(Type2, -107, "callsubr", -107, "callsubr", -107, "callsubr", "endchar")
	seq, err := Decoder{Format: Type2, MaxInstructions: 10}.Decode(code, nil, local)
	assert.ErrorIs(t, err, ErrProgramTooLarge)
	assert.Len(t, seq, 11)
}

func TestDecodeSubroutineFanOut(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	code := program(Type2, -107, "callsubr", "endchar")
	// 2^30-1 calls without growing the program
	_, err := Decoder{Format: Type2}.Decode(code, nil, fanOut(30))
	assert.ErrorIs(t, err, ErrProgramTooLarge)
	// 1 + 2 + 4 calls
	_, err = Decoder{Format: Type2, MaxSubrCalls: 6}.Decode(code, nil, fanOut(3))
	assert.ErrorIs(t, err, ErrProgramTooLarge)
	seq, err := Decoder{Format: Type2, MaxSubrCalls: 7}.Decode(code, nil, fanOut(3))
	assert.NoError(t, err)
	assert.Equal(t, "endchar", seq.String())
}

// fanOut creates n local subroutines, each calling its successor twice.
func fanOut(n int) [][]byte {
	local := make([][]byte, n)
	for i := range n - 1 {
		next := i + 1 - 107
		local[i] = program(Type2, next, "callsubr", next, "callsubr", "return")
	}
	local[n-1] = program(Type2, "return")
	return local
}

func TestDecodeRecoversFromBadCode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	diag := &Diagnostics{}
	dec := Decoder{Format: Type2, Diag: diag}
	// subroutine out of range: call is dropped
	seq, err := dec.Decode(program(Type2, 0, "callsubr", 1, 1, "rlineto"), nil,
		[][]byte{program(Type2, "return")})
	require.NoError(t, err)
	assert.Equal(t, "1 1 rlineto", seq.String())
	assert.Equal(t, 1, diag.Len())
	// no subroutines at all
	diag.Reset()
	seq, err = dec.Decode(program(Type2, 0, "callgsubr", "endchar"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "endchar", seq.String())
	assert.Equal(t, 1, diag.Len())
	// truncated operand ends decoding of the frame
	diag.Reset()
	seq, err = dec.Decode([]byte{139, 139, 247}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0 0", seq.String())
	assert.Equal(t, 1, diag.Len())
	// reserved opcode and stray return
	diag.Reset()
	seq, err = dec.Decode([]byte{2, 11}, nil, nil)
	require.NoError(t, err)
	require.Len(t, seq, 2)
	assert.True(t, seq[0].Cmd.IsUnknown())
	assert.Equal(t, "return", seq[1].String())
	// Type 1 only operator in a Type 2 program
	seq, err = dec.Decode(program(Type1, "closepath"), nil, nil)
	require.NoError(t, err)
	assert.True(t, seq[0].Cmd.IsUnknown())
}

func TestDecodeType1Flex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	code := program(Type1,
		0, 1, "callothersubr",
		10, 0, "rmoveto", 0, 2, "callothersubr",
		50, 300, 400, 3, 0, "callothersubr", "pop", "pop", "setcurrentpoint",
		"endchar")
	seq, err := DecodeType1(code, nil)
	require.NoError(t, err)
	assert.Equal(t, "1 callothersubr 10 0 rmoveto 0 callothersubr 300 400 setcurrentpoint endchar",
		seq.String())
}

func TestDecodeType1HintReplacement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	subrs := [][]byte{
		program(Type1, "return"),
		program(Type1, "return"),
		program(Type1, 10, 20, "hstem", "return"),
	}
	diag := &Diagnostics{}
	code := program(Type1, 2, 1, 3, "callothersubr", "pop", "callsubr", "endchar")
	seq, err := Decoder{Format: Type1, Diag: diag}.Decode(code, nil, subrs)
	require.NoError(t, err)
	assert.Equal(t, "10 20 hstem endchar", seq.String())
	assert.Zero(t, diag.Len())
}

func TestDecodeType1OtherSubrResults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	diag := &Diagnostics{}
	dec := Decoder{Format: Type1, Diag: diag}
	code := program(Type1, 7, 8, 2, 14, "callothersubr", "pop", "pop", "endchar")
	seq, err := dec.Decode(code, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "14 callothersubr 7 8 endchar", seq.String())
	assert.Zero(t, diag.Len())
	// pop without a result
	seq, err = dec.Decode(program(Type1, "pop", "endchar"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "endchar", seq.String())
	assert.Equal(t, 1, diag.Len())
}
