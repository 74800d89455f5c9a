package main

import (
	"testing"

	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	ops := parseCommand("type1 subr:8b0b  decode:8b_8b_15 frobnicate quit help")
	require.Len(t, ops, 5)
	assert.Equal(t, Op{code: TYPE1}, ops[0])
	assert.Equal(t, Op{code: SUBR, arg: "8b0b"}, ops[1])
	assert.Equal(t, HELP, ops[3].code)
	assert.Equal(t, QUIT, ops[4].code)
	code, err := hexArg(&ops[2])
	require.NoError(t, err)
	assert.Equal(t, []byte{0x8b, 0x8b, 0x15}, code)
}

func TestExecuteSettings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	intp := &Intp{format: cs.Type2}
	err, stop := intp.execute(parseCommand("type1 nominal:500 default:250 subr:0b"))
	require.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, cs.Type1, intp.format)
	assert.Equal(t, float32(500), intp.nominal)
	assert.Equal(t, float32(250), intp.dflt)
	assert.Len(t, intp.subrs, 1)
	//
	err, _ = intp.execute(parseCommand("nominal:wide"))
	assert.Error(t, err)
	err, _ = intp.execute(parseCommand("glyph:A"))
	assert.ErrorIs(t, err, errNoProgram)
}

func TestLoadProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	intp := &Intp{format: cs.Type2}
	require.NoError(t, intp.loadProgram("../testdata/type1.prog"))
	assert.Equal(t, cs.Type1, intp.format)
	require.Len(t, intp.subrs, 6)
	// subroutine 3 is a bare return once decrypted
	assert.Equal(t, []byte{11}, intp.subrs[3])
}
