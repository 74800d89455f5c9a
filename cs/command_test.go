package cs

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestCommandLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	tests := []struct {
		b0, b1  byte
		escaped bool
		name    string
	}{
		{5, 0, false, "rlineto"},
		{19, 0, false, "hintmask"},
		{9, 0, false, "closepath"},
		{12, 35, true, "flex"},
		{12, 6, true, "seac"},
		{12, 33, true, "setcurrentpoint"},
		{0, 0, false, "unknown"},
		{12, 0, false, "unknown"}, // escape byte alone
		{12, 99, true, "unknown"},
		{200, 0, false, "unknown"},
	}
	for _, tt := range tests {
		var c *Command
		if tt.escaped {
			c = LookupEscape(tt.b0, tt.b1)
		} else {
			c = Lookup(tt.b0)
		}
		assert.Equal(t, tt.name, c.String(), "for opcode %d/%d", tt.b0, tt.b1)
	}
	assert.True(t, LookupEscape(11, 35).IsUnknown(), "expected Unknown for non-escape b0")
}

func TestCatalogueReadyForPackageVariables(t *testing.T) {
	// opcodes is a package variable built from Lookup and LookupEscape
	assert.Equal(t, []byte{21}, opcodes["rmoveto"])
	assert.Equal(t, []byte{12, 35}, opcodes["flex"])
	assert.Equal(t, []byte{12, 17}, opcodes["pop"])
	assert.NotContains(t, opcodes, "unknown")
}

func TestCommandsAreInterned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	assert.Same(t, Lookup(5), LookupKeyword(5))
	assert.Same(t, LookupEscape(12, 12), LookupKeyword(12<<8|12))
	assert.Same(t, Unknown, Lookup(2))
	assert.Same(t, Unknown, LookupKeyword(0x1234))
	assert.True(t, Keyword(12<<8|1).IsEscaped())
	assert.False(t, Keyword(21).IsEscaped())
}

func TestCommandMembership(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	closepath := Lookup(9)
	assert.True(t, closepath.IsType1())
	assert.False(t, closepath.IsType2())
	hintmask := Lookup(19)
	assert.False(t, hintmask.ValidIn(Type1))
	assert.True(t, hintmask.ValidIn(Type2))
	div := LookupEscape(12, 12)
	assert.True(t, div.ValidIn(Type1) && div.ValidIn(Type2), "div is part of both formats")
	assert.False(t, Unknown.ValidIn(Type1) || Unknown.ValidIn(Type2))
	//
	k1, ok := LookupEscape(12, 16).Type1()
	assert.True(t, ok)
	assert.Equal(t, T1Callothersubr, k1)
	_, ok = LookupEscape(12, 16).Type2()
	assert.False(t, ok, "callothersubr is not a Type 2 operator")
	k2, ok := Lookup(29).Type2()
	assert.True(t, ok)
	assert.Equal(t, T2Callgsubr, k2)
}

func TestSubroutineBias(t *testing.T) {
	tests := []struct {
		n, bias int
	}{
		{0, 107},
		{100, 107},
		{1239, 107},
		{1240, 1131},
		{33899, 1131},
		{33900, 32768},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bias, Bias(tt.n), "bias for %d subroutines", tt.n)
	}
	assert.Equal(t, 0, Resolve(-107, 100))
	assert.Equal(t, 1131+5, Resolve(5, 2000))
	//
	inx, ok := Type2.SubrIndex(-107, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, inx)
	_, ok = Type2.SubrIndex(0, 1)
	assert.False(t, ok, "index 107 out of range")
	inx, ok = Type1.SubrIndex(3, 4)
	assert.True(t, ok, "Type 1 subroutine numbers are not biased")
	assert.Equal(t, 3, inx)
	_, ok = Type1.SubrIndex(-1, 4)
	assert.False(t, ok)
}
