package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func TestParseHex(t *testing.T) {
	code, err := parseHex(" 8b8b_15 0e ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x8b, 0x8b, 0x15, 0x0e}, code)
	_, err = parseHex("")
	assert.Error(t, err)
	_, err = parseHex("8g")
	assert.Error(t, err)
}

func TestSplitCSVSpace(t *testing.T) {
	assert.Equal(t, []string{"A", "Aacute", "space"}, splitCSVSpace("A, Aacute space"))
	assert.Empty(t, splitCSVSpace(""))
}

func TestFormatSegments(t *testing.T) {
	segs := sfnt.Segments{
		{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{fixed.P(1, 2)}},
		{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{{X: 96, Y: 0}}},
	}
	assert.Equal(t, "M1.00 2.00 L1.50 0.00", formatSegments(segs))
}
