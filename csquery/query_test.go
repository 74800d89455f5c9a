package csquery

import (
	"testing"

	"github.com/npillmayer/charstring"
	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/charstring/internal/progload"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// --- Test Suite Preparation ------------------------------------------------

type QueryTestEnviron struct {
	suite.Suite
	prog *charstring.Program
}

// listen for 'go test' command --> run test methods
func TestQueryFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring.query")
	defer teardown()
	suite.Run(t, new(QueryTestEnviron))
}

// run once, before test suite methods
func (env *QueryTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	p, err := progload.Load("../testdata/type1.prog")
	env.Require().NoError(err)
	env.prog = p
}

// --- Tests -----------------------------------------------------------------

func (env *QueryTestEnviron) TestInfo() {
	info := Info(env.prog)
	env.Equal("TestType1", info.Name)
	env.Equal("Type1", info.Format)
	env.Equal(6, info.Subrs)
	env.Equal(0, info.GlobalSubrs)
	env.Equal(len(env.prog.CharStrings), info.Glyphs)
	env.Equal(ProgramInfo{}, Info(nil))
}

func (env *QueryTestEnviron) TestGlyphMetrics() {
	g := env.glyph("A")
	m := GlyphMetrics(g)
	env.Equal(sfnt.Units(600), m.Advance)
	env.Equal(BoundingBox{MinX: 0, MinY: 0, MaxX: 600, MaxY: 700}, m.BBox)
	env.Equal(sfnt.Units(0), m.LSB)
	env.Equal(sfnt.Units(0), m.RSB)
	//
	m = GlyphMetrics(env.glyph("space"))
	env.Equal(sfnt.Units(250), m.Advance)
	env.True(m.BBox.IsEmpty())
	env.Equal(sfnt.Units(0), m.RSB)
}

func (env *QueryTestEnviron) TestAccentPlacement() {
	base, composed := env.glyph("A"), env.glyph("Aacute")
	acute := cs.Glyph{Path: composed.Path[1:]}
	env.Equal(0.0, Overlap(acute, base), "accent expected above base glyph")
	env.Equal(1.0, Overlap(base, composed))
	r := Rect(acute.Path)
	env.Equal(720.0, r.Y.Lo)
	env.Equal(800.0, r.Y.Hi)
}

func (env *QueryTestEnviron) glyph(name string) cs.Glyph {
	g, err := env.prog.Glyph(name)
	env.Require().NoError(err)
	return g
}

// --- Tests without fixture environment -------------------------------------

func TestBBoxRounding(t *testing.T) {
	p := cs.Path{{Segments: []cs.Segment{
		{Op: cs.MoveTo, Args: [3]cs.Point{{X: 0.5, Y: -0.5}}},
		{Op: cs.LineTo, Args: [3]cs.Point{{X: 10.2, Y: 20.7}}},
	}}}
	bbox := BBox(p)
	assert.Equal(t, BoundingBox{MinX: 0, MinY: -1, MaxX: 11, MaxY: 21}, bbox)
	assert.Equal(t, sfnt.Units(11), bbox.Dx())
	assert.Equal(t, sfnt.Units(22), bbox.Dy())
	assert.True(t, BBox(nil).IsEmpty())
	assert.True(t, Rect(nil).IsEmpty())
}

func TestSegments(t *testing.T) {
	p := cs.Path{{
		Segments: []cs.Segment{
			{Op: cs.MoveTo, Args: [3]cs.Point{{X: 0, Y: 0}}},
			{Op: cs.LineTo, Args: [3]cs.Point{{X: 1000, Y: 0}}},
			{Op: cs.CubeTo, Args: [3]cs.Point{{X: 1000, Y: 500}, {X: 500, Y: 1000}, {X: 0, Y: 1000}}},
		},
		Closed: true,
	}}
	segs := Segments(p, 1000, fixed.I(10))
	assert.Len(t, segs, 4)
	assert.Equal(t, sfnt.SegmentOpMoveTo, segs[0].Op)
	assert.Equal(t, fixed.P(10, 0), segs[1].Args[0])
	assert.Equal(t, sfnt.SegmentOpCubeTo, segs[2].Op)
	assert.Equal(t, fixed.P(0, -10), segs[2].Args[2], "y expected to point down")
	assert.Equal(t, sfnt.SegmentOpLineTo, segs[3].Op, "closing line expected")
	assert.Equal(t, fixed.P(0, 0), segs[3].Args[0])
	//
	p[0].Closed = false
	assert.Len(t, Segments(p, 1000, fixed.I(10)), 3)
}
