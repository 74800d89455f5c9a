/*
Package csquery answers questions about rendered glyphs: metrics, bounding
boxes and overlap. It converts outlines to the segment representation of
golang.org/x/image/font/sfnt, so clients may hand them to rasterizers which
understand sfnt outlines.
*/
package csquery

import (
	"math"

	"github.com/npillmayer/charstring"
	"github.com/npillmayer/charstring/cs"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'font.charstring.query'
func tracer() tracing.Trace {
	return tracing.Select("font.charstring.query")
}

// --- Program Information ---------------------------------------------------

// Info returns summary information about a Program.
func Info(p *charstring.Program) ProgramInfo {
	if p == nil {
		return ProgramInfo{}
	}
	return ProgramInfo{
		Name:        p.Name,
		Format:      p.Format.String(),
		Glyphs:      len(p.CharStrings),
		Subrs:       len(p.Subrs),
		GlobalSubrs: len(p.GlobalSubrs),
	}
}

// --- Glyph Routines --------------------------------------------------------

// BBox returns the bounding box of a path, rounded outwards to font units.
// Control points of curves are included, so the box may be larger than the
// tight box of the outline. An empty path has an empty box.
func BBox(p cs.Path) BoundingBox {
	lo, hi, ok := p.Bounds()
	if !ok {
		return BoundingBox{}
	}
	return BoundingBox{
		MinX: sfnt.Units(math.Floor(float64(lo.X))),
		MinY: sfnt.Units(math.Floor(float64(lo.Y))),
		MaxX: sfnt.Units(math.Ceil(float64(hi.X))),
		MaxY: sfnt.Units(math.Ceil(float64(hi.Y))),
	}
}

// GlyphMetrics retrieves metrics for a rendered glyph.
//
// The left side bearing is the distance from the origin to the left edge of
// the bounding box. Glyphs without an outline keep the side bearing of their
// charstring (hsbw/sbw) and have no right side bearing.
func GlyphMetrics(g cs.Glyph) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{
		Advance: sfnt.Units(math.Round(float64(g.Width))),
		BBox:    BBox(g.Path),
	}
	if g.Empty() {
		metrics.LSB = sfnt.Units(math.Round(float64(g.SideBearing.X)))
		tracer().Debugf("glyph %q has no outline", g.Name)
		return metrics
	}
	metrics.LSB = metrics.BBox.MinX
	// rsb = aw - (lsb + xMax - xMin)
	metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	return metrics
}
