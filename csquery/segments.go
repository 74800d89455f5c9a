package csquery

import (
	"math"

	"github.com/npillmayer/charstring/cs"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Segments converts a glyph path to sfnt segments, scaled to ppem pixels
// per em for a font with unitsPerEm units per em. As with sfnt.Font.LoadGlyph,
// y points down. Closed subpaths get an explicit line back to their start
// point, if they do not end there already.
func Segments(p cs.Path, unitsPerEm sfnt.Units, ppem fixed.Int26_6) sfnt.Segments {
	if unitsPerEm <= 0 {
		unitsPerEm = 1000
	}
	scale := func(v float32) fixed.Int26_6 {
		return fixed.Int26_6(math.Round(float64(v) * float64(ppem) / float64(unitsPerEm)))
	}
	point := func(pt cs.Point) fixed.Point26_6 {
		return fixed.Point26_6{X: scale(pt.X), Y: scale(-pt.Y)}
	}
	var segs sfnt.Segments
	for _, sp := range p {
		if len(sp.Segments) == 0 {
			continue
		}
		for _, seg := range sp.Segments {
			s := sfnt.Segment{}
			switch seg.Op {
			case cs.MoveTo:
				s.Op = sfnt.SegmentOpMoveTo
				s.Args[0] = point(seg.Args[0])
			case cs.LineTo:
				s.Op = sfnt.SegmentOpLineTo
				s.Args[0] = point(seg.Args[0])
			case cs.CubeTo:
				s.Op = sfnt.SegmentOpCubeTo
				for i := range 3 {
					s.Args[i] = point(seg.Args[i])
				}
			}
			segs = append(segs, s)
		}
		start, end := sp.Segments[0].End(), sp.Segments[len(sp.Segments)-1].End()
		if sp.Closed && start != end {
			segs = append(segs, sfnt.Segment{
				Op:   sfnt.SegmentOpLineTo,
				Args: [3]fixed.Point26_6{point(start)},
			})
		}
	}
	return segs
}
