package csquery

import (
	"github.com/golang/geo/r2"
	"github.com/npillmayer/charstring/cs"
)

// Rect returns the bounding rectangle of a path, in font units. An empty path
// yields an empty rectangle.
func Rect(p cs.Path) r2.Rect {
	lo, hi, ok := p.Bounds()
	if !ok {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(
		r2.Point{X: float64(lo.X), Y: float64(lo.Y)},
		r2.Point{X: float64(hi.X), Y: float64(hi.Y)},
	)
}

// Overlap returns the share of the bounding box of glyph a which is covered
// by the bounding box of glyph b, a value between 0 and 1. It is useful for
// checking the placement of accents on composed characters.
func Overlap(a, b cs.Glyph) float64 {
	ra := Rect(a.Path)
	size := area(ra)
	if size == 0 {
		return 0
	}
	return area(ra.Intersection(Rect(b.Path))) / size
}

func area(r r2.Rect) float64 {
	if r.IsEmpty() {
		return 0
	}
	s := r.Size()
	return s.X * s.Y
}
