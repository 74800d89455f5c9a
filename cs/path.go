package cs

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in glyph space (font units, y pointing up).
type Point struct {
	X, Y float32
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// SegmentOp is the kind of a path segment.
type SegmentOp uint8

// Path segment kinds. Quadratic segments do not occur in charstrings.
const (
	MoveTo SegmentOp = iota
	LineTo
	CubeTo
)

func (op SegmentOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CubeTo:
		return "C"
	}
	return "?"
}

// Segment is a single path element. MoveTo and LineTo use Args[0], CubeTo
// uses Args[0] and Args[1] as control points and Args[2] as end point.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// End returns the point a segment ends at.
func (s Segment) End() Point {
	if s.Op == CubeTo {
		return s.Args[2]
	}
	return s.Args[0]
}

func (s Segment) points() []Point {
	if s.Op == CubeTo {
		return s.Args[:]
	}
	return s.Args[:1]
}

// Subpath is a contour, starting with a MoveTo segment.
type Subpath struct {
	Segments []Segment
	Closed   bool
}

// degenerate reports whether sp does nothing but set a position.
func (sp Subpath) degenerate() bool {
	return len(sp.Segments) <= 1
}

// Path is a glyph outline, a list of subpaths in drawing order.
type Path []Subpath

// Translate returns a copy of p shifted by (dx, dy).
func (p Path) Translate(dx, dy float32) Path {
	d := Point{X: dx, Y: dy}
	q := make(Path, len(p))
	for i, sp := range p {
		q[i] = Subpath{Segments: make([]Segment, len(sp.Segments)), Closed: sp.Closed}
		for j, seg := range sp.Segments {
			for k := range seg.points() {
				seg.Args[k] = seg.Args[k].Add(d)
			}
			q[i].Segments[j] = seg
		}
	}
	return q
}

// Bounds returns the bounding box of all points of p, including control
// points of curves. For an empty path, ok is false.
func (p Path) Bounds() (lo, hi Point, ok bool) {
	lo = Point{X: math.MaxFloat32, Y: math.MaxFloat32}
	hi = Point{X: -math.MaxFloat32, Y: -math.MaxFloat32}
	for _, sp := range p {
		for _, seg := range sp.Segments {
			for _, pt := range seg.points() {
				lo.X, lo.Y = min(lo.X, pt.X), min(lo.Y, pt.Y)
				hi.X, hi.Y = max(hi.X, pt.X), max(hi.Y, pt.Y)
				ok = true
			}
		}
	}
	if !ok {
		return Point{}, Point{}, false
	}
	return
}

// SegmentCount returns the number of segments of op kind in p.
func (p Path) SegmentCount(op SegmentOp) int {
	n := 0
	for _, sp := range p {
		for _, seg := range sp.Segments {
			if seg.Op == op {
				n++
			}
		}
	}
	return n
}

// String returns the path in an SVG-like notation.
func (p Path) String() string {
	sb := strings.Builder{}
	for _, sp := range p {
		for _, seg := range sp.Segments {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(seg.Op.String())
			for i, pt := range seg.points() {
				if i > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(fmt.Sprintf("%g %g", pt.X, pt.Y))
			}
		}
		if sp.Closed {
			sb.WriteString(" Z")
		}
	}
	return sb.String()
}

// --- Path construction -----------------------------------------------------

// pathBuilder accumulates a Path. At most one subpath is open at a time.
type pathBuilder struct {
	path Path
	open bool // last subpath of path accepts segments
}

func (pb *pathBuilder) hasOpen() bool {
	return pb.open && len(pb.path) > 0
}

func (pb *pathBuilder) current() *Subpath {
	return &pb.path[len(pb.path)-1]
}

// moveTo starts a new subpath at pt. An open subpath consisting of nothing
// but a MoveTo is replaced.
func (pb *pathBuilder) moveTo(pt Point) {
	if pb.hasOpen() && pb.current().degenerate() {
		pb.current().Segments[0] = Segment{Op: MoveTo, Args: [3]Point{pt}}
		pb.current().Closed = false
		return
	}
	pb.path = append(pb.path, Subpath{
		Segments: []Segment{{Op: MoveTo, Args: [3]Point{pt}}},
	})
	pb.open = true
}

func (pb *pathBuilder) lineTo(pt Point) {
	sp := pb.current()
	sp.Segments = append(sp.Segments, Segment{Op: LineTo, Args: [3]Point{pt}})
}

func (pb *pathBuilder) cubeTo(c1, c2, pt Point) {
	sp := pb.current()
	sp.Segments = append(sp.Segments, Segment{Op: CubeTo, Args: [3]Point{c1, c2, pt}})
}

// close closes the open subpath. It returns false if there is none. Closing a
// subpath consisting of a MoveTo only removes it.
func (pb *pathBuilder) close() bool {
	if !pb.hasOpen() {
		return false
	}
	if pb.current().degenerate() {
		pb.path = pb.path[:len(pb.path)-1]
	} else {
		pb.current().Closed = true
	}
	pb.open = false
	return true
}

// append adds the subpaths of a component glyph. An open subpath which
// consists of a MoveTo only is dropped first.
func (pb *pathBuilder) append(p Path) {
	if pb.hasOpen() && pb.current().degenerate() {
		pb.path = pb.path[:len(pb.path)-1]
	}
	for _, sp := range p {
		pb.path = append(pb.path, Subpath{
			Segments: append([]Segment(nil), sp.Segments...),
			Closed:   sp.Closed,
		})
	}
	pb.open = false
}

// result returns the accumulated path, dropping a trailing subpath which
// consists of a MoveTo only.
func (pb *pathBuilder) result() Path {
	if n := len(pb.path); n > 0 && pb.path[n-1].degenerate() {
		pb.path = pb.path[:n-1]
	}
	return pb.path
}
