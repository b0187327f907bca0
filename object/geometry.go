package object

import "math"

// This file implements bounding boxes and point containment used by the
// select tool. Containment is deliberately coarse for freehand strokes:
// a hit means the query point is near any stroke vertex, not near the
// stroked curve itself.

// HitTolerance is the fixed pixel radius used by all containment tests.
const HitTolerance = 10.0

// textLineSpacing is the line advance factor for multi-line text boxes.
const textLineSpacing = 1.2

// TextMeasurer reports the rendered width of a single line of text.
// The drawing surface implements this; tests may supply a stub.
type TextMeasurer interface {
	TextWidth(text string, fontSize float64) float64
}

// Bounds is a normalized rectangle: top-left corner plus non-negative extents,
// derived on demand from signed drag deltas.
type Bounds struct {
	X, Y, W, H float64
}

// Expand grows the rectangle by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{X: b.X - d, Y: b.Y - d, W: b.W + 2*d, H: b.H + 2*d}
}

// Contains reports whether p lies inside the rectangle (inclusive).
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Bounds computes the normalized bounds of the object. Freehand bounds are
// the min/max over all points; text bounds start one font size above the
// baseline anchor and extend by lineCount * fontSize * 1.2, with the width
// being the widest rendered line.
func (o *Object) Bounds(m TextMeasurer) Bounds {
	switch o.Kind {
	case Freehand:
		if len(o.Points) == 0 {
			return Bounds{X: o.X, Y: o.Y}
		}
		minX, minY := o.Points[0].X, o.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range o.Points[1:] {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
		return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	case Text:
		lines := o.Lines()
		width := 0.0
		if m != nil {
			for _, line := range lines {
				width = math.Max(width, m.TextWidth(line, o.FontSize))
			}
		}
		return Bounds{
			X: o.X,
			Y: o.Y - o.FontSize,
			W: width,
			H: float64(len(lines)) * o.FontSize * textLineSpacing,
		}
	default:
		b := Bounds{X: o.X, Y: o.Y, W: o.W, H: o.H}
		if b.W < 0 {
			b.X += b.W
			b.W = -b.W
		}
		if b.H < 0 {
			b.Y += b.H
			b.H = -b.H
		}
		return b
	}
}

// Hit reports whether p falls on the object within HitTolerance.
func (o *Object) Hit(p Point, m TextMeasurer) bool {
	switch o.Kind {
	case Freehand:
		for _, q := range o.Points {
			if math.Hypot(p.X-q.X, p.Y-q.Y) <= HitTolerance {
				return true
			}
		}
		return false
	case Arrow:
		a := Point{X: o.X, Y: o.Y}
		b := Point{X: o.X + o.W, Y: o.Y + o.H}
		return SegmentDistance(p, a, b) <= HitTolerance
	case Text:
		return o.Bounds(m).Contains(p)
	default:
		return o.Bounds(m).Expand(HitTolerance).Contains(p)
	}
}

// SegmentDistance returns the distance from p to the segment ab, using the
// projection parameter clamped to [0,1].
func SegmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// FindAt returns the index of the topmost object containing p, testing the
// list in reverse insertion order, or -1 when nothing is hit.
func FindAt(objs []*Object, p Point, m TextMeasurer) int {
	for i := len(objs) - 1; i >= 0; i-- {
		if objs[i].Hit(p, m) {
			return i
		}
	}
	return -1
}
