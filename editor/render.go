package editor

import (
	"math"

	"github.com/ByLCY/imagemark/object"
	"github.com/ByLCY/imagemark/surface"
)

// highlightOpacity is the alpha used when compositing highlight fills.
const highlightOpacity = 0.35

// Arrow heads scale with the stroke width but never shrink below a legible
// minimum.
const (
	arrowHeadMinLen = 12.0
	arrowHeadScale  = 5.0
)

// render replays the object model onto the surface: background image first,
// then committed objects in insertion order, then the active object on top.
func (e *Editor) render() {
	e.s.Begin()
	if e.img != nil {
		e.s.DrawImage(e.img)
	}
	for i, o := range e.objects {
		if i == e.blankIndex {
			continue
		}
		e.drawObject(o)
	}
	if e.active != nil {
		e.drawObject(e.active)
	}
	e.s.Flush()
}

func (e *Editor) drawObject(o *object.Object) {
	st := surface.Stroke{Color: o.Color, Width: o.StrokeWidth}
	switch o.Kind {
	case object.Freehand:
		e.s.StrokePolyline(o.Points, st)
	case object.Rect:
		b := o.Bounds(e.s)
		e.s.StrokeRect(b.X, b.Y, b.W, b.H, st)
	case object.Circle:
		b := o.Bounds(e.s)
		e.s.StrokeEllipse(b.X+b.W/2, b.Y+b.H/2, b.W/2, b.H/2, st)
	case object.Arrow:
		e.drawArrow(o)
	case object.Text:
		for i, line := range o.Lines() {
			y := o.Y + float64(i)*o.FontSize*1.2
			e.s.DrawText(line, o.X, y, o.FontSize, o.Color)
		}
	case object.Highlight:
		b := o.Bounds(e.s)
		e.s.FillRect(b.X, b.Y, b.W, b.H, o.Color, highlightOpacity)
	case object.Crop:
		// 裁剪框以虚线绘制，仅在拖拽期间可见。
		b := o.Bounds(e.s)
		e.s.StrokeRect(b.X, b.Y, b.W, b.H, surface.Stroke{Color: o.Color, Width: 1, Dashed: true})
	}
}

// drawArrow strokes the shaft up to the head base and fills the head as a
// triangle pointing at the drag end.
func (e *Editor) drawArrow(o *object.Object) {
	from := object.Point{X: o.X, Y: o.Y}
	tip := object.Point{X: o.X + o.W, Y: o.Y + o.H}
	length := math.Hypot(o.W, o.H)
	if length == 0 {
		return
	}
	headLen := math.Max(o.StrokeWidth*arrowHeadScale, arrowHeadMinLen)
	if headLen > length {
		headLen = length
	}
	ux, uy := o.W/length, o.H/length
	base := object.Point{X: tip.X - ux*headLen, Y: tip.Y - uy*headLen}
	wing := headLen * 0.5
	left := object.Point{X: base.X - uy*wing, Y: base.Y + ux*wing}
	right := object.Point{X: base.X + uy*wing, Y: base.Y - ux*wing}

	st := surface.Stroke{Color: o.Color, Width: o.StrokeWidth}
	e.s.StrokePolyline([]object.Point{from, base}, st)
	e.s.FillPolygon([]object.Point{tip, left, right}, o.Color)
}
