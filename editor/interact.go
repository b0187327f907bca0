package editor

import (
	"strings"

	"github.com/ByLCY/imagemark/object"
)

// OverlayRequest positions and styles the inline text input, in display
// coordinates (surface coordinates scaled by the current zoom level).
type OverlayRequest struct {
	X, Y       float64
	Text       string
	FontSize   float64
	FontFamily string
	Color      string
}

// Overlay is the host-provided inline text input capability. Open shows the
// input and must invoke done exactly once. ok=false means the edit was
// cancelled (Escape, or losing focus with empty content); losing focus with
// non-empty content is a confirm.
type Overlay interface {
	Open(req OverlayRequest, done func(text string, ok bool))
}

func kindFor(t Tool) object.Kind {
	switch t {
	case ToolPencil:
		return object.Freehand
	case ToolArrow:
		return object.Arrow
	case ToolRect:
		return object.Rect
	case ToolCircle:
		return object.Circle
	case ToolHighlight:
		return object.Highlight
	case ToolCrop:
		return object.Crop
	default:
		return ""
	}
}

// PointerDown starts a drag: hit-testing and grab offsets for the select
// tool, an inline text input for the text tool, a new active object for the
// drawing tools. Ignored while an inline edit is open.
func (e *Editor) PointerDown(x, y float64) {
	if e.destroyed || e.editing {
		return
	}
	p := object.Point{X: x, Y: y}
	switch e.tool {
	case ToolSelect:
		idx := object.FindAt(e.objects, p, e.s)
		e.selected = idx
		if idx < 0 {
			return
		}
		o := e.objects[idx]
		e.dragging = true
		if o.Kind == object.Freehand {
			e.dragPts = make([]object.Point, len(o.Points))
			for i, pt := range o.Points {
				e.dragPts[i] = object.Point{X: pt.X - p.X, Y: pt.Y - p.Y}
			}
		} else {
			e.dragOff = object.Point{X: o.X - p.X, Y: o.Y - p.Y}
		}
	case ToolText:
		e.openTextInput(p)
	default:
		kind := kindFor(e.tool)
		if kind == "" {
			return
		}
		e.active = object.New(kind, p, e.style())
		e.drawing = true
	}
}

// PointerMove grows the active object or drags the selected one. A crop drag
// with an aspect-ratio constraint re-projects the free deltas onto the
// constrained ratio.
func (e *Editor) PointerMove(x, y float64) {
	if e.destroyed || e.editing {
		return
	}
	p := object.Point{X: x, Y: y}
	switch {
	case e.dragging && e.selected >= 0:
		o := e.objects[e.selected]
		if o.Kind == object.Freehand {
			for i := range o.Points {
				o.Points[i] = object.Point{X: p.X + e.dragPts[i].X, Y: p.Y + e.dragPts[i].Y}
			}
			o.SyncAnchor()
		} else {
			o.X = p.X + e.dragOff.X
			o.Y = p.Y + e.dragOff.Y
		}
		e.render()
	case e.drawing && e.active != nil:
		e.active.Grow(p)
		if e.active.Kind == object.Crop && e.cropRatio != nil {
			e.active.W, e.active.H = e.cropRatio.Apply(e.active.W, e.active.H)
		}
		e.render()
	}
}

// PointerUp ends a drag. A move commits a history entry; a finished drawing
// commits the object if valid; a finished crop marquee is always discarded
// and handed to the crop operation instead.
func (e *Editor) PointerUp(x, y float64) {
	if e.destroyed || e.editing {
		return
	}
	switch {
	case e.dragging:
		e.dragging = false
		e.dragPts = nil
		e.commit()
	case e.drawing:
		e.drawing = false
		a := e.active
		e.active = nil
		if a == nil {
			return
		}
		if a.Kind == object.Crop {
			e.cropTo(a)
			return
		}
		if !a.Committable() {
			e.render()
			return
		}
		a.SyncAnchor()
		e.objects = append(e.objects, a)
		e.render()
		e.commit()
	}
}

// DoubleClick opens an inline edit when the select tool hits a text object.
// Double-click detection itself belongs to the host environment.
func (e *Editor) DoubleClick(x, y float64) {
	if e.destroyed || e.editing || e.tool != ToolSelect {
		return
	}
	idx := object.FindAt(e.objects, object.Point{X: x, Y: y}, e.s)
	if idx < 0 || e.objects[idx].Kind != object.Text {
		return
	}
	e.dragging = false
	e.beginTextEdit(idx)
}

// KeyDown handles Delete/Backspace (remove selection) and Escape (abort an
// in-progress drawing). Keys during an inline edit go to the overlay, not
// here.
func (e *Editor) KeyDown(key string) {
	if e.destroyed || e.editing {
		return
	}
	switch key {
	case "Delete", "Backspace":
		if e.selected < 0 || e.selected >= len(e.objects) {
			return
		}
		e.objects = append(e.objects[:e.selected], e.objects[e.selected+1:]...)
		e.selected = -1
		// 拖拽中删除：对象已不在，随后的抬起不得再次提交。
		e.dragging = false
		e.dragPts = nil
		e.render()
		e.commit()
	case "Escape":
		if e.drawing {
			e.drawing = false
			e.active = nil
			e.render()
		}
	}
}

// openTextInput 在点击处打开空白文本输入；确认后提交一个新文本对象。
func (e *Editor) openTextInput(p object.Point) {
	if e.ov == nil {
		return
	}
	e.editing = true
	e.editSeq++
	seq := e.editSeq
	req := OverlayRequest{
		X:          p.X * e.zoom,
		Y:          p.Y * e.zoom,
		FontSize:   e.fontSize,
		FontFamily: e.fontFamily,
		Color:      e.color,
	}
	e.ov.Open(req, func(text string, ok bool) {
		if seq != e.editSeq || !e.editing {
			return
		}
		e.editing = false
		if !ok || strings.TrimSpace(text) == "" {
			return
		}
		o := object.New(object.Text, p, e.style())
		o.Text = text
		e.objects = append(e.objects, o)
		e.render()
		e.commit()
	})
}

// beginTextEdit 打开预填充的覆盖层编辑既有文本对象；编辑期间对象在
// 表面上被隐藏。仅当文本确实变化时才提交历史。
func (e *Editor) beginTextEdit(idx int) {
	if e.ov == nil {
		return
	}
	o := e.objects[idx]
	original := o.Text
	e.editing = true
	e.blankIndex = idx
	e.editSeq++
	seq := e.editSeq
	e.render()
	req := OverlayRequest{
		X:          o.X * e.zoom,
		Y:          o.Y * e.zoom,
		Text:       original,
		FontSize:   o.FontSize,
		FontFamily: e.fontFamily,
		Color:      o.Color,
	}
	e.ov.Open(req, func(text string, ok bool) {
		// 对象列表在编辑期间被整体替换（撤销、变换、重新加载）时，
		// 本次编辑已失去目标，迟到的确认被丢弃。
		if seq != e.editSeq || !e.editing {
			return
		}
		e.editing = false
		e.blankIndex = -1
		if !ok || strings.TrimSpace(text) == "" || text == original {
			e.render()
			return
		}
		// 按下标在确认时重新解析，不跨越快照持有指针。
		e.objects[idx].Text = text
		e.render()
		e.commit()
	})
}
