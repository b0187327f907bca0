package object_test

import (
	"testing"

	"github.com/ByLCY/imagemark/object"
)

func TestNewFreehandGrowAppendsPoints(t *testing.T) {
	o := object.New(object.Freehand, object.Point{X: 1, Y: 2}, object.Style{Color: "#000", StrokeWidth: 2})
	o.Grow(object.Point{X: 3, Y: 4})
	o.Grow(object.Point{X: 5, Y: 6})

	if len(o.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(o.Points))
	}
	if o.Points[0] != (object.Point{X: 1, Y: 2}) {
		t.Fatalf("origin point missing, got %+v", o.Points[0])
	}
	if o.W != 0 || o.H != 0 {
		t.Fatalf("freehand must not use signed deltas, got w=%v h=%v", o.W, o.H)
	}
}

func TestNewShapeGrowUpdatesSignedDeltas(t *testing.T) {
	o := object.New(object.Rect, object.Point{X: 10, Y: 10}, object.Style{})
	o.Grow(object.Point{X: 4, Y: 30})

	if o.W != -6 || o.H != 20 {
		t.Fatalf("expected signed deltas -6,20, got %v,%v", o.W, o.H)
	}
	// 反向再拖拽，增量始终相对起点。
	o.Grow(object.Point{X: 25, Y: 5})
	if o.W != 15 || o.H != -5 {
		t.Fatalf("expected signed deltas 15,-5, got %v,%v", o.W, o.H)
	}
}

func TestCommittable(t *testing.T) {
	free := object.New(object.Freehand, object.Point{}, object.Style{})
	if free.Committable() {
		t.Fatalf("single-point freehand must not be committable")
	}
	free.Grow(object.Point{X: 1, Y: 1})
	if !free.Committable() {
		t.Fatalf("two-point freehand must be committable")
	}

	text := object.New(object.Text, object.Point{}, object.Style{FontSize: 14})
	text.Text = "  \n "
	if text.Committable() {
		t.Fatalf("whitespace-only text must not be committable")
	}
	text.Text = " hi "
	if !text.Committable() {
		t.Fatalf("non-empty text must be committable")
	}

	rect := object.New(object.Rect, object.Point{}, object.Style{})
	rect.Grow(object.Point{X: 2, Y: 2})
	if rect.Committable() {
		t.Fatalf("2x2 rect must not be committable")
	}
	rect.Grow(object.Point{X: -3, Y: 0})
	if !rect.Committable() {
		t.Fatalf("|w|=3 rect must be committable")
	}
}

func TestSyncAnchorFreehand(t *testing.T) {
	o := object.New(object.Freehand, object.Point{X: 10, Y: 20}, object.Style{})
	o.Grow(object.Point{X: 4, Y: 25})
	o.Grow(object.Point{X: 8, Y: 3})
	o.SyncAnchor()

	if o.X != 4 || o.Y != 3 {
		t.Fatalf("expected anchor at bbox min (4,3), got (%v,%v)", o.X, o.Y)
	}
}

func TestLines(t *testing.T) {
	o := object.New(object.Text, object.Point{}, object.Style{FontSize: 12})
	o.Text = "a\nb\nc"
	if got := o.Lines(); len(got) != 3 || got[1] != "b" {
		t.Fatalf("unexpected lines: %v", got)
	}
	o.Text = ""
	if got := o.Lines(); len(got) != 1 {
		t.Fatalf("empty text must yield one line, got %v", got)
	}
}

func TestCloneIsDeepAndKeepsID(t *testing.T) {
	o := object.New(object.Freehand, object.Point{X: 1, Y: 1}, object.Style{Color: "#abc"})
	o.Grow(object.Point{X: 2, Y: 2})
	o.ID = "t7"

	c := o.Clone()
	if c.ID != "t7" {
		t.Fatalf("clone must keep the stable identifier, got %q", c.ID)
	}
	c.Points[0].X = 99
	if o.Points[0].X != 1 {
		t.Fatalf("clone must not share point storage")
	}
}

func TestCloneList(t *testing.T) {
	if object.CloneList(nil) != nil {
		t.Fatalf("nil list must clone to nil")
	}
	objs := []*object.Object{
		object.New(object.Rect, object.Point{X: 1, Y: 2}, object.Style{}),
	}
	cp := object.CloneList(objs)
	cp[0].X = 50
	if objs[0].X != 1 {
		t.Fatalf("clone list must not share objects")
	}
}
