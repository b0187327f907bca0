package editor

import "math"

// 缩放级别的取值范围与步进。
const (
	zoomMin  = 0.1
	zoomMax  = 5.0
	zoomStep = 0.25
)

func clampZoom(v float64) float64 {
	return math.Max(zoomMin, math.Min(zoomMax, v))
}

// SetZoom clamps v to [0.1, 5.0] and installs it. The zoom-change callback
// fires only when the clamped value actually differs from the prior level.
func (e *Editor) SetZoom(v float64) {
	v = clampZoom(v)
	if v == e.zoom {
		return
	}
	e.zoom = v
	if e.zoomCB != nil {
		e.zoomCB(v)
	}
}

// Zoom returns the current zoom level.
func (e *Editor) Zoom() float64 {
	return e.zoom
}

// ZoomIn steps the level up by 0.25.
func (e *Editor) ZoomIn() {
	e.SetZoom(e.zoom + zoomStep)
}

// ZoomOut steps the level down by 0.25.
func (e *Editor) ZoomOut() {
	e.SetZoom(e.zoom - zoomStep)
}

// ZoomToFit picks the largest level ≤1 at which the surface fits the
// container in both dimensions. Without a container or surface size it falls
// back to 1.0.
func (e *Editor) ZoomToFit() {
	w, h := e.s.Size()
	if w <= 0 || h <= 0 || e.containerW <= 0 || e.containerH <= 0 {
		e.SetZoom(1.0)
		return
	}
	fit := math.Min(1.0, math.Min(
		float64(e.containerW)/float64(w),
		float64(e.containerH)/float64(h),
	))
	e.SetZoom(fit)
}

// ResetZoom sets the level back to 1.0.
func (e *Editor) ResetZoom() {
	e.SetZoom(1.0)
}

// OnZoomChange registers the single zoom-change callback; it receives the new
// level after every effective change.
func (e *Editor) OnZoomChange(fn func(level float64)) {
	e.zoomCB = fn
}

// SetContainerSize records the display container dimensions used by
// ZoomToFit.
func (e *Editor) SetContainerSize(w, h int) {
	e.containerW, e.containerH = w, h
}
