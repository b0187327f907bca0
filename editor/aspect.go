package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ratio is a crop aspect-ratio constraint expressed as width:height.
type Ratio struct {
	W, H float64
}

// Apply re-projects free drag deltas onto the ratio. The dominant dimension
// (the one whose constrained counterpart would be larger) drives the other;
// the sign of each delta is preserved.
func (r Ratio) Apply(dx, dy float64) (float64, float64) {
	ratio := r.W / r.H
	if math.Abs(dx)/ratio > math.Abs(dy) {
		dy = signOf(dy) * math.Abs(dx) / ratio
	} else {
		dx = signOf(dx) * math.Abs(dy) * ratio
	}
	return dx, dy
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// ParseRatio interprets an aspect-ratio spec: "" / "free" lift the
// constraint (nil), "square" and "1:1" are equivalent, and "W:H" or "WxH"
// strings carry explicit positive dimensions.
func ParseRatio(spec string) (*Ratio, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	switch s {
	case "", "free", "null":
		return nil, nil
	case "square":
		return &Ratio{W: 1, H: 1}, nil
	}
	sep := ":"
	if !strings.Contains(s, sep) {
		sep = "x"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return nil, fmt.Errorf("无法解析宽高比 %q", spec)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("无法解析宽高比 %q: %w", spec, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("无法解析宽高比 %q: %w", spec, err)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("宽高比 %q 必须为正", spec)
	}
	return &Ratio{W: w, H: h}, nil
}

// SetCropAspectRatio parses and installs a crop constraint; "free" or the
// empty string lift it.
func (e *Editor) SetCropAspectRatio(spec string) error {
	r, err := ParseRatio(spec)
	if err != nil {
		return err
	}
	e.cropRatio = r
	return nil
}

// SetCropAspectRatioWH installs an explicit width:height constraint.
// Non-positive dimensions lift the constraint.
func (e *Editor) SetCropAspectRatioWH(w, h float64) {
	if w <= 0 || h <= 0 {
		e.cropRatio = nil
		return
	}
	e.cropRatio = &Ratio{W: w, H: h}
}

// CropAspectRatio reports the active constraint as "W:H", or "free" when
// unconstrained.
func (e *Editor) CropAspectRatio() string {
	if e.cropRatio == nil {
		return "free"
	}
	return strconv.FormatFloat(e.cropRatio.W, 'g', -1, 64) + ":" +
		strconv.FormatFloat(e.cropRatio.H, 'g', -1, 64)
}
