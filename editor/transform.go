package editor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ByLCY/imagemark/object"
)

// cropMinSize is the pixel floor for crop extents. The floor is exclusive:
// extents of exactly this size proceed, anything below is silently abandoned.
const cropMinSize = 10.0

// cropTo 将裁剪框归一化后提取该像素区域为新图像，替换当前图像并清空
// 全部对象。低于尺寸下限的裁剪被静默放弃，不产生任何变更。
func (e *Editor) cropTo(o *object.Object) {
	b := o.Bounds(nil)
	if b.W < cropMinSize || b.H < cropMinSize {
		e.render()
		return
	}
	// 活动裁剪框已被丢弃，先重绘使提取内容不含虚线框。
	e.render()
	region, err := e.s.Extract(
		int(math.Round(b.X)), int(math.Round(b.Y)),
		int(math.Round(b.W)), int(math.Round(b.H)),
	)
	if err != nil {
		e.log.Warn().Err(err).Msg("裁剪区域提取失败")
		return
	}
	if err := e.replaceImage(region, true); err != nil {
		e.log.Warn().Err(err).Msg("裁剪后替换图像失败")
	}
}

// Flip mirrors the composited surface across the vertical (Horizontal) or
// horizontal (Vertical) axis, replaces the image, clears all objects and
// commits history.
func (e *Editor) Flip(dir Direction) error {
	if e.destroyed {
		return fmt.Errorf("翻转: 编辑器已销毁")
	}
	e.render()
	src := e.surfacePixels()
	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	var m f64.Aff3
	switch dir {
	case Horizontal:
		m = f64.Aff3{-1, 0, w, 0, 1, 0}
	case Vertical:
		m = f64.Aff3{1, 0, 0, 0, -1, h}
	default:
		return fmt.Errorf("无效的翻转方向 %q", dir)
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	xdraw.NearestNeighbor.Transform(dst, m, src, src.Bounds(), xdraw.Src, nil)
	return e.replaceImage(dst, false)
}

// Rotate turns the composited surface 90° clockwise (Right) or
// counter-clockwise (Left), swapping width and height. The current zoom value
// is preserved.
func (e *Editor) Rotate(dir Direction) error {
	if e.destroyed {
		return fmt.Errorf("旋转: 编辑器已销毁")
	}
	e.render()
	src := e.surfacePixels()
	w := float64(src.Bounds().Dx())
	h := float64(src.Bounds().Dy())
	var m f64.Aff3
	switch dir {
	case Right:
		m = f64.Aff3{0, -1, h, 1, 0, 0}
	case Left:
		m = f64.Aff3{0, 1, 0, -1, 0, w}
	default:
		return fmt.Errorf("无效的旋转方向 %q", dir)
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dy(), src.Bounds().Dx()))
	xdraw.NearestNeighbor.Transform(dst, m, src, src.Bounds(), xdraw.Src, nil)
	return e.replaceImage(dst, false)
}

// surfacePixels returns the surface's current pixels rebased to a zero-origin
// rectangle.
func (e *Editor) surfacePixels() image.Image {
	img := e.s.Image()
	if img == nil {
		w, h := e.s.Size()
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return img
}

// replaceImage installs img as the new session image: encodes it as the new
// history source, clears all objects, resizes the surface and commits. refit
// recomputes the display fit; Rotate keeps the prior zoom value instead.
func (e *Editor) replaceImage(img image.Image, refit bool) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("编码替换图像失败: %w", err)
	}
	e.img = img
	e.imgSrc = buf.Bytes()
	e.objects = nil
	e.active = nil
	e.selected = -1
	e.resetEdit()
	b := img.Bounds()
	e.s.Resize(b.Dx(), b.Dy())
	if refit {
		e.ZoomToFit()
	}
	e.render()
	e.commit()
	return nil
}
