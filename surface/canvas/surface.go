// Package canvassurface 基于 github.com/tdewolff/canvas 实现 surface.Surface。
// 画布以 1 毫米 = 1 像素建立，光栅化分辨率取 1 dpmm，使画布坐标与
// 表面像素一一对应。
package canvassurface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/imagemark/object"
	"github.com/ByLCY/imagemark/surface"
)

// canvas 的字体面尺寸以 pt 计，而本表面的字号以 px 计；
// 在 1px == 1mm 的映射下按 mm→pt 换算。
const ptPerPx = 72.0 / 25.4

// 无可用字体时按每字符 0.6 倍字号估算宽度。
const approxCharWidth = 0.6

// Surface 是画布表面。并发安全性与 editor 一致：单线程事件驱动。
type Surface struct {
	w, h int
	buf  *image.RGBA

	c   *canvas.Canvas
	ctx *canvas.Context

	fontMu  sync.Mutex
	family  *canvas.FontFamily
	fontErr error
}

var _ surface.Surface = (*Surface)(nil)

// Options 配置画布表面。
type Options struct {
	// FontFamily 为系统字体名；为空或加载失败时依次尝试常见无衬线字体。
	FontFamily string
}

// New 创建给定像素尺寸的画布表面。找不到任何系统字体时表面仍然可用，
// 文本绘制被跳过、宽度度量退化为近似值。
func New(w, h int, opts Options) *Surface {
	s := &Surface{w: w, h: h}
	s.loadFont(opts.FontFamily)
	s.Begin()
	s.Flush()
	return s
}

func (s *Surface) loadFont(name string) {
	family := canvas.NewFontFamily("imagemark")
	candidates := []string{name, "DejaVu Sans", "Liberation Sans", "Arial", "Helvetica", "sans-serif"}
	var lastErr error
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		if err := family.LoadSystemFont(cand, canvas.FontRegular); err != nil {
			lastErr = err
			continue
		}
		s.family = family
		return
	}
	s.fontErr = fmt.Errorf("未能加载任何系统字体: %w", lastErr)
}

// FontAvailable 报告是否加载到了可用字体。
func (s *Surface) FontAvailable() bool {
	return s.family != nil
}

// FontError 返回字体加载失败的原因；加载成功时为 nil。
func (s *Surface) FontError() error {
	return s.fontErr
}

// Size 返回表面像素尺寸。
func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

// Resize 重设尺寸并清空内容。
func (s *Surface) Resize(w, h int) {
	s.w, s.h = w, h
	s.Begin()
	s.Flush()
}

// Begin 开始新的一帧。
func (s *Surface) Begin() {
	s.c = canvas.New(float64(s.w), float64(s.h))
	s.ctx = canvas.NewContext(s.c)
	s.ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与表面像素坐标一致
}

// Flush 将本帧光栅化为像素。
func (s *Surface) Flush() {
	s.buf = rasterizer.Draw(s.c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
}

// DrawImage 在原点按 1:1 像素绘制图像。
func (s *Surface) DrawImage(img image.Image) {
	s.ctx.DrawImage(0, 0, img, canvas.DPMM(1.0))
}

func (s *Surface) applyStroke(st surface.Stroke) {
	s.ctx.SetFillColor(canvas.Transparent)
	s.ctx.SetStrokeColor(parseColor(st.Color))
	s.ctx.SetStrokeWidth(st.Width)
	if st.Dashed {
		s.ctx.SetDashes(0.0, 4.0, 4.0)
	} else {
		s.ctx.SetDashes(0.0)
	}
}

// StrokeRect 描边矩形。
func (s *Surface) StrokeRect(x, y, w, h float64, st surface.Stroke) {
	s.applyStroke(st)
	s.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// FillRect 以给定不透明度填充矩形（用于高亮等半透明合成）。
func (s *Surface) FillRect(x, y, w, h float64, col string, opacity float64) {
	s.ctx.SetStrokeColor(canvas.Transparent)
	s.ctx.SetDashes(0.0)
	s.ctx.SetFillColor(withOpacity(parseColor(col), opacity))
	s.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// StrokeEllipse 以中心与半径描边椭圆。
func (s *Surface) StrokeEllipse(cx, cy, rx, ry float64, st surface.Stroke) {
	s.applyStroke(st)
	s.ctx.DrawPath(cx-rx, cy-ry, canvas.Ellipse(rx, ry))
}

// StrokePolyline 描边折线，圆头端点与圆角连接。
func (s *Surface) StrokePolyline(pts []object.Point, st surface.Stroke) {
	if len(pts) < 2 {
		return
	}
	s.applyStroke(st)
	s.ctx.SetStrokeCapper(canvas.RoundCap)
	s.ctx.SetStrokeJoiner(canvas.RoundJoin)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X-pts[0].X, pt.Y-pts[0].Y)
	}
	s.ctx.DrawPath(pts[0].X, pts[0].Y, p)
}

// FillPolygon 填充闭合多边形（箭头头部等）。
func (s *Surface) FillPolygon(pts []object.Point, col string) {
	if len(pts) < 3 {
		return
	}
	s.ctx.SetStrokeColor(canvas.Transparent)
	s.ctx.SetDashes(0.0)
	s.ctx.SetFillColor(parseColor(col))
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X-pts[0].X, pt.Y-pts[0].Y)
	}
	p.Close()
	s.ctx.DrawPath(pts[0].X, pts[0].Y, p)
}

// DrawText 以 (x,y) 为基线左端绘制单行文本。无可用字体时跳过。
func (s *Surface) DrawText(text string, x, y, fontSize float64, col string) {
	face := s.face(fontSize, parseColor(col))
	if face == nil {
		return
	}
	line := canvas.NewTextLine(face, text, canvas.Left)
	s.ctx.DrawText(x, y, line)
}

// TextWidth 返回单行文本的渲染宽度（px）。
func (s *Surface) TextWidth(text string, fontSize float64) float64 {
	face := s.face(fontSize, canvas.Black)
	if face == nil {
		return float64(len([]rune(text))) * fontSize * approxCharWidth
	}
	return face.TextWidth(text)
}

func (s *Surface) face(fontSize float64, col color.Color) *canvas.FontFace {
	s.fontMu.Lock()
	defer s.fontMu.Unlock()
	if s.family == nil {
		return nil
	}
	return s.family.Face(fontSize*ptPerPx, col, canvas.FontRegular, canvas.FontNormal)
}

// Image 返回最近一次 Flush 的像素。
func (s *Surface) Image() image.Image {
	return s.buf
}

// Extract 拷贝指定像素区域为新图像。
func (s *Surface) Extract(x, y, w, h int) (image.Image, error) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.buf.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("提取区域 (%d,%d %dx%d) 超出表面范围", x, y, w, h)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), s.buf, r.Min, draw.Src)
	return out, nil
}

// Encode 将当前像素编码为 png/jpeg 字节。
func (s *Surface) Encode(format string, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "", "png", "image/png":
		if err := png.Encode(&buf, s.buf); err != nil {
			return nil, fmt.Errorf("编码 PNG 失败: %w", err)
		}
	case "jpg", "jpeg", "image/jpeg":
		q := int(quality * 100)
		if q <= 0 {
			q = 92
		}
		if q > 100 {
			q = 100
		}
		if err := jpeg.Encode(&buf, s.buf, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("编码 JPEG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的导出格式 %q", format)
	}
	return buf.Bytes(), nil
}

func parseColor(s string) color.RGBA {
	if !strings.HasPrefix(s, "#") {
		return canvas.Black
	}
	return canvas.Hex(s)
}

// withOpacity 对预乘色整体缩放 alpha。
func withOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}
