// Package surface 定义编辑器渲染所依赖的抽象栅格绘制表面能力。
// 表面是立即模式的：一帧以 Begin 开始、Flush 结束；Flush 之后
// Image/Extract/Encode 反映最新像素。坐标单位为像素，原点在左上角。
package surface

import (
	"image"

	"github.com/ByLCY/imagemark/object"
)

// Stroke 描述一次描边的样式。颜色为 #RGB/#RRGGBB/#RRGGBBAA 形式。
type Stroke struct {
	Color  string
	Width  float64
	Dashed bool
}

// Surface 是编辑器的绘制表面。渲染是对象模型的确定性重放，
// 因此接口只暴露替换整帧所需的原语，不提供增量修改。
type Surface interface {
	// Size 返回表面像素尺寸。
	Size() (w, h int)
	// Resize 重设表面尺寸并清空内容。
	Resize(w, h int)

	// Begin 开始一帧（清空画面），Flush 将本帧光栅化为像素。
	Begin()
	Flush()

	// DrawImage 在原点按 1:1 像素绘制图像。
	DrawImage(img image.Image)
	StrokeRect(x, y, w, h float64, st Stroke)
	FillRect(x, y, w, h float64, color string, opacity float64)
	StrokeEllipse(cx, cy, rx, ry float64, st Stroke)
	StrokePolyline(pts []object.Point, st Stroke)
	FillPolygon(pts []object.Point, color string)
	// DrawText 以 (x,y) 为基线左端绘制单行文本。
	DrawText(text string, x, y, fontSize float64, color string)

	// TextWidth 返回单行文本的渲染宽度（满足 object.TextMeasurer）。
	TextWidth(text string, fontSize float64) float64

	// Image 返回最近一次 Flush 的像素。
	Image() image.Image
	// Extract 拷贝指定像素区域为新图像。
	Extract(x, y, w, h int) (image.Image, error)
	// Encode 将当前像素编码为 png/jpeg 字节。quality 取 (0,1]，仅 jpeg 使用。
	Encode(format string, quality float64) ([]byte, error)
}
