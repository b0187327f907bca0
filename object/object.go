package object

// 本文件定义标注对象模型：按 Kind 区分的标签变体，以及对象在
// 绘制过程中的生长、提交校验与结构化深拷贝。

import (
	"math"
	"strings"
)

// Kind 标识标注对象的种类。
type Kind string

const (
	Freehand  Kind = "freehand"
	Rect      Kind = "rect"
	Circle    Kind = "circle"
	Arrow     Kind = "arrow"
	Text      Kind = "text"
	Highlight Kind = "highlight"
	Crop      Kind = "crop"
)

// Point 为表面像素坐标中的一个点。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style 是创建对象时采用的画笔样式。
type Style struct {
	Color       string
	StrokeWidth float64
	FontSize    float64
}

// Object 表示一个标注对象。
// W/H 是带符号的拖拽增量，符号记录拖拽方向；规范化边界按需计算，从不回写。
type Object struct {
	Kind        Kind
	X, Y        float64 // 锚点；text 为首行基线左端
	W, H        float64 // 带符号增量（freehand/text 不使用）
	Points      []Point // 仅 freehand，插入顺序即绘制顺序
	Text        string  // 仅 text，可含换行
	FontSize    float64 // 仅 text
	Color       string
	StrokeWidth float64

	// ID 是文本对象的稳定翻译标识，首次被读取时由编辑器惰性分配，
	// 只要对象未被重建就保持不变。深拷贝必须显式保留该字段。
	ID string
}

// New 以给定种类、起点与样式构造一个处于“活动”（未提交）状态的对象。
func New(kind Kind, origin Point, st Style) *Object {
	o := &Object{
		Kind:        kind,
		X:           origin.X,
		Y:           origin.Y,
		Color:       st.Color,
		StrokeWidth: st.StrokeWidth,
	}
	switch kind {
	case Freehand:
		o.Points = []Point{origin}
	case Text:
		o.FontSize = st.FontSize
	}
	return o
}

// Grow 在指针移动时更新活动对象的几何：freehand 追加一个点，
// 其余种类自拖拽起点重算带符号增量。
func (o *Object) Grow(p Point) {
	if o.Kind == Freehand {
		o.Points = append(o.Points, p)
		return
	}
	o.W = p.X - o.X
	o.H = p.Y - o.Y
}

// Committable 报告对象是否满足提交条件：freehand 至少两个点，
// text 去除首尾空白后非空，其余要求 |w|>2 或 |h|>2 像素。
func (o *Object) Committable() bool {
	switch o.Kind {
	case Freehand:
		return len(o.Points) >= 2
	case Text:
		return strings.TrimSpace(o.Text) != ""
	default:
		return math.Abs(o.W) > 2 || math.Abs(o.H) > 2
	}
}

// SyncAnchor 将 freehand 的锚点重算为各点包围盒的最小角；
// 其余种类的锚点即拖拽起点，保持不变。
func (o *Object) SyncAnchor() {
	if o.Kind != Freehand || len(o.Points) == 0 {
		return
	}
	o.X, o.Y = o.Points[0].X, o.Points[0].Y
	for _, p := range o.Points[1:] {
		o.X = math.Min(o.X, p.X)
		o.Y = math.Min(o.Y, p.Y)
	}
}

// Lines 将文本内容按换行符拆分，至少返回一行。
func (o *Object) Lines() []string {
	return strings.Split(o.Text, "\n")
}

// Clone 返回对象的结构化深拷贝，包含缓存的稳定标识。
func (o *Object) Clone() *Object {
	c := *o
	if o.Points != nil {
		c.Points = make([]Point, len(o.Points))
		copy(c.Points, o.Points)
	}
	return &c
}

// CloneList 深拷贝整个对象列表。
func CloneList(objs []*Object) []*Object {
	if objs == nil {
		return nil
	}
	out := make([]*Object, len(objs))
	for i, o := range objs {
		out[i] = o.Clone()
	}
	return out
}
