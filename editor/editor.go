// Package editor wires the annotation object model, the history stack and an
// injected drawing surface into an interactive raster image editor. All entry
// points are single-threaded and event-driven: the host feeds pointer and key
// events in, the editor mutates the object model and replays it onto the
// surface.
package editor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/imagemark/history"
	"github.com/ByLCY/imagemark/object"
	"github.com/ByLCY/imagemark/surface"
)

// Tool 标识当前激活的编辑工具。
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolCrop      Tool = "crop"
	ToolPencil    Tool = "pencil"
	ToolArrow     Tool = "arrow"
	ToolRect      Tool = "rect"
	ToolCircle    Tool = "circle"
	ToolText      Tool = "text"
	ToolHighlight Tool = "highlight"
)

// Direction names an axis for Flip ("horizontal"/"vertical") or a turn for
// Rotate ("left"/"right").
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Left       Direction = "left"
	Right      Direction = "right"
)

// Options configures a new editor. Zero values fall back to the defaults
// below.
type Options struct {
	StrokeColor     string  // 默认 #ff0000
	StrokeWidth     float64 // 默认 2
	FontSize        float64 // 默认 14
	FontFamily      string
	ContainerWidth  int
	ContainerHeight int
	Logger          *zerolog.Logger
}

const (
	defaultStrokeColor = "#ff0000"
	defaultStrokeWidth = 2.0
	defaultFontSize    = 14.0
)

// Editor holds the live editing session. The selected object is tracked as an
// index into the object list rather than a pointer, so history snapshots can
// deep-copy the list without leaving dangling references behind.
type Editor struct {
	s   surface.Surface
	ov  Overlay
	log zerolog.Logger

	tool        Tool
	color       string
	strokeWidth float64
	fontSize    float64
	fontFamily  string

	objects  []*object.Object
	active   *object.Object
	selected int // -1 表示无选中

	drawing  bool
	editing  bool
	dragging bool
	// blankIndex marks the text object hidden while its inline edit overlay
	// is open, so the surface does not double-render the text.
	blankIndex int
	dragOff    object.Point
	dragPts    []object.Point

	img    image.Image
	imgSrc []byte

	hist      *history.Stack
	cropRatio *Ratio

	zoom       float64
	zoomCB     func(float64)
	containerW int
	containerH int

	// editSeq 标记当前内联编辑会话；对象列表被整体替换时递增，
	// 使迟到的覆盖层确认失效。
	editSeq int

	idSeq        int
	translations map[string]map[string]string

	destroyed bool
}

// New constructs an editor over the given surface and overlay capabilities.
// ov may be nil, in which case the text tool and inline editing are disabled.
func New(s surface.Surface, ov Overlay, opts Options) *Editor {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	e := &Editor{
		s:            s,
		ov:           ov,
		log:          log,
		tool:         ToolSelect,
		color:        opts.StrokeColor,
		strokeWidth:  opts.StrokeWidth,
		fontSize:     opts.FontSize,
		fontFamily:   opts.FontFamily,
		selected:     -1,
		blankIndex:   -1,
		hist:         history.New(),
		zoom:         1.0,
		containerW:   opts.ContainerWidth,
		containerH:   opts.ContainerHeight,
		translations: make(map[string]map[string]string),
	}
	if e.color == "" {
		e.color = defaultStrokeColor
	}
	if e.strokeWidth <= 0 {
		e.strokeWidth = defaultStrokeWidth
	}
	if e.fontSize <= 0 {
		e.fontSize = defaultFontSize
	}
	return e
}

// LoadImage decodes data, replaces the session image, clears all annotation
// objects, resizes the surface to the image and records the initial history
// entry. Supported formats are PNG, JPEG, GIF, BMP and WebP.
func (e *Editor) LoadImage(data []byte) error {
	if e.destroyed {
		return fmt.Errorf("加载图像: 编辑器已销毁")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("解码图像失败: %w", err)
	}
	e.img = img
	e.imgSrc = append([]byte(nil), data...)
	e.objects = nil
	e.active = nil
	e.selected = -1
	e.drawing, e.dragging = false, false
	e.resetEdit()
	b := img.Bounds()
	e.s.Resize(b.Dx(), b.Dy())
	e.ZoomToFit()
	e.render()
	e.commit()
	return nil
}

// SetTool switches the active tool, clearing the current selection and any
// in-progress drawing.
func (e *Editor) SetTool(t Tool) error {
	switch t {
	case ToolSelect, ToolCrop, ToolPencil, ToolArrow, ToolRect, ToolCircle, ToolText, ToolHighlight:
	default:
		return fmt.Errorf("未知工具 %q", t)
	}
	e.tool = t
	e.selected = -1
	e.active = nil
	e.drawing, e.dragging = false, false
	e.render()
	return nil
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	return e.tool
}

// SetColor sets the stroke/fill color used for newly created objects.
func (e *Editor) SetColor(c string) {
	if c != "" {
		e.color = c
	}
}

// SetStrokeWidth sets the stroke width used for newly created objects.
func (e *Editor) SetStrokeWidth(w float64) {
	if w > 0 {
		e.strokeWidth = w
	}
}

// SetFontSize sets the font size used for newly created text objects.
func (e *Editor) SetFontSize(v float64) {
	if v > 0 {
		e.fontSize = v
	}
}

// ImageSize returns the current surface pixel dimensions.
func (e *Editor) ImageSize() (w, h int) {
	return e.s.Size()
}

func (e *Editor) style() object.Style {
	return object.Style{
		Color:       e.color,
		StrokeWidth: e.strokeWidth,
		FontSize:    e.fontSize,
	}
}

// resetEdit 作废进行中的内联文本编辑。对象列表被整体替换（加载、
// 历史恢复、变换）后，原编辑目标已不在现场，迟到的确认必须被丢弃。
func (e *Editor) resetEdit() {
	e.editing = false
	e.blankIndex = -1
	e.editSeq++
}

// commit 深拷贝当前对象列表并连同图像编码源、表面尺寸写入历史栈。
func (e *Editor) commit() {
	w, h := e.s.Size()
	e.hist.Push(e.objects, e.imgSrc, w, h)
}

// restore replaces live state with a deep copy of the entry. A failing image
// decode is absorbed: the stored dimensions still apply and rendering
// proceeds without the image.
func (e *Editor) restore(en *history.Entry) {
	e.objects = object.CloneList(en.Objects)
	e.active = nil
	e.selected = -1
	e.drawing, e.dragging = false, false
	e.resetEdit()
	e.imgSrc = append([]byte(nil), en.Image...)
	img, _, err := image.Decode(bytes.NewReader(en.Image))
	if err != nil {
		e.log.Warn().Err(err).Msg("恢复历史条目时图像解码失败，继续以空图像渲染")
		e.img = nil
	} else {
		e.img = img
	}
	e.s.Resize(en.Width, en.Height)
	e.ZoomToFit()
	e.render()
}

// Undo moves one history entry back; no-op at the first entry.
func (e *Editor) Undo() {
	if e.destroyed {
		return
	}
	if en, ok := e.hist.Undo(); ok {
		e.restore(en)
	}
}

// Redo moves one history entry forward; no-op at the last entry.
func (e *Editor) Redo() {
	if e.destroyed {
		return
	}
	if en, ok := e.hist.Redo(); ok {
		e.restore(en)
	}
}

// CanUndo reports whether Undo would change state.
func (e *Editor) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo reports whether Redo would change state.
func (e *Editor) CanRedo() bool {
	return e.hist.CanRedo()
}

// Destroy releases session state. Subsequent operations are no-ops or return
// errors.
func (e *Editor) Destroy() {
	e.destroyed = true
	e.resetEdit()
	e.objects = nil
	e.active = nil
	e.selected = -1
	e.img = nil
	e.imgSrc = nil
	e.hist = history.New()
	e.translations = make(map[string]map[string]string)
	e.zoomCB = nil
}
