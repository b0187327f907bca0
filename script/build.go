package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/imagemark/object"
)

// Defaults 提供命令未显式指定时采用的样式。
type Defaults struct {
	Color       string
	StrokeWidth float64
	FontSize    float64
}

// Objects 解析脚本并构造标注对象列表。文本命令的内容先经 ${path}
// 插值再写入对象。任何一条命令非法都会使整个脚本失败。
func Objects(src string, data any, d Defaults) ([]*object.Object, error) {
	sc, err := ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("解析标注脚本失败: %w", err)
	}
	out := make([]*object.Object, 0, len(sc.Commands))
	for _, cmd := range sc.Commands {
		o, err := buildCommand(cmd, data, d)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// args 是解释阶段累积的命令参数。
type args struct {
	pairs []object.Point
	size  *object.Point // 以 Point 承载 宽x高
	color string
	width float64
	fsize float64
}

func buildCommand(cmd *Command, data any, d Defaults) (*object.Object, error) {
	a, err := interpretArgs(cmd, d)
	if err != nil {
		return nil, err
	}
	st := object.Style{Color: a.color, StrokeWidth: a.width, FontSize: a.fsize}

	fail := func(format string, v ...any) error {
		msg := fmt.Sprintf(format, v...)
		return fmt.Errorf("第 %d 行 %s 命令: %s", cmd.Pos.Line, cmd.Name, msg)
	}

	switch cmd.Name {
	case "pencil":
		if len(a.pairs) < 2 {
			return nil, fail("至少需要两个坐标点")
		}
		o := object.New(object.Freehand, a.pairs[0], st)
		o.Points = append([]object.Point(nil), a.pairs...)
		o.SyncAnchor()
		return o, nil
	case "rect", "circle", "highlight":
		if len(a.pairs) != 1 || a.size == nil {
			return nil, fail("需要一个起点坐标与一个 宽x高")
		}
		kind := object.Rect
		if cmd.Name == "circle" {
			kind = object.Circle
		} else if cmd.Name == "highlight" {
			kind = object.Highlight
		}
		o := object.New(kind, a.pairs[0], st)
		o.W, o.H = a.size.X, a.size.Y
		return o, nil
	case "arrow":
		if len(a.pairs) != 2 {
			return nil, fail("需要起点与终点两个坐标")
		}
		o := object.New(object.Arrow, a.pairs[0], st)
		o.W = a.pairs[1].X - a.pairs[0].X
		o.H = a.pairs[1].Y - a.pairs[0].Y
		return o, nil
	case "text":
		if len(a.pairs) != 1 {
			return nil, fail("需要一个基线坐标")
		}
		if cmd.Body == nil {
			return nil, fail("缺少 { \"...\" } 文本体")
		}
		o := object.New(object.Text, a.pairs[0], st)
		o.Text = Interpolate(string(*cmd.Body), data)
		if strings.TrimSpace(o.Text) == "" {
			return nil, fail("插值后的文本为空")
		}
		return o, nil
	default:
		return nil, fmt.Errorf("第 %d 行: 未知命令 %q", cmd.Pos.Line, cmd.Name)
	}
}

func interpretArgs(cmd *Command, d Defaults) (*args, error) {
	a := &args{color: d.Color, width: d.StrokeWidth, fsize: d.FontSize}
	list := cmd.Args
	for i := 0; i < len(list); i++ {
		arg := list[i]
		switch {
		case arg.Pair != nil:
			p, err := parsePair(*arg.Pair)
			if err != nil {
				return nil, fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
			}
			a.pairs = append(a.pairs, p)
		case arg.Size != nil:
			p, err := parseSize(*arg.Size)
			if err != nil {
				return nil, fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
			}
			a.size = &p
		case arg.Color != nil:
			a.color = *arg.Color
		case arg.Word != nil:
			switch *arg.Word {
			case "color":
				// color 关键字后必须跟颜色词素；该形式与裸颜色等价。
				next, err := nextArg(cmd, list, &i)
				if err != nil {
					return nil, err
				}
				if next.Color == nil {
					return nil, fmt.Errorf("第 %d 行: color 后应为 #RRGGBB 颜色", cmd.Pos.Line)
				}
				a.color = *next.Color
			case "width":
				v, err := nextNumber(cmd, list, &i)
				if err != nil {
					return nil, err
				}
				a.width = v
			case "size":
				v, err := nextNumber(cmd, list, &i)
				if err != nil {
					return nil, err
				}
				a.fsize = v
			default:
				return nil, fmt.Errorf("第 %d 行: 未知关键字 %q", cmd.Pos.Line, *arg.Word)
			}
		case arg.Number != nil:
			return nil, fmt.Errorf("第 %d 行: 游离的数值 %s，数值需跟在 width/size 之后", cmd.Pos.Line, *arg.Number)
		}
	}
	return a, nil
}

func nextArg(cmd *Command, list []*Arg, i *int) (*Arg, error) {
	*i++
	if *i >= len(list) {
		return nil, fmt.Errorf("第 %d 行: 关键字后缺少参数", cmd.Pos.Line)
	}
	return list[*i], nil
}

func nextNumber(cmd *Command, list []*Arg, i *int) (float64, error) {
	next, err := nextArg(cmd, list, i)
	if err != nil {
		return 0, err
	}
	if next.Number == nil {
		return 0, fmt.Errorf("第 %d 行: 关键字后应为数值", cmd.Pos.Line)
	}
	v, err := strconv.ParseFloat(*next.Number, 64)
	if err != nil {
		return 0, fmt.Errorf("第 %d 行: 非法数值 %q: %w", cmd.Pos.Line, *next.Number, err)
	}
	return v, nil
}

func parsePair(raw string) (object.Point, error) {
	parts := strings.SplitN(raw, ",", 2)
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return object.Point{}, fmt.Errorf("非法坐标 %q: %w", raw, err)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return object.Point{}, fmt.Errorf("非法坐标 %q: %w", raw, err)
	}
	return object.Point{X: x, Y: y}, nil
}

func parseSize(raw string) (object.Point, error) {
	parts := strings.SplitN(raw, "x", 2)
	w, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return object.Point{}, fmt.Errorf("非法尺寸 %q: %w", raw, err)
	}
	h, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return object.Point{}, fmt.Errorf("非法尺寸 %q: %w", raw, err)
	}
	return object.Point{X: w, Y: h}, nil
}
