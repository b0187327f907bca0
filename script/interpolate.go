package script

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 路径支持点号、[i] 下标与导出结构体字段；data 为空或路径无法解析时
// 保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		// match 形如 ${...}，剥掉定界符即得路径。
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := resolvePath(data, path)
		if !ok {
			return match
		}
		return fmt.Sprint(val)
	})
}

func resolvePath(data any, path string) (any, bool) {
	cur := reflect.ValueOf(data)
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			cur, ok = descendField(cur, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			cur, ok = descendIndex(cur, idx)
			if !ok {
				return nil, false
			}
		}
	}
	if !cur.IsValid() {
		return nil, false
	}
	return cur.Interface(), true
}

func parseSegment(segment string) (string, []string) {
	name := segment
	var indexes []string
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for strings.HasPrefix(rest, "[") {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

// descendField 沿 map 键或导出结构体字段下降一级。
func descendField(cur reflect.Value, name string) (reflect.Value, bool) {
	cur = unwrap(cur)
	switch cur.Kind() {
	case reflect.Map:
		if cur.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		v := cur.MapIndex(reflect.ValueOf(name))
		if !v.IsValid() {
			return reflect.Value{}, false
		}
		return v, true
	case reflect.Struct:
		v := cur.FieldByName(name)
		if !v.IsValid() || !v.CanInterface() {
			return reflect.Value{}, false
		}
		return v, true
	default:
		return reflect.Value{}, false
	}
}

func descendIndex(cur reflect.Value, idx int) (reflect.Value, bool) {
	cur = unwrap(cur)
	switch cur.Kind() {
	case reflect.Slice, reflect.Array:
		if idx < 0 || idx >= cur.Len() {
			return reflect.Value{}, false
		}
		return cur.Index(idx), true
	default:
		return reflect.Value{}, false
	}
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
