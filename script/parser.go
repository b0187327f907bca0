// Package script 实现批量标注脚本：每行一条命令，解析后构造已提交
// 状态的标注对象。文本字面量支持 ${path} 数据插值。
package script

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})`},
		// Size 与 Pair 必须先于 Number，否则 "120x80" 会被拆成数值序列。
		{Name: "Size", Pattern: `\d+(?:\.\d+)?x\d+(?:\.\d+)?`},
		{Name: "Pair", Pattern: `-?\d+(?:\.\d+)?,-?\d+(?:\.\d+)?`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

// Script 是脚本的根节点：按行排列的命令序列。
type Script struct {
	Commands []*Command `parser:"Newline* ( @@ Newline* )*"`
}

// Command 是一条标注命令。参数以原始词素捕获，解析之后再解释，
// 各命令的参数约定见 build.go。
type Command struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"@Ident"`
	Args []*Arg         `parser:"@@*"`
	Body *StringLiteral `parser:"( '{' Newline* @String Newline* '}' )?"`
}

// Arg 捕获一个参数词素：坐标对、宽x高、颜色、数值或关键字。
type Arg struct {
	Pair   *string `parser:"  @Pair"`
	Size   *string `parser:"| @Size"`
	Color  *string `parser:"| @Color"`
	Number *string `parser:"| @Number"`
	Word   *string `parser:"| @Ident"`
}

// StringLiteral 在捕获时对 Go 风格字符串做反引号处理。
type StringLiteral string

// Capture 实现 participle.Capture。
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量捕获缺少值")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse 从 io.Reader 解析脚本。
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString 从字符串解析脚本。
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
