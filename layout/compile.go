package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"citeview/bib/field"
	"citeview/layout/format"
)

// NewlineToken is replaced with line break before template is compiled, so
// multi-line templates could be kept in single line configuration values.
const NewlineToken = "__NEWLINE__"

// ErrCompile is wrapped by every compilation failure.
var ErrCompile = errors.New("unable to compile layout")

// CompileError describes malformed template.
type CompileError struct {
	Line, Column int
	Reason       string
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %d:%d: %s", ErrCompile, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrCompile, e.Reason)
}

func (e *CompileError) Unwrap() error {
	return ErrCompile
}

func errorAt(pos lexer.Position, msg string, args ...any) *CompileError {
	return &CompileError{Line: pos.Line, Column: pos.Column, Reason: fmt.Sprintf(msg, args...)}
}

// Compile turns template text into layout. Formatter names are resolved
// against registry, nil registry means no formatters are available. It never
// panics, any malformation is reported as *CompileError.
func Compile(text string, reg *format.Registry) (l *Layout, err error) {
	defer func() {
		if r := recover(); r != nil {
			l, err = nil, &CompileError{Reason: fmt.Sprintf("internal parser failure: %v", r)}
		}
	}()

	ast, err := templateParser.ParseString("", strings.ReplaceAll(text, NewlineToken, "\n"))
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, errorAt(perr.Position(), "%s", perr.Message())
		}
		return nil, &CompileError{Reason: err.Error()}
	}

	c := compiler{reg: reg}
	blocks, err := c.nodes(ast.Nodes)
	if err != nil {
		return nil, err
	}
	return &Layout{text: text, blocks: blocks}, nil
}

type compiler struct {
	reg *format.Registry
}

func (c *compiler) nodes(nodes []*nodeAST) ([]Block, error) {
	blocks := make([]Block, 0, len(nodes))
	literal := func(s string) {
		// merge adjacent literal pieces
		if n := len(blocks); n > 0 && blocks[n-1].kind == BlockLiteral {
			blocks[n-1].text += s
			return
		}
		blocks = append(blocks, Block{kind: BlockLiteral, text: s})
	}

	for _, n := range nodes {
		switch {
		case n.Text != nil:
			literal(*n.Text)
		case n.Escaped != nil:
			literal(strings.TrimPrefix(*n.Escaped, `\`))
		case n.Ref != nil:
			blocks = append(blocks, Block{kind: BlockField, field: field.Parse(strings.TrimPrefix(*n.Ref, `\`))})
		case n.Format != nil:
			b, err := c.format(n.Format)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		case n.Section != nil:
			b, err := c.section(n.Section)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

func (c *compiler) format(f *formatAST) (Block, error) {
	b := Block{
		kind:  BlockField,
		field: field.Parse(strings.TrimPrefix(f.Target, `\`)),
		chain: make([]format.Formatter, 0, len(f.Chain)),
		args:  make([]string, 0, len(f.Chain)),
	}
	for _, fa := range f.Chain {
		fm, ok := c.reg.Lookup(fa.Name)
		if !ok {
			return Block{}, errorAt(fa.Pos, "unknown formatter %q", fa.Name)
		}
		arg := ""
		if fa.Arg != nil {
			arg = unescapeArg(strings.TrimSuffix(strings.TrimPrefix(*fa.Arg, "("), ")"))
		}
		b.chain = append(b.chain, fm)
		b.args = append(b.args, arg)
	}
	return b, nil
}

func (c *compiler) section(s *sectionAST) (Block, error) {
	name := sectionName(s.Begin, `\begin{`)
	f := field.Parse(name)
	if end := sectionName(s.End, `\end{`); !field.Parse(end).Equal(f) {
		return Block{}, errorAt(s.Pos, "section %q closed by %q", name, end)
	}
	children, err := c.nodes(s.Body)
	if err != nil {
		return Block{}, err
	}
	return Block{kind: BlockSection, field: f, children: children}, nil
}

func sectionName(token, prefix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(token, prefix), "}")
}

// unescapeArg handles backslash escapes inside formatter argument, "\)"
// being the one which matters.
func unescapeArg(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
