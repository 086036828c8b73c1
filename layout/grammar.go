package layout

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Template syntax:
//
//	plain text                       copied as is
//	\\ \{ \} \[ \]                   escaped character
//	\title  \author/editor           field reference, "/" separates alternatives
//	\format[F1,F2(arg)]{\title}      field reference with formatter chain
//	\begin{note}...\end{note}        section rendered only when field has value
//
// Any other backslash sequence is an error.

const namePattern = `[A-Za-z][A-Za-z0-9_]*(?:/[A-Za-z][A-Za-z0-9_]*)*`

var templateLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Escaped", Pattern: `\\[\\{}\[\]]`},
		{Name: "Begin", Pattern: `\\begin\{` + namePattern + `\}`},
		{Name: "End", Pattern: `\\end\{` + namePattern + `\}`},
		{Name: "Format", Pattern: `\\format\[`, Action: lexer.Push("Chain")},
		// directive which did not match any of the forms above, grammar never
		// accepts it
		{Name: "Directive", Pattern: `\\(?:begin|end|format)\b`},
		{Name: "Ref", Pattern: `\\` + namePattern},
		{Name: "Brace", Pattern: `\}`},
		{Name: "Text", Pattern: `[^\\}]+`},
	},
	"Chain": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_]*`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Arg", Pattern: `\((?:[^)\\]|\\.)*\)`},
		{Name: "ChainEnd", Pattern: `\]\{`, Action: lexer.Pop()},
	},
})

type templateAST struct {
	Nodes []*nodeAST `parser:"@@*"`
}

type nodeAST struct {
	Section *sectionAST `parser:"  @@"`
	Format  *formatAST  `parser:"| @@"`
	Ref     *string     `parser:"| @Ref"`
	Escaped *string     `parser:"| @Escaped"`
	Text    *string     `parser:"| @( Text | Brace )"`
}

type sectionAST struct {
	Pos lexer.Position

	Begin string     `parser:"@Begin"`
	Body  []*nodeAST `parser:"@@*"`
	End   string     `parser:"@End"`
}

type formatAST struct {
	Chain  []*formatterAST `parser:"Format @@ ( Comma @@ )* ChainEnd"`
	Target string          `parser:"@Ref Brace"`
}

type formatterAST struct {
	Pos lexer.Position

	Name string  `parser:"@Ident"`
	Arg  *string `parser:"@Arg?"`
}

var templateParser = participle.MustBuild[templateAST](
	participle.Lexer(templateLexer),
	participle.Elide("Whitespace"),
)
