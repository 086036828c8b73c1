package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"citeview/bib/field"
	"citeview/layout/format"
)

// describe flattens blocks into readable form for comparisons.
func describe(blocks []Block) []string {
	var out []string
	for _, b := range blocks {
		switch b.Kind() {
		case BlockLiteral:
			out = append(out, "text:"+b.Text())
		case BlockField:
			s := "field:" + b.Field().Key()
			if names := b.Formatters(); len(names) > 0 {
				s += "|" + strings.Join(names, ",")
			}
			out = append(out, s)
		case BlockSection:
			out = append(out, "begin:"+b.Field().Key())
			out = append(out, describe(b.Children())...)
			out = append(out, "end:"+b.Field().Key())
		}
	}
	return out
}

func TestCompile(t *testing.T) {
	reg := format.NewRegistry()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"literal only", "just text", []string{"text:just text"}},
		{"newline token", "A__NEWLINE__B", []string{"text:A\nB"}},
		{"fields", `\author: \title.`, []string{"field:author", "text:: ", "field:title", "text:."}},
		{"field case", `\TITLE`, []string{"field:title"}},
		{"group", `\author/editor (\year)`, []string{"field:author/editor", "text: (", "field:year", "text:)"}},
		{"escapes", `\\ \{x\} \[ \]`, []string{`text:\ {x} [ ]`}},
		{"lone braces", `{a} }`, []string{"text:{a} }"}},
		{"formatter chain", `\format[ToUpperCase, Prefix(: )]{\title}`, []string{"field:title|ToUpperCase,Prefix"}},
		{"formatter name case", `\format[touppercase]{\title}`, []string{"field:title|ToUpperCase"}},
		{
			"section",
			`\begin{note}Note: \note.\end{note}`,
			[]string{"begin:note", "text:Note: ", "field:note", "text:.", "end:note"},
		},
		{
			"nested sections",
			`\begin{author}\author\begin{year}, \year\end{year}\end{author}`,
			[]string{"begin:author", "field:author", "begin:year", "text:, ", "field:year", "end:year", "end:author"},
		},
		{"section name case", `\begin{Note}x\end{note}`, []string{"begin:note", "text:x", "end:note"}},
		{"word starting with directive", `\formatted`, []string{"field:formatted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Compile(tt.text, reg)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.text, err)
			}
			if diff := cmp.Diff(tt.want, describe(l.Blocks())); diff != "" {
				t.Errorf("Compile(%q) blocks mismatch (-want +got):\n%s", tt.text, diff)
			}
			if l.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", l.Text(), tt.text)
			}
		})
	}
}

func TestCompile_FormatterArgs(t *testing.T) {
	l, err := Compile(`\format[Prefix(\(see \)), Suffix()]{\note}`, format.NewRegistry())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	b := l.Blocks()[0]
	if diff := cmp.Diff([]string{"(see )", ""}, b.args); diff != "" {
		t.Errorf("formatter args mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_GroupField(t *testing.T) {
	l, err := Compile(`\format[Trim]{\author/editor}`, format.NewRegistry())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	f := l.Blocks()[0].Field()
	if f.Kind() != field.KindGroup || len(f.Members()) != 2 {
		t.Errorf("Field() = %v (%v), want group of two", f, f.Kind())
	}
}

func TestCompile_Errors(t *testing.T) {
	reg := format.NewRegistry()

	tests := []struct {
		name   string
		text   string
		reason string
	}{
		{"unknown formatter", `\format[NoSuchThing]{\title}`, "unknown formatter"},
		{"unterminated reference", `\format[ToUpperCase]{\title`, ""},
		{"unterminated chain", `\format[ToUpperCase`, ""},
		{"missing section end", `\begin{note}text`, ""},
		{"mismatched section", `\begin{note}text\end{title}`, "closed by"},
		{"stray section end", `text\end{note}`, ""},
		{"malformed directive", `\begin note`, ""},
		{"stray backslash", `price \1`, ""},
		{"trailing backslash", `text \`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Compile(tt.text, reg)
			if err == nil {
				t.Fatalf("Compile(%q) = %v, want error", tt.text, describe(l.Blocks()))
			}
			if l != nil {
				t.Error("failed compilation must not return layout")
			}
			if !errors.Is(err, ErrCompile) {
				t.Errorf("error %v does not wrap ErrCompile", err)
			}
			var cerr *CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("error %T is not *CompileError", err)
			}
			if tt.reason != "" && !strings.Contains(cerr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to mention %q", cerr.Reason, tt.reason)
			}
		})
	}
}

func TestCompile_NilRegistry(t *testing.T) {
	if _, err := Compile(`\title`, nil); err != nil {
		t.Errorf("Compile() without formatters error = %v", err)
	}
	if _, err := Compile(`\format[ToUpperCase]{\title}`, nil); err == nil {
		t.Error("Compile() with formatter and nil registry must fail")
	}
}

func TestCompileError_Position(t *testing.T) {
	_, err := Compile("line one__NEWLINE__\\format[Bad]{\\title}", format.NewRegistry())
	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("Compile() error = %v, want *CompileError", err)
	}
	if cerr.Line != 2 {
		t.Errorf("Line = %d, want 2", cerr.Line)
	}
}
