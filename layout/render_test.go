package layout

import (
	"testing"

	"citeview/bib"
	"citeview/bib/field"
	"citeview/layout/format"
)

func mustCompile(t *testing.T, text string) *Layout {
	t.Helper()
	l, err := Compile(text, format.NewRegistry())
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", text, err)
	}
	return l
}

// newFixture returns chapter record inheriting from a book.
func newFixture(t *testing.T) (*bib.Store, *bib.Record) {
	t.Helper()

	book := bib.NewRecord("book")
	book.SetCitationKey("knuth1997")
	book.SetField(field.Title, "The Art of Computer Programming")
	book.SetField(field.Publisher, "Addison-Wesley")
	book.SetField(field.Year, "1997")
	book.SetField(field.JournalTitle, "Series of Art")

	chapter := bib.NewRecord("inbook")
	chapter.SetCitationKey("knuth1997ch1")
	chapter.SetField(field.Author, "Donald E. Knuth")
	chapter.SetField(field.Chapter, "Basic Concepts")
	chapter.SetField(field.Crossref, "knuth1997")

	store := bib.NewStore()
	for _, r := range []*bib.Record{book, chapter} {
		if err := store.Insert(r); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	return store, chapter
}

func TestRender(t *testing.T) {
	store, chapter := newFixture(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"literal", "A__NEWLINE__B", "A\nB"},
		{"own and inherited fields", `\author: \chapter. In \title, \year.`,
			"Donald E. Knuth: Basic Concepts. In The Art of Computer Programming, 1997."},
		{"absent field contributes nothing", `[\volume]`, "[]"},
		{"group picks first available", `\editor/author`, "Donald E. Knuth"},
		{"formatter chain in order", `\format[ToUpperCase,Prefix(by )]{\author}`, "by DONALD E. KNUTH"},
		{"default formatter fills absent field", `\format[Default(n.p.)]{\address}`, "n.p."},
		{"non default formatter skips absent field", `\format[Prefix(at )]{\address}`, ""},
		{"section with value", `\begin{publisher}(\publisher)\end{publisher}`, "(Addison-Wesley)"},
		{"section without value", `x\begin{note}(\note)\end{note}y`, "xy"},
		{"section on group", `\begin{note/year}!\end{note/year}`, "!"},
		{"aliases are off by default", `[\journal]`, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCompile(t, tt.text).Render(chapter, store)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_WithoutStore(t *testing.T) {
	_, chapter := newFixture(t)

	got := mustCompile(t, `\chapter/\title`).Render(chapter, nil)
	if got != "Basic Concepts/" {
		t.Errorf("Render() = %q, want %q", got, "Basic Concepts/")
	}
}

func TestRender_AliasResolver(t *testing.T) {
	store, chapter := newFixture(t)

	got := mustCompile(t, `\journal`).Render(chapter, store, WithResolver(bib.AliasResolver))
	if got != "Series of Art" {
		t.Errorf("Render() = %q, want %q", got, "Series of Art")
	}
}

func TestRender_Highlight(t *testing.T) {
	store, chapter := newFixture(t)

	tests := []struct {
		name    string
		text    string
		pattern string
		opts    []RenderOption
		want    string
	}{
		{"case-insensitive", `\title`, "ART", nil, "The <mark>Art</mark> of Computer Programming"},
		{"every occurrence", `\author`, "n", nil, "Do<mark>n</mark>ald E. K<mark>n</mark>uth"},
		{"literals are untouched", `Art: \chapter`, "art", nil, "Art: Basic Concepts"},
		{"after formatting", `\format[ToUpperCase]{\chapter}`, "basic", nil, "<mark>BASIC</mark> CONCEPTS"},
		{"pattern is literal text", `\publisher`, "n-W", nil, "Addiso<mark>n-W</mark>esley"},
		{"regexp characters are literal", `\publisher`, ".*", nil, "Addison-Wesley"},
		{"empty pattern", `\chapter`, "", nil, "Basic Concepts"},
		{"custom marker", `\chapter`, "basic", []RenderOption{WithMarker(Marker{Open: "[", Close: "]"})}, "[Basic] Concepts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]RenderOption{WithHighlight(tt.pattern)}, tt.opts...)
			got := mustCompile(t, tt.text).Render(chapter, store, opts...)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_HighlightSkipsMarkup(t *testing.T) {
	r := bib.NewRecord("article")
	r.SetField(field.Title, "Go & Rust")
	r.SetField(field.Note, "<i>Go</i> in Action")

	tests := []struct {
		name    string
		text    string
		pattern string
		want    string
	}{
		{"entity name", `\format[HTMLChars]{\title}`, "amp", "Go &amp; Rust"},
		{"text next to entity", `\format[HTMLChars]{\title}`, "rust", "Go &amp; <mark>Rust</mark>"},
		{"escaped tags", `\format[HTMLChars]{\note}`, "lt", "&lt;i&gt;Go&lt;/i&gt; in Action"},
		{"text inside escaped tags", `\format[HTMLChars]{\note}`, "go", "&lt;i&gt;<mark>Go</mark>&lt;/i&gt; in Action"},
		{"stored tags", `\note`, "i", "<i>Go</i> <mark>i</mark>n Act<mark>i</mark>on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCompile(t, tt.text).Render(r, nil, WithHighlight(tt.pattern))
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_Shortcut(t *testing.T) {
	store, chapter := newFixture(t)
	l := mustCompile(t, `\chapter`)

	if got := Render(l, chapter, store, "concepts"); got != "Basic <mark>Concepts</mark>" {
		t.Errorf("Render() = %q", got)
	}
	if got := Render(nil, chapter, store, "x"); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
}

func TestLayout_Immutable(t *testing.T) {
	l := mustCompile(t, `\begin{title}\title\end{title}`)

	blocks := l.Blocks()
	blocks[0] = Block{kind: BlockLiteral, text: "changed"}
	children := l.Blocks()[0].Children()
	children[0] = Block{kind: BlockLiteral, text: "changed"}

	store, chapter := newFixture(t)
	if got := l.Render(chapter, store); got != "The Art of Computer Programming" {
		t.Errorf("Render() = %q, layout was modified through accessors", got)
	}
}
