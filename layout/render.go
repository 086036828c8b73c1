package layout

import (
	"regexp"
	"strings"

	"citeview/bib"
)

// Marker surrounds highlighted text.
type Marker struct {
	Open, Close string
}

// DefaultMarker is used when no other marker was requested.
var DefaultMarker = Marker{Open: "<mark>", Close: "</mark>"}

type renderOptions struct {
	resolver bib.Resolver
	pattern  string
	marker   Marker
}

// RenderOption customizes single render call.
type RenderOption func(*renderOptions)

// WithHighlight marks every case-insensitive occurrence of pattern in
// rendered field values. Tags and character references present in the value
// (either stored or produced by formatters) are never matched, so occurrence
// spanning markup is not marked. Empty pattern turns highlighting off.
func WithHighlight(pattern string) RenderOption {
	return func(o *renderOptions) {
		o.pattern = pattern
	}
}

// WithMarker changes highlight marker.
func WithMarker(m Marker) RenderOption {
	return func(o *renderOptions) {
		o.marker = m
	}
}

// WithResolver replaces field resolution strategy, nil keeps default.
func WithResolver(r bib.Resolver) RenderOption {
	return func(o *renderOptions) {
		if r != nil {
			o.resolver = r
		}
	}
}

// Render produces text for the record. Store is consulted only for crossref
// resolution and could be nil. Rendering nil layout produces empty string.
func (l *Layout) Render(r *bib.Record, idx bib.Index, opts ...RenderOption) string {
	if l == nil {
		return ""
	}

	o := &renderOptions{resolver: bib.DirectResolver, marker: DefaultMarker}
	for _, setOpt := range opts {
		setOpt(o)
	}

	w := &walker{record: r, idx: idx, resolver: o.resolver, marker: o.marker}
	if o.pattern != "" {
		w.highlight = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(o.pattern))
	}

	var sb strings.Builder
	w.blocks(&sb, l.blocks)
	return sb.String()
}

// Render is a shortcut for rendering with optional highlight pattern.
func Render(l *Layout, r *bib.Record, idx bib.Index, pattern string) string {
	return l.Render(r, idx, WithHighlight(pattern))
}

type walker struct {
	record    *bib.Record
	idx       bib.Index
	resolver  bib.Resolver
	highlight *regexp.Regexp
	marker    Marker
}

func (w *walker) blocks(sb *strings.Builder, blocks []Block) {
	for _, b := range blocks {
		switch b.kind {
		case BlockLiteral:
			sb.WriteString(b.text)
		case BlockField:
			sb.WriteString(w.value(b))
		case BlockSection:
			if v, ok := bib.Resolve(w.resolver, w.record, b.field, w.idx); ok && v != "" {
				w.blocks(sb, b.children)
			}
		}
	}
}

func (w *walker) value(b Block) string {
	v, ok := bib.Resolve(w.resolver, w.record, b.field, w.idx)
	if !ok {
		if !b.hasDefault() {
			return ""
		}
		v = ""
	}
	v = b.format(v)
	if v == "" || w.highlight == nil {
		return v
	}
	return w.mark(v)
}

var markup = regexp.MustCompile(`<[^<>]*>|&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)

// mark highlights text between markup.
func (w *walker) mark(v string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range markup.FindAllStringIndex(v, -1) {
		sb.WriteString(w.markText(v[last:loc[0]]))
		sb.WriteString(v[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(w.markText(v[last:]))
	return sb.String()
}

func (w *walker) markText(s string) string {
	if s == "" {
		return s
	}
	return w.highlight.ReplaceAllStringFunc(s, func(m string) string {
		return w.marker.Open + m + w.marker.Close
	})
}
