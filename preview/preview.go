// Package preview provides entry preview layouts used by the host application.
package preview

import (
	"sync/atomic"

	"go.uber.org/zap"

	"citeview/bib"
	"citeview/l10n"
	"citeview/layout"
	"citeview/layout/format"
)

// Layout is anything able to produce entry preview.
type Layout interface {
	GeneratePreview(r *bib.Record, idx bib.Index) string
	GeneratePreviewHighlighted(r *bib.Record, idx bib.Index, pattern string) string
	Name() string
}

// Option customizes TextBased preview.
type Option func(*TextBased)

// WithLogger sets logger to report template problems to.
func WithLogger(log *zap.Logger) Option {
	return func(p *TextBased) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRegistry sets formatters available to templates.
func WithRegistry(reg *format.Registry) Option {
	return func(p *TextBased) {
		p.reg = reg
	}
}

// WithRenderOptions passes options (marker, resolver) to every render call.
func WithRenderOptions(opts ...layout.RenderOption) Option {
	return func(p *TextBased) {
		p.render = append(p.render, opts...)
	}
}

// TextBased is a preview defined by user editable template text.
//
// Compiled layout is swapped atomically, so renders running concurrently
// with SetText see either old or new layout. Text itself is not
// synchronized, callers must not call SetText from several goroutines.
type TextBased struct {
	text   string
	layout atomic.Pointer[layout.Layout]
	reg    *format.Registry
	log    *zap.Logger
	render []layout.RenderOption
}

var _ Layout = (*TextBased)(nil)

func newTextBased(opts []Option) *TextBased {
	p := &TextBased{log: zap.NewNop()}
	for _, setOpt := range opts {
		setOpt(p)
	}
	return p
}

// NewTextBased compiles template text right away. Broken template is logged
// and preview stays empty until good text is set.
func NewTextBased(text string, reg *format.Registry, opts ...Option) *TextBased {
	p := newTextBased(append([]Option{WithRegistry(reg)}, opts...))
	_ = p.SetText(text)
	return p
}

// FromLayout wraps already compiled layout, text is taken from the layout.
func FromLayout(l *layout.Layout, opts ...Option) *TextBased {
	p := newTextBased(opts)
	p.text = l.Text()
	p.layout.Store(l)
	return p
}

// SetText remembers new template text and recompiles it. On failure previous
// layout is kept (text is still updated) and error is logged and returned.
func (p *TextBased) SetText(text string) error {
	p.text = text
	l, err := layout.Compile(text, p.reg)
	if err != nil {
		p.log.Error("Could not generate layout", zap.String("text", text), zap.Error(err))
		return err
	}
	p.layout.Store(l)
	return nil
}

// Text returns template text exactly as it was last set.
func (p *TextBased) Text() string {
	return p.text
}

// Layout returns currently active compiled layout, nil if there is none.
func (p *TextBased) Layout() *layout.Layout {
	return p.layout.Load()
}

// GeneratePreview renders record, store is used to resolve crossref.
func (p *TextBased) GeneratePreview(r *bib.Record, idx bib.Index) string {
	return p.layout.Load().Render(r, idx, p.render...)
}

// GeneratePreviewHighlighted renders record marking pattern occurrences in
// field values. Empty pattern is the same as GeneratePreview.
func (p *TextBased) GeneratePreviewHighlighted(r *bib.Record, idx bib.Index, pattern string) string {
	if pattern == "" {
		return p.GeneratePreview(r, idx)
	}
	opts := append([]layout.RenderOption{layout.WithHighlight(pattern)}, p.render...)
	return p.layout.Load().Render(r, idx, opts...)
}

// Name returns localized display name.
func (p *TextBased) Name() string {
	return l10n.Lang("Preview")
}
