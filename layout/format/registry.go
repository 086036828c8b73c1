// Package format provides named text transformations applied to resolved
// field values in layouts.
package format

import (
	"slices"
	"strings"

	"github.com/neurosnap/sentences"
	"go.uber.org/zap"
)

// Func transforms value. Arg is raw text given to the formatter in the
// template, empty when formatter was referenced without parentheses.
type Func func(value, arg string) string

// Formatter is a named transformation.
type Formatter struct {
	Name  string
	Apply Func
	// Default marks formatters which must run even when field is absent,
	// they are able to produce text out of nothing.
	Default bool
}

// Registry maps formatter names to formatters. Names are case-insensitive.
// Registry is read-only once built and could be shared.
type Registry struct {
	formatters map[string]Formatter
	log        *zap.Logger
}

type options struct {
	log       *zap.Logger
	sprig     bool
	extra     []Formatter
	nobuilt   bool
	tokenizer *sentences.DefaultSentenceTokenizer
}

// Option customizes registry construction.
type Option func(*options)

// WithLogger sets logger used to report registration problems.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSprig adds string helpers from sprig library under their own names.
func WithSprig() Option {
	return func(o *options) {
		o.sprig = true
	}
}

// WithFormatter adds (or replaces builtin) formatter.
func WithFormatter(f Formatter) Option {
	return func(o *options) {
		o.extra = append(o.extra, f)
	}
}

// WithSentenceTokenizer sets tokenizer FirstSentence uses to find sentence
// boundaries. Tokenizer trained on English is used by default, other
// languages need their own training data.
func WithSentenceTokenizer(t *sentences.DefaultSentenceTokenizer) Option {
	return func(o *options) {
		o.tokenizer = t
	}
}

// WithoutBuiltins starts from empty registry.
func WithoutBuiltins() Option {
	return func(o *options) {
		o.nobuilt = true
	}
}

// NewRegistry creates registry populated with builtin formatters.
func NewRegistry(opts ...Option) *Registry {
	o := &options{log: zap.NewNop()}
	for _, setOpt := range opts {
		setOpt(o)
	}

	r := &Registry{formatters: make(map[string]Formatter), log: o.log}
	if !o.nobuilt {
		for _, f := range builtins(o) {
			r.register(f)
		}
	}
	if o.sprig {
		for _, f := range sprigFormatters() {
			if _, exists := r.formatters[strings.ToLower(f.Name)]; exists {
				continue
			}
			r.register(f)
		}
	}
	for _, f := range o.extra {
		r.register(f)
	}
	return r
}

func (r *Registry) register(f Formatter) {
	if f.Name == "" || f.Apply == nil {
		r.log.Debug("Ignoring incomplete formatter", zap.String("name", f.Name))
		return
	}
	r.formatters[strings.ToLower(f.Name)] = f
}

// Lookup finds formatter by name.
func (r *Registry) Lookup(name string) (Formatter, bool) {
	if r == nil {
		return Formatter{}, false
	}
	f, ok := r.formatters[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Names returns registered formatter names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.formatters))
	for _, f := range r.formatters {
		names = append(names, f.Name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}
