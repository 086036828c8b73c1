// Package layout compiles preview templates into immutable layouts and
// renders them against bibliographic records.
package layout

import (
	"slices"

	"citeview/bib/field"
	"citeview/layout/format"
)

// BlockKind tells how block is rendered.
type BlockKind int

const (
	// BlockLiteral is emitted verbatim.
	BlockLiteral BlockKind = iota
	// BlockField emits resolved field value passed through formatter chain.
	BlockField
	// BlockSection emits nested blocks only when its field resolves.
	BlockSection
)

// Block is a single compiled element of the layout.
type Block struct {
	kind     BlockKind
	text     string
	field    field.Field
	chain    []format.Formatter
	args     []string
	children []Block
}

func (b Block) Kind() BlockKind {
	return b.kind
}

// Text returns literal text of the block.
func (b Block) Text() string {
	return b.text
}

// Field returns referenced field (scalar or alternation group).
func (b Block) Field() field.Field {
	return b.field
}

// Formatters returns names of formatters in application order.
func (b Block) Formatters() []string {
	names := make([]string, len(b.chain))
	for i, f := range b.chain {
		names[i] = f.Name
	}
	return names
}

// Children returns nested blocks of a section.
func (b Block) Children() []Block {
	return slices.Clone(b.children)
}

// hasDefault reports whether formatter chain could produce text for absent
// field.
func (b Block) hasDefault() bool {
	return slices.ContainsFunc(b.chain, func(f format.Formatter) bool { return f.Default })
}

func (b Block) format(value string) string {
	for i, f := range b.chain {
		value = f.Apply(value, b.args[i])
	}
	return value
}

// Layout is compiled template. It is never changed after compilation and
// could be rendered concurrently.
type Layout struct {
	text   string
	blocks []Block
}

// Text returns template text layout was compiled from.
func (l *Layout) Text() string {
	if l == nil {
		return ""
	}
	return l.text
}

// Blocks returns top level blocks in order.
func (l *Layout) Blocks() []Block {
	if l == nil {
		return nil
	}
	return slices.Clone(l.blocks)
}
