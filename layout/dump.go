package layout

import (
	"fmt"
	"strconv"
	"strings"
)

type treeWriter struct {
	w *strings.Builder
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	tw.w.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Dump returns human readable tree of compiled blocks, used in debug reports.
func (l *Layout) Dump() string {
	tw := treeWriter{w: &strings.Builder{}}
	if l == nil {
		tw.line(0, "layout: none")
		return tw.w.String()
	}
	tw.line(0, "layout: %s", strconv.Quote(l.text))
	tw.blocks(1, l.blocks)
	return tw.w.String()
}

func (tw treeWriter) blocks(depth int, blocks []Block) {
	for _, b := range blocks {
		switch b.kind {
		case BlockLiteral:
			tw.line(depth, "literal: %s", strconv.Quote(b.text))
		case BlockField:
			chain := make([]string, len(b.chain))
			for i, f := range b.chain {
				chain[i] = f.Name
				if b.args[i] != "" {
					chain[i] += "(" + strconv.Quote(b.args[i]) + ")"
				}
			}
			if len(chain) == 0 {
				tw.line(depth, "field: %s", b.field.Key())
			} else {
				tw.line(depth, "field: %s [%s]", b.field.Key(), strings.Join(chain, ", "))
			}
		case BlockSection:
			tw.line(depth, "section: %s", b.field.Key())
			tw.blocks(depth+1, b.children)
		}
	}
}
