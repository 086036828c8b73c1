package config

import (
	"citeview/layout"
)

//go:generate go tool go-enum --marshal --names

// How search matches are marked in rendered preview.
// ENUM(mark, span, ansi, none)
type HighlightStyle int

// Marker returns opening and closing sequences for the style.
func (h HighlightStyle) Marker() layout.Marker {
	switch h {
	case HighlightStyleSpan:
		return layout.Marker{Open: `<span class="highlight">`, Close: "</span>"}
	case HighlightStyleAnsi:
		return layout.Marker{Open: "\x1b[1;33m", Close: "\x1b[0m"}
	case HighlightStyleNone:
		return layout.Marker{}
	default:
		return layout.DefaultMarker
	}
}

// Enabled reports if matches should be marked at all.
func (h HighlightStyle) Enabled() bool {
	return h != HighlightStyleNone
}
