package format

import (
	sprig "github.com/go-task/slim-sprig/v3"
)

// Sprig functions with string -> string signature we are willing to expose.
var sprigNames = []string{
	"trim", "upper", "lower", "title", "untitle", "initials", "nospace",
	"swapcase", "snakecase", "camelcase", "kebabcase",
}

func sprigFormatters() []Formatter {
	funcs := sprig.FuncMap()
	out := make([]Formatter, 0, len(sprigNames))
	for _, name := range sprigNames {
		fn, ok := funcs[name].(func(string) string)
		if !ok {
			// not every sprig build carries every helper
			continue
		}
		out = append(out, Formatter{
			Name:  name,
			Apply: func(v, _ string) string { return fn(v) },
		})
	}
	return out
}
