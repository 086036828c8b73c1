// Package l10n provides translated user visible labels.
package l10n

import (
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		"Preview": "Preview",
	},
	language.German: {
		"Preview": "Vorschau",
	},
	language.French: {
		"Preview": "Aperçu",
	},
	language.Russian: {
		"Preview": "Предпросмотр",
	},
	language.Spanish: {
		"Preview": "Vista previa",
	},
}

// supported languages, first one is used when nothing matches
var supported = []language.Tag{language.English, language.German, language.French, language.Russian, language.Spanish}

var (
	labels  = buildCatalog()
	printer atomic.Pointer[message.Printer]
)

func init() {
	printer.Store(message.NewPrinter(language.English, message.Catalog(labels)))
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, tag := range supported {
		for key, msg := range translations[tag] {
			// keys and messages are static, error is impossible here
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// SetLanguage switches language of the labels. Unsupported languages fall back
// to the closest match or English.
func SetLanguage(tag language.Tag) {
	_, idx, _ := language.NewMatcher(supported).Match(tag)
	printer.Store(message.NewPrinter(supported[idx], message.Catalog(labels)))
}

// Lang returns translated label for the key, formatting arguments if any.
// Unknown keys without arguments are returned as is.
func Lang(key string, args ...any) string {
	// every label has English text, so this is the set of known keys
	if _, known := translations[language.English][key]; !known && len(args) == 0 {
		return key
	}
	return printer.Load().Sprintf(key, args...)
}
