package format

import (
	"html"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/maruel/natural"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func builtins(o *options) []Formatter {
	return []Formatter{
		{Name: "ToUpperCase", Apply: func(v, _ string) string { return cases.Upper(language.Und).String(v) }},
		{Name: "ToLowerCase", Apply: func(v, _ string) string { return cases.Lower(language.Und).String(v) }},
		{Name: "CapitalizeWords", Apply: capitalizeWords},
		{Name: "Trim", Apply: func(v, _ string) string { return strings.TrimSpace(v) }},
		{Name: "HTMLChars", Apply: func(v, _ string) string { return html.EscapeString(v) }},
		{Name: "RemoveTags", Apply: removeTags},
		{Name: "Transliterate", Apply: func(v, _ string) string { return Transliterate(v) }},
		{Name: "FirstSentence", Apply: firstSentence(o.tokenizer)},
		{Name: "SortKeywords", Apply: sortKeywords},
		{Name: "Truncate", Apply: truncate},
		{Name: "Prefix", Apply: func(v, arg string) string { return wrapNonEmpty(arg, v, "") }},
		{Name: "Suffix", Apply: func(v, arg string) string { return wrapNonEmpty("", v, arg) }},
		{Name: "Default", Apply: defaultValue, Default: true},
	}
}

// capitalizeWords uses language neutral title casing, arg may carry BCP 47
// tag to select language specific rules.
func capitalizeWords(v, arg string) string {
	tag := language.Und
	if arg != "" {
		if t, err := language.Parse(arg); err == nil {
			tag = t
		}
	}
	return cases.Title(tag, cases.NoLower).String(v)
}

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

func removeTags(v, _ string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	// strict policy escapes what is left, we want plain text back
	return html.UnescapeString(stripPolicy.Sanitize(v))
}

func defaultValue(v, arg string) string {
	if strings.TrimSpace(v) == "" {
		return arg
	}
	return v
}

func wrapNonEmpty(prefix, v, suffix string) string {
	if v == "" {
		return ""
	}
	return prefix + v + suffix
}

// truncate shortens value to arg runes, adding ellipsis when something was
// cut. Bad or missing arg leaves value untouched.
func truncate(v, arg string) string {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 0 || utf8.RuneCountInString(v) <= n {
		return v
	}
	runes := []rune(v)
	return strings.TrimRightFunc(string(runes[:n]), func(r rune) bool { return r == ' ' }) + "…"
}

// sortKeywords orders delimited list in natural order, arg is a delimiter
// (comma when empty).
func sortKeywords(v, arg string) string {
	delim := ","
	if arg != "" {
		delim = arg
	}
	var items []string
	for item := range strings.SplitSeq(v, delim) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	slices.SortStableFunc(items, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	sep := delim
	if strings.TrimSpace(delim) != "" {
		sep = delim + " "
	}
	return strings.Join(items, sep)
}
