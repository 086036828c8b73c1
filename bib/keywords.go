package bib

import (
	"slices"
	"strings"

	"citeview/bib/field"
)

// Keyword is a single item of keywords field.
type Keyword string

// KeywordList keeps keywords in the order they were found. Duplicates are
// preserved, use Dedup when necessary.
type KeywordList []Keyword

// ParseKeywords splits text on delimiter, trims items and skips empty ones.
func ParseKeywords(text string, delim rune) KeywordList {
	var list KeywordList
	for item := range strings.SplitSeq(text, string(delim)) {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, Keyword(item))
		}
	}
	return list
}

// Join produces field value from the list, delimiter is followed by a space.
func (l KeywordList) Join(delim rune) string {
	return strings.Join(l.Strings(), string(delim)+" ")
}

func (l KeywordList) Strings() []string {
	out := make([]string, len(l))
	for i, k := range l {
		out[i] = string(k)
	}
	return out
}

func (l KeywordList) Contains(k Keyword) bool {
	return slices.Contains(l, k)
}

// Dedup returns a copy of the list with repeated keywords removed, first
// occurrence wins.
func (l KeywordList) Dedup() KeywordList {
	seen := make(map[Keyword]struct{}, len(l))
	out := make(KeywordList, 0, len(l))
	for _, k := range l {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Keywords parses record's own keywords field.
func (r *Record) Keywords(delim rune) KeywordList {
	text, ok := r.Field(field.Keywords)
	if !ok {
		return nil
	}
	return ParseKeywords(text, delim)
}

// SetKeywords replaces keywords field, empty list clears it.
func (r *Record) SetKeywords(list KeywordList, delim rune) {
	r.SetField(field.Keywords, list.Join(delim))
}

// AddKeyword appends keyword to the keywords field.
func (r *Record) AddKeyword(kw Keyword, delim rune) {
	if strings.TrimSpace(string(kw)) == "" {
		return
	}
	list := r.Keywords(delim)
	list = append(list, Keyword(strings.TrimSpace(string(kw))))
	r.SetKeywords(list, delim)
}

// ResolvedKeywords returns record's own keywords or, when there are none,
// keywords of the crossref target. Only one hop is made.
func (r *Record) ResolvedKeywords(delim rune, idx Index) KeywordList {
	if list := r.Keywords(delim); len(list) > 0 {
		return list
	}
	if parent, ok := crossrefTarget(r, idx); ok {
		return parent.Keywords(delim)
	}
	return nil
}
