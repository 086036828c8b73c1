package format

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

// slug keeps case handling in a package variable.
var slugLock sync.Mutex

// Transliterate replaces non-ASCII letters with ASCII equivalents keeping
// everything else, so "Müller, Hans" becomes "Muller, Hans". BibTeX markup is
// copied verbatim: brace protected spans like "{Ü}ber" and TeX commands like
// `\"u` or `\c{c}` already say how the text must look.
func Transliterate(s string) string {
	var sb strings.Builder
	for len(s) > 0 {
		var n int
		switch s[0] {
		case '{':
			n = groupLen(s)
			sb.WriteString(s[:n])
		case '\\':
			n = commandLen(s)
			sb.WriteString(s[:n])
		default:
			n = textLen(s)
			transliterateText(&sb, s[:n])
		}
		s = s[n:]
	}
	return sb.String()
}

// groupLen returns length of balanced braced group at the start of s, whole
// s when braces are not balanced.
func groupLen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth--; depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// commandLen returns length of TeX control word ("\emph") or control symbol
// (`\"`) at the start of s. Accent symbols take their letter along.
func commandLen(s string) int {
	if len(s) == 1 {
		return 1
	}
	i := 1
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	if i > 1 {
		return i
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	i += size
	if strings.ContainsRune("'`^\"~=.", rune(s[1])) && i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	return i
}

func textLen(s string) int {
	if i := strings.IndexAny(s, `{\`); i >= 0 {
		return i
	}
	return len(s)
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// transliterateText converts runs of letters one by one, separators between
// them are kept as they are.
func transliterateText(sb *strings.Builder, text string) {
	for len(text) > 0 {
		i := strings.IndexFunc(text, isWordRune)
		if i < 0 {
			sb.WriteString(text)
			return
		}
		sb.WriteString(text[:i])
		text = text[i:]

		j := strings.IndexFunc(text, func(r rune) bool { return !isWordRune(r) })
		if j < 0 {
			j = len(text)
		}
		sb.WriteString(transliterateWord(text[:j]))
		text = text[j:]
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}

func transliterateWord(word string) string {
	if isASCII(word) {
		return word
	}

	runes := []rune(word)
	firstUpper := unicode.IsUpper(runes[0])
	allUpper := len(runes) > 1 && isAllUpper(runes)

	slugLock.Lock()
	slug.Lowercase = false
	trans := slug.Make(word)
	slug.Lowercase = true
	slugLock.Unlock()

	if trans == "" {
		return word
	}

	transRunes := []rune(trans)
	switch {
	case allUpper:
		for i := range transRunes {
			transRunes[i] = unicode.ToUpper(transRunes[i])
		}
	case firstUpper:
		transRunes[0] = unicode.ToUpper(transRunes[0])
	}
	return string(transRunes)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isAllUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
