package format

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// defaultTokenizer loads trained English data once, nil means data is broken
// and FirstSentence returns values untouched.
var defaultTokenizer = sync.OnceValue(func() *sentences.DefaultSentenceTokenizer {
	t, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil
	}
	return t
})

// firstSentence keeps only the first sentence of the value, it is mostly
// useful for abstracts. Without tokenizer registry default is used.
func firstSentence(t *sentences.DefaultSentenceTokenizer) Func {
	return func(v, _ string) string {
		tok := t
		if tok == nil {
			tok = defaultTokenizer()
		}
		if tok == nil || strings.TrimSpace(v) == "" {
			return v
		}
		for _, s := range tok.Tokenize(v) {
			if text := strings.TrimSpace(s.Text); text != "" {
				return text
			}
		}
		return v
	}
}
