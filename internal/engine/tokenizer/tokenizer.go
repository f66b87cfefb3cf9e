// Package tokenizer extracts countable words and emoji from message bodies.
package tokenizer

import (
	"strings"

	"github.com/crimson-sun/chatwrap/internal/engine/rules"
)

const minTokenLen = 2

// Tokenizer splits message text into word tokens and emoji using a rule set's
// stop-words and emoji ranges.
type Tokenizer struct {
	rules *rules.Rules
}

// New creates a Tokenizer.
func New(r *rules.Rules) *Tokenizer {
	return &Tokenizer{rules: r}
}

// Tokenize lower-cases text and returns the maximal runs of ASCII letters,
// digits and apostrophes, in order, minus stop-words and single characters.
// Duplicates are kept.
func (t *Tokenizer) Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	start := -1
	emit := func(end int) {
		tok := text[start:end]
		start = -1
		if len(tok) < minTokenLen || t.rules.IsStopWord(tok) {
			return
		}
		tokens = append(tokens, tok)
	}

	for i := 0; i < len(text); i++ {
		if isWordByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(i)
		}
	}
	if start >= 0 {
		emit(len(text))
	}
	return tokens
}

// Emojis returns every character of text that falls in the emoji ranges, in order.
func (t *Tokenizer) Emojis(text string) []string {
	var out []string
	for _, r := range text {
		if t.rules.IsEmoji(r) {
			out = append(out, string(r))
		}
	}
	return out
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '\''
}
