package tokenizer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/crimson-sun/chatwrap/internal/engine/rules"
)

func TestTokenize(t *testing.T) {
	tok := New(rules.Default())
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"basic", "hello world", []string{"hello", "world"}},
		{"lowercases", "Hello WORLD", []string{"hello", "world"}},
		{"stop-words dropped", "the cat and the hat", []string{"cat", "hat"}},
		{"stop-words case-insensitive", "THE Cat", []string{"cat"}},
		{"single chars dropped", "x y zz 7 42", []string{"zz", "42"}},
		{"apostrophes kept", "don't I'm it's", []string{"don't", "it's"}},
		{"punctuation splits", "wait...what?!ok", []string{"wait", "what", "ok"}},
		{"non-ascii splits", "café naïve", []string{"caf", "na", "ve"}},
		{"duplicates kept", "go go go", []string{"go", "go", "go"}},
		{"newlines", "first\nsecond", []string{"first", "second"}},
		{"emoji ignored", "nice 🔥 job", []string{"nice", "job"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeNeverEmitsShortOrStopWords(t *testing.T) {
	r := rules.Default()
	tok := New(r)
	text := "A an AND The I'm im U ur LOL bro Brev so do it 1 22 a1 it's OK ok"
	for _, w := range tok.Tokenize(text) {
		if len(w) < 2 {
			t.Errorf("token %q shorter than 2", w)
		}
		if r.IsStopWord(strings.ToLower(w)) {
			t.Errorf("token %q is a stop-word", w)
		}
	}
}

func TestTokenizeCustomStopWords(t *testing.T) {
	tok := New(rules.Default().WithStopWords([]string{"hello"}))
	got := tok.Tokenize("hello the world")
	want := []string{"the", "world"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmojis(t *testing.T) {
	tok := New(rules.Default())
	got := tok.Emojis("gg 😂😂 nice 🔥 ❤ 🤣 🇺🇸")
	want := []string{"😂", "😂", "🔥", "❤", "🇺", "🇸"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Emojis = %q, want %q", got, want)
	}
	if got := tok.Emojis("no emoji here"); got != nil {
		t.Errorf("expected nil, got %q", got)
	}
}
