package rules

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// Rules holds the pattern set used to parse and classify a chat export.
// A Rules value is never mutated after construction, so one instance can be
// shared by every request.
type Rules struct {
	header      *regexp.Regexp
	adminAction *regexp.Regexp
	media       map[string]struct{}
	stopWords   map[string]struct{}
	emoji       *unicode.RangeTable
}

// Default returns the built-in rule set.
func Default() *Rules {
	return &Rules{
		header:      regexp.MustCompile(headerPattern),
		adminAction: regexp.MustCompile(`(?i)(` + strings.Join(adminActionPatterns, "|") + `)`),
		media:       toSet(mediaPlaceholders),
		stopWords:   toSet(defaultStopWords),
		emoji:       emojiTable,
	}
}

// WithStopWords returns a copy of r whose stop-word set is replaced by words.
// Words are lower-cased; blank entries are ignored.
func (r *Rules) WithStopWords(words []string) *Rules {
	cp := *r
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	cp.stopWords = set
	return &cp
}

// Header returns the header-line pattern. Submatches are date, time, sender, message.
func (r *Rules) Header() *regexp.Regexp {
	return r.header
}

// IsAdminAction reports whether text contains an administrative-action indicator.
func (r *Rules) IsAdminAction(text string) bool {
	return r.adminAction.MatchString(text)
}

// IsMediaPlaceholder reports whether cleaned is exactly one of the omission markers.
func (r *Rules) IsMediaPlaceholder(cleaned string) bool {
	_, ok := r.media[cleaned]
	return ok
}

// IsStopWord reports whether the lower-cased token is a stop-word.
func (r *Rules) IsStopWord(token string) bool {
	_, ok := r.stopWords[token]
	return ok
}

// IsEmoji reports whether rn falls in one of the emoji ranges.
func (r *Rules) IsEmoji(rn rune) bool {
	return unicode.Is(r.emoji, rn)
}

// LoadStopWords reads a newline-separated stop-word file. Lines starting with
// '#' are comments.
func LoadStopWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stopwords: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stopwords: read error: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("stopwords: file is empty: %s", path)
	}
	return words, nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
