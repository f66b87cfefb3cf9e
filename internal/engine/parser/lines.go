package parser

import "strings"

// splitLines splits text on every line boundary a chat export may contain:
// "\n", "\r\n", "\r", and the Unicode separators treated as line breaks by
// common text tooling. Line terminators are not included in the result and a
// trailing terminator does not produce an empty final line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := decodeBreak(text[i:])
		if size == 0 {
			i++
			continue
		}
		lines = append(lines, text[start:i])
		if r == '\r' && strings.HasPrefix(text[i+size:], "\n") {
			size++
		}
		i += size
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// decodeBreak returns the line-break rune at the start of s and its byte
// length, or size 0 when s does not start with a line break.
func decodeBreak(s string) (rune, int) {
	switch c := s[0]; c {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e:
		return rune(c), 1
	case 0xc2:
		if strings.HasPrefix(s, "\u0085") {
			return '\u0085', 2
		}
	case 0xe2:
		if strings.HasPrefix(s, "\u2028") {
			return '\u2028', 3
		}
		if strings.HasPrefix(s, "\u2029") {
			return '\u2029', 3
		}
	}
	return 0, 0
}
