package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const utf8BOM = "\ufeff"

// Decode converts raw export bytes to text. UTF-8 is tried first (a leading
// byte-order mark is dropped), then UTF-16 honouring a BOM and defaulting to
// little-endian. Anything else is ErrUndecodable.
func Decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), utf8BOM), nil
	}
	if !validUTF16(raw) {
		return "", ErrUndecodable
	}

	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return string(out), nil
}

// validUTF16 reports whether raw is a whole number of code units with every
// surrogate correctly paired. The x/text decoder substitutes U+FFFD for bad
// sequences instead of failing, so this check runs first.
func validUTF16(raw []byte) bool {
	if len(raw)%2 != 0 {
		return false
	}
	bigEndian := len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF

	unit := func(i int) uint16 {
		if bigEndian {
			return uint16(raw[i])<<8 | uint16(raw[i+1])
		}
		return uint16(raw[i+1])<<8 | uint16(raw[i])
	}

	for i := 0; i < len(raw); i += 2 {
		u := unit(i)
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+2 >= len(raw) {
				return false
			}
			next := unit(i + 2)
			if next < 0xDC00 || next > 0xDFFF {
				return false
			}
			i += 2
		case u >= 0xDC00 && u <= 0xDFFF:
			return false
		}
	}
	return true
}
