package verify

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var numberRE = regexp.MustCompile(`\d+(?:\.\d+)?`)

// normalizeText lowercases, trims, and collapses every whitespace run
// (newlines included) to a single space.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalizeNumber extracts the first numeric token (integer or decimal) from
// a raw value like "45% ALC/VOL", ignoring the surrounding characters.
// Returns ErrNoNumber when the value carries no digits.
func normalizeNumber(s string) (float64, error) {
	tok := numberRE.FindString(s)
	if tok == "" {
		return 0, ErrNoNumber
	}
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, ErrNoNumber
	}
	return n, nil
}

// normalizeWithOffsets applies the same transform as normalizeText while
// recording, for every byte of the output, the byte range of the input it
// came from. A match found in the normalized text can then be projected back
// onto the original OCR output for display.
func normalizeWithOffsets(s string) (string, [][2]int) {
	var b strings.Builder
	var offs [][2]int
	pendingSpace := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			offs = append(offs, [2]int{i, i})
			pendingSpace = false
		}
		lr := unicode.ToLower(r)
		b.WriteRune(lr)
		for k := 0; k < utf8.RuneLen(lr); k++ {
			offs = append(offs, [2]int{i, i + utf8.RuneLen(r)})
		}
	}
	return b.String(), offs
}
