package verify

import (
	"regexp"
	"strconv"
	"strings"
)

// Numeric tokens that qualify as ABV candidates: adjacent to a percent sign
// or to the literal "ALC" marker (as in "ALC/VOL", "ALC. 45% BY VOL").
var (
	pctTokenRE  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	alcBeforeRE = regexp.MustCompile(`alc[^0-9%]{0,10}(\d+(?:\.\d+)?)`)
	alcAfterRE  = regexp.MustCompile(`(\d+(?:\.\d+)?)[^0-9%]{0,10}alc`)
)

// matchText reports whether expected occurs as a contiguous substring of the
// extracted text once both are normalized. On a match it returns the minimal
// snippet of the original (non-normalized) text responsible for it; when the
// snippet cannot be projected back, the normalized expected value stands in.
//
// Substring (not equality) matching is deliberate: OCR output carries the
// whole label, taglines and boilerplate included. The flip side is that a
// short submitted value can match inside an unrelated longer word; no
// word-boundary heuristic is applied.
func matchText(expected, extracted string) (bool, string) {
	want := normalizeText(expected)
	if want == "" {
		return false, ""
	}
	norm, offs := normalizeWithOffsets(extracted)
	idx := strings.Index(norm, want)
	if idx < 0 {
		return false, ""
	}
	end := idx + len(want)
	if idx < len(offs) && end <= len(offs) {
		start := offs[idx][0]
		stop := offs[end-1][1]
		return true, strings.TrimSpace(extracted[start:stop])
	}
	return true, want
}

// matchNumber scans the extracted text for ABV candidates and reports
// whether any is numerically equal to want. Equality is exact after both
// sides are parsed, so "45" matches "45.0%" but not "450%"; no tolerance
// band is applied.
func matchNumber(want float64, extracted string) (bool, string) {
	norm := normalizeText(extracted)
	for _, re := range []*regexp.Regexp{pctTokenRE, alcBeforeRE, alcAfterRE} {
		for _, m := range re.FindAllStringSubmatch(norm, -1) {
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if n == want {
				return true, strings.TrimSpace(m[0])
			}
		}
	}
	return false, ""
}
