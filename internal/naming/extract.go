package naming

import (
	"regexp"
	"strings"

	"github.com/banaszakw/dir-maker/internal/model"
)

// wordRun matches a maximal run of word characters. Letters and numbers
// are matched across all scripts so that names such as "ŁÓDŹ_01" survive
// extraction intact.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// HasWord reports whether s contains at least one word character.
func HasWord(s string) bool {
	return wordRun.MatchString(s)
}

// Extract returns the first run of word characters of every line of
// rawInput, in line order. Lines without word characters are skipped,
// duplicates are kept.
func Extract(rawInput string) []string {
	var ids []string
	// Empty lines never contain a word run, so FieldsFunc dropping them
	// does not change the result.
	for _, line := range strings.FieldsFunc(rawInput, isLineBreak) {
		// FindString returns the leftmost run, so leading punctuation and
		// spaces are skipped and everything after the run is ignored.
		if id := wordRun.FindString(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// isLineBreak reports whether r terminates a line. The set matches the
// universal-newline characters text editors and clipboards produce,
// including the Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}

// ApplyBrand appends "_" + brand to every identifier. When brand is empty
// or model.NoBrand the identifiers are returned unchanged. The result
// always has the same length and order as ids.
func ApplyBrand(ids []string, brand string) []string {
	suffix := model.UsesBrandSuffix(brand)

	// A new slice: callers may still use ids after the call.
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if suffix {
			id += model.BrandDelimiter + brand
		}
		names = append(names, id)
	}
	return names
}

// Targets runs Extract and ApplyBrand for an order.
func Targets(o model.Order) []string {
	return ApplyBrand(Extract(o.RawInput), o.Brand)
}
