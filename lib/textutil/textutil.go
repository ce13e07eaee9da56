package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Trim(whitespaceRegex.ReplaceAllString(s, " "), " ")
}

// ContainsAny reports whether the lower-cased haystack contains any of the
// given keywords.
func ContainsAny(haystack string, keywords []string) bool {
	haystack = strings.ToLower(haystack)
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}

var percentRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
var numberRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// ExtractPercent pulls a numeric percentage out of free-form text.
// It prefers a number immediately followed by a % sign, then falls back to
// the first number in the text, since the portal sometimes renders the %
// glyph as a separate element.
func ExtractPercent(s string) (float64, bool) {
	groups := percentRegex.FindStringSubmatch(s)
	if groups == nil {
		groups = numberRegex.FindStringSubmatch(s)
	}
	if groups == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ExtractPercentStrict is ExtractPercent without the bare-number fallback,
// the % sign must be present.
func ExtractPercentStrict(s string) (float64, bool) {
	groups := percentRegex.FindStringSubmatch(s)
	if groups == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

var fractionRegex = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

// ExtractFraction pulls a "present / total" integer pair out of text.
func ExtractFraction(s string) (int, int, bool) {
	groups := fractionRegex.FindStringSubmatch(s)
	if groups == nil {
		return 0, 0, false
	}
	numerator, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, 0, false
	}
	denominator, err := strconv.Atoi(groups[2])
	if err != nil {
		return 0, 0, false
	}
	return numerator, denominator, true
}
