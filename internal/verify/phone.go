package verify

import (
	"regexp"
	"strings"
)

// countryCodePrefix is stripped once from the front of a normalized phone
// number. The dataset is Finnish; numbers are stored both with and without
// the +358 country code while pages usually print the national format.
const countryCodePrefix = "358"

// minCandidateDigits filters out extracted matches too short to be real
// phone numbers (dates, numeric IDs).
const minCandidateDigits = 9

var (
	// phonePattern matches phone-shaped substrings: an optional leading "+",
	// up to four groups of 1-4 digits separated by spaces, dots, hyphens or
	// parentheses. Deliberately loose; downstream comparison is substring
	// containment over normalized digits.
	phonePattern = regexp.MustCompile(`\+?\(?\d{1,4}\)?[\s.-]?\(?\d{1,4}\)?[\s.-]?\d{1,4}[\s.-]?\d{1,4}`)

	nonDigits = regexp.MustCompile(`\D`)
)

// NormalizePhone reduces a raw phone string to a plain digit string for
// substring comparison. All non-digit characters are stripped and a leading
// country code prefix is removed once. Absent input yields an empty string;
// no length or format validation is applied.
func NormalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	digits := nonDigits.ReplaceAllString(raw, "")
	return strings.TrimPrefix(digits, countryCodePrefix)
}

// ExtractPhoneNumbers scans rendered page markup for phone-shaped substrings
// and returns them normalized to digit strings, in document order, duplicates
// kept. Matches with too few digits are discarded. The extraction is lossy by
// design: numeric false positives and markup-split false negatives are an
// accepted limitation.
func ExtractPhoneNumbers(content string) []string {
	matches := phonePattern.FindAllString(content, -1)

	var numbers []string
	for _, m := range matches {
		digits := nonDigits.ReplaceAllString(m, "")
		if len(digits) >= minCandidateDigits {
			numbers = append(numbers, digits)
		}
	}
	return numbers
}
