package checkout

import (
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`\D`)
	cardRun   = regexp.MustCompile(`\d{4,16}`)
)

// FormatPhone normalizes raw phone input into a progressive
// "(DDD) DDD-DDDD" mask. Idempotent: formatting an already-formatted value
// returns it unchanged.
func FormatPhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > 10 {
		digits = digits[:10]
	}

	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

// FormatCardNumber strips non-digits, keeps the longest run matched by a
// 4-16 digit pattern, and groups it into space-separated chunks of 4.
func FormatCardNumber(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")

	run := cardRun.FindString(digits)
	if run == "" {
		return digits
	}

	var groups []string
	for i := 0; i < len(run); i += 4 {
		end := i + 4
		if end > len(run) {
			end = len(run)
		}
		groups = append(groups, run[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatExpiry strips non-digits and inserts "/" after the month once at
// least two digits are present, producing MM/YY.
func FormatExpiry(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > 4 {
		digits = digits[:4]
	}

	if len(digits) < 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}
