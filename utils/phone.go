package utils

import (
	"strings"
	"unicode"
)

// NormalizePhone strips everything but digits so "+63 917-555-0199" and
// "09175550199" compare on the same footing.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneMatches compares the last 6 digits of two phone numbers. Leading
// country-code differences (+63 vs 0 prefix) do not matter at that depth.
func PhoneMatches(stored, supplied string) bool {
	a := NormalizePhone(stored)
	b := NormalizePhone(supplied)
	if len(a) < 6 || len(b) < 6 {
		return a != "" && a == b
	}
	return a[len(a)-6:] == b[len(b)-6:]
}
