package utils

import (
	"fmt"
	"strings"
)

// NormalizePhoneNumber converts a US phone number to the +1XXXXXXXXXX format
// the SMS provider expects. Ten-digit numbers get the +1 prefix; eleven-digit
// numbers must already lead with 1. Anything else is rejected before a
// provider call is ever attempted.
func NormalizePhoneNumber(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch {
	case len(d) == 10:
		return "+1" + d, nil
	case len(d) == 11 && d[0] == '1':
		return "+" + d, nil
	default:
		return "", fmt.Errorf("invalid phone number %q: expected 10 digits or 11 digits with leading 1", raw)
	}
}
