package customersvc

import (
	"errors"
	"strings"
)

// NormalizePhone canonicalizes a phone number to international dial format:
// separators stripped, the 00 prefix rewritten to +, and a bare national
// number prefixed with the default country code. Normalizing an already
// canonical number returns it unchanged.
func NormalizePhone(raw, defaultCountryCode string) (string, error) {
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// separator, drop
		default:
			return "", errors.New("invalid character in phone number")
		}
	}

	n := b.String()
	switch {
	case strings.HasPrefix(n, "+"):
	case strings.HasPrefix(n, "00"):
		n = "+" + n[2:]
	case n != "":
		n = defaultCountryCode + n
	}

	digits := strings.TrimPrefix(n, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return "", errors.New("phone number must have 7 to 15 digits")
	}
	return n, nil
}
