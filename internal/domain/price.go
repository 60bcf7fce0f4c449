package domain

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ParsePrice strips one leading currency symbol (Unicode class Sc) and parses the remaining
// digits as a non-negative integer, e.g. "₹80" -> 80.
func ParsePrice(price string) (int64, error) {
	digits := price
	if r, size := utf8.DecodeRuneInString(price); unicode.Is(unicode.Sc, r) {
		digits = price[size:]
	}

	if digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, price)
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, price)
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedPrice, price, err)
	}

	return value, nil
}
