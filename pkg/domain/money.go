package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a normalized currency amount.
type Money float64

// ParseMoney extracts the first number from free text such as "$12,000", "12000.50 USD"
// or "Rs. 1,50,000 per year". Amounts use "." for decimals and "," for digit
// grouping, which is dropped. A "," after the decimal point (as in "12.000,50")
// and text without any digit yield ErrInvalidMoney.
func ParseMoney(s string) (Money, error) {
	var b strings.Builder
	started := false
	seenDot := false
	var prev rune

	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			started = true
			b.WriteRune(r)
		case r == ',' && started:
			if i+1 >= len(s) || s[i+1] < '0' || s[i+1] > '9' {
				return finishMoney(s, b.String())
			}
			if seenDot {
				return 0, fmt.Errorf("%w: %q: comma after decimal point", ErrInvalidMoney, s)
			}
		case r == '.' && !seenDot:
			// A dot ending a word ("Rs.5") is an abbreviation, not a decimal point.
			leading := !unicode.IsLetter(prev) && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9'
			if started || leading {
				seenDot = true
				started = true
				b.WriteRune(r)
			}
		default:
			if started {
				return finishMoney(s, b.String())
			}
		}
		prev = r
	}
	if !started {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	return finishMoney(s, b.String())
}

func finishMoney(raw, digits string) (Money, error) {
	digits = strings.TrimSuffix(digits, ".")
	if digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, raw)
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidMoney, raw, err)
	}
	return Money(v), nil
}

// Less reports whether m is strictly cheaper than other.
func (m Money) Less(other Money) bool {
	return m < other
}

// String formats the amount with a dollar sign, dropping cents on whole values.
func (m Money) String() string {
	v := float64(m)
	if v == math.Trunc(v) {
		return "$" + strconv.FormatFloat(v, 'f', 0, 64)
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
