// Package core holds the shared data model: transactions, amounts and the
// per-category summary computation.
//
// This file contains amount parsing and formatting. Amounts are kept in
// cents to avoid floating-point drift in sums.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseCents converts a statement amount string to signed cents.
//
// It strips thousands separators (commas) and surrounding whitespace,
// accepts an optional leading sign and a dot decimal separator, and
// half-up rounds on the third decimal place.
//
// Examples:
//
//	ParseCents("4.50")     -> 450, nil
//	ParseCents("1,234.56") -> 123456, nil
//	ParseCents("-15.00")   -> -1500, nil
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Thousands separators are noise in this format.
	s = strings.ReplaceAll(s, ",", "")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return cents, nil
}

// ParseAmount wraps ParseCents into an Amount. A cell that fails numeric
// coercion yields an invalid Amount rather than an error: the row is kept
// for display and only excluded from sums.
func ParseAmount(s string) Amount {
	cents, err := ParseCents(s)
	if err != nil {
		return Amount{}
	}
	return Amount{Cents: cents, Valid: true}
}

// String formats the amount as a plain decimal for display. Invalid
// amounts render empty.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	cents := a.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
