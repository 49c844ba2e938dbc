// Package core holds the domain model shared by every other package:
// bookings, expenses, properties, dual-currency amounts and the
// inclusive date ranges that drive all aggregation.
//
// This file contains parsing helpers for monetary amounts and dates as
// they arrive on the API boundary.
package core

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

const dateLayout = "2006-01-02"

// ParseDecimalToCents converts a decimal string in the base currency to
// cents with half-up rounding on the third decimal place.
//
// Both dot (12.34) and comma (12,34) separators are accepted. Negative
// values are rejected; zero is allowed (comped stays carry no revenue).
//
// Examples:
//
//	ParseDecimalToCents("250")    -> 25000, nil
//	ParseDecimalToCents("12,34")  -> 1234, nil
//	ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
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
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
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
	// First two fractional digits are cents; the third decides rounding.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// ParseDate parses an ISO calendar date (2006-01-02) into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO formats the date as an ISO calendar date (2006-01-02).
func (d Date) ISO() string {
	return d.Format(dateLayout)
}
