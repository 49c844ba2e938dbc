// Package currency converts and formats monetary values between the
// base currency (euro, kept in cents) and the secondary currency
// (CFA franc, whole units only).
//
// The exchange rate lives in an explicit Converter value handed to the
// callers that need it; there is no package-level mutable state.
package currency

import (
	"errors"
	"math"
	"strconv"

	"keur/internal/core"
)

// DefaultRate is the fixed EUR/XOF peg, used when no rate is configured.
const DefaultRate = 655.957

var ErrInvalidRate = errors.New("exchange rate must be a positive finite number")

// Config describes a converter: the base→secondary exchange rate plus
// the display affixes for both currencies.
type Config struct {
	Rate            float64
	BaseSymbol      string // appended without a space, e.g. "€"
	SecondarySuffix string // appended after a space, e.g. "FCFA"
}

// Converter converts between the two tracked currencies at a fixed
// rate. The zero value is not usable; build one with New.
type Converter struct {
	rate            float64
	baseSymbol      string
	secondarySuffix string
}

// New validates the configuration and returns a ready Converter.
// Non-finite or non-positive rates are rejected rather than silently
// propagating NaN through every aggregate downstream.
func New(cfg Config) (Converter, error) {
	if math.IsNaN(cfg.Rate) || math.IsInf(cfg.Rate, 0) || cfg.Rate <= 0 {
		return Converter{}, ErrInvalidRate
	}
	c := Converter{
		rate:            cfg.Rate,
		baseSymbol:      cfg.BaseSymbol,
		secondarySuffix: cfg.SecondarySuffix,
	}
	if c.baseSymbol == "" {
		c.baseSymbol = "€"
	}
	if c.secondarySuffix == "" {
		c.secondarySuffix = "FCFA"
	}
	return c, nil
}

// Rate returns the configured base→secondary exchange rate.
func (c Converter) Rate() float64 {
	return c.rate
}

// BaseSymbol returns the display symbol of the base currency.
func (c Converter) BaseSymbol() string {
	return c.baseSymbol
}

// SecondarySuffix returns the display suffix of the secondary currency.
func (c Converter) SecondarySuffix() string {
	return c.secondarySuffix
}

// ToSecondary converts base-currency cents to whole secondary units,
// rounding half-up on the final unit.
func (c Converter) ToSecondary(baseCents int64) int64 {
	return roundHalfUp(float64(baseCents) / 100.0 * c.rate)
}

// ToBaseCents converts whole secondary units to base-currency cents,
// rounding half-up on the final cent.
func (c Converter) ToBaseCents(secondary int64) int64 {
	return roundHalfUp(float64(secondary) / c.rate * 100.0)
}

// Pair builds a dual-currency amount from base cents using the
// configured rate for the secondary leg.
func (c Converter) Pair(baseCents int64) core.AmountPair {
	return core.AmountPair{BaseCents: baseCents, Secondary: c.ToSecondary(baseCents)}
}

// FormatBase renders base cents with zero decimal places, a dot as
// thousands separator and the symbol appended without a space:
// 150000 cents -> "1.500€".
func (c Converter) FormatBase(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	units := (cents + 50) / 100 // half-up on the dropped cents
	s := groupThousands(units) + c.baseSymbol
	if neg {
		return "-" + s
	}
	return s
}

// FormatSecondary rounds the amount UP to the nearest multiple of 25
// (the smallest coin in circulation) and appends the currency code:
// 65596 -> "65.600 FCFA".
func (c Converter) FormatSecondary(amount int64) string {
	neg := amount < 0
	v := ceilTo(amount, 25)
	if neg {
		return "-" + groupThousands(-v) + " " + c.secondarySuffix
	}
	return groupThousands(v) + " " + c.secondarySuffix
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// ceilTo rounds v toward positive infinity to a multiple of step.
func ceilTo(v, step int64) int64 {
	q := v / step
	if v%step != 0 && v > 0 {
		q++
	}
	return q * step
}

// groupThousands renders a non-negative integer with dots every three
// digits, the convention used on both sides of the ledger.
func groupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, '.')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
