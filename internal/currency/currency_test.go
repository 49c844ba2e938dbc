package currency

import (
	"math"
	"testing"
)

func mustConverter(t *testing.T, rate float64) Converter {
	t.Helper()
	c, err := New(Config{Rate: rate})
	if err != nil {
		t.Fatalf("New(%v): %v", rate, err)
	}
	return c
}

func TestNewRejectsBadRates(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := New(Config{Rate: rate}); err == nil {
			t.Fatalf("rate %v expected error", rate)
		}
	}
}

func TestToSecondary(t *testing.T) {
	c := mustConverter(t, DefaultRate)
	cases := []struct {
		baseCents int64
		want      int64
	}{
		{10000, 65596}, // 100.00 base -> round(65595.7)
		{0, 0},
		{100, 656},  // 1.00 -> round(655.957)
		{25000, 163989},
	}
	for _, tc := range cases {
		if got := c.ToSecondary(tc.baseCents); got != tc.want {
			t.Fatalf("ToSecondary(%d) expected %d, got %d", tc.baseCents, tc.want, got)
		}
	}
}

func TestToBaseCents(t *testing.T) {
	c := mustConverter(t, DefaultRate)
	// 65596 FCFA -> 100.00 within a cent
	got := c.ToBaseCents(65596)
	if got < 9999 || got > 10001 {
		t.Fatalf("ToBaseCents(65596) expected ~10000, got %d", got)
	}
}

// Round-tripping loses at most the smaller unit on each leg; the result
// approximates the input but is not exact. That is expected rounding,
// not a defect.
func TestRoundTripTolerance(t *testing.T) {
	c := mustConverter(t, DefaultRate)
	for _, cents := range []int64{1, 99, 10000, 123456, 999999} {
		back := c.ToBaseCents(c.ToSecondary(cents))
		diff := back - cents
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			t.Fatalf("round trip of %d cents drifted by %d", cents, diff)
		}
	}
}

func TestFormatBase(t *testing.T) {
	c := mustConverter(t, DefaultRate)
	cases := []struct {
		cents int64
		want  string
	}{
		{150000, "1.500€"},
		{25000, "250€"},
		{25050, "251€"}, // half-up on dropped cents
		{0, "0€"},
		{-150000, "-1.500€"},
		{123456789, "1.234.568€"},
	}
	for _, tc := range cases {
		if got := c.FormatBase(tc.cents); got != tc.want {
			t.Fatalf("FormatBase(%d) expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestFormatSecondary(t *testing.T) {
	c := mustConverter(t, DefaultRate)
	cases := []struct {
		amount int64
		want   string
	}{
		{65596, "65.600 FCFA"}, // rounds UP to nearest 25
		{65600, "65.600 FCFA"},
		{1, "25 FCFA"},
		{0, "0 FCFA"},
		{164000, "164.000 FCFA"},
		{26, "50 FCFA"},
	}
	for _, tc := range cases {
		if got := c.FormatSecondary(tc.amount); got != tc.want {
			t.Fatalf("FormatSecondary(%d) expected %q, got %q", tc.amount, tc.want, got)
		}
	}
}

func TestPair(t *testing.T) {
	c := mustConverter(t, DefaultRate)
	p := c.Pair(10000)
	if p.BaseCents != 10000 || p.Secondary != 65596 {
		t.Fatalf("unexpected pair %+v", p)
	}
}
