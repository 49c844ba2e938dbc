package core

import (
	"testing"
	"time"
)

func TestDateRangeValidate(t *testing.T) {
	cases := []struct {
		r  DateRange
		ok bool
	}{
		{DateRange{Start: NewDate(2024, 1, 1), End: NewDate(2024, 1, 31)}, true},
		{DateRange{Start: NewDate(2024, 1, 15), End: NewDate(2024, 1, 15)}, true},
		{DateRange{Start: NewDate(2024, 2, 1), End: NewDate(2024, 1, 1)}, false},
		{DateRange{Start: Date{}, End: NewDate(2024, 1, 1)}, false},
		{DateRange{Start: NewDate(2024, 1, 1), End: Date{}}, false},
	}
	for i, tc := range cases {
		err := tc.r.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateRangeNights(t *testing.T) {
	cases := []struct {
		r    DateRange
		want int
	}{
		{DateRange{Start: NewDate(2024, 1, 1), End: NewDate(2024, 1, 31)}, 31},
		{DateRange{Start: NewDate(2024, 2, 1), End: NewDate(2024, 2, 29)}, 29}, // leap year
		{DateRange{Start: NewDate(2024, 1, 15), End: NewDate(2024, 1, 15)}, 1},
		{DateRange{Start: NewDate(2024, 2, 1), End: NewDate(2024, 1, 1)}, 0},
		{DateRange{}, 0},
	}
	for i, tc := range cases {
		if got := tc.r.Nights(); got != tc.want {
			t.Fatalf("case %d expected %d nights, got %d", i, tc.want, got)
		}
	}
}

func TestBookingValidate(t *testing.T) {
	good := Booking{
		PropertyID: "prop-1",
		CheckIn:    NewDate(2024, 1, 15),
		CheckOut:   NewDate(2024, 1, 20),
		Channel:    ChannelDirect,
		Status:     StatusConfirmed,
		Revenue:    AmountPair{BaseCents: 25000, Secondary: 164000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Booking)
		want   error
	}{
		{"empty property", func(b *Booking) { b.PropertyID = " " }, ErrEmptyPropertyID},
		{"zero check-in", func(b *Booking) { b.CheckIn = Date{} }, ErrInvalidDate},
		{"check-out equals check-in", func(b *Booking) { b.CheckOut = b.CheckIn }, ErrInvalidStay},
		{"check-out before check-in", func(b *Booking) { b.CheckOut = NewDate(2024, 1, 10) }, ErrInvalidStay},
		{"unknown channel", func(b *Booking) { b.Channel = "walkin" }, ErrInvalidChannel},
		{"unknown status", func(b *Booking) { b.Status = "pending" }, ErrInvalidStatus},
		{"negative revenue", func(b *Booking) { b.Revenue.BaseCents = -1 }, ErrNegativeAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := good
			tc.mutate(&b)
			if err := b.Validate(); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Category: CategoryCleaning,
		Amount:   AmountPair{BaseCents: 4000, Secondary: 26000},
		Date:     NewDate(2024, 1, 10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Category: CategoryCleaning, Amount: AmountPair{BaseCents: 1}},                                        // zero date
		{Category: "groceries", Amount: AmountPair{BaseCents: 1}, Date: NewDate(2024, 1, 1)},                  // unknown category
		{Category: CategoryRent, Amount: AmountPair{BaseCents: -1, Secondary: 1}, Date: NewDate(2024, 1, 1)},  // negative
		{Category: CategoryRent, Amount: AmountPair{}, Date: NewDate(2024, 1, 1)},                             // all zero
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestPropertyValidate(t *testing.T) {
	good := Property{
		Name:        "Villa Teranga",
		Status:      PropertyActive,
		NightlyRate: AmountPair{BaseCents: 8000, Secondary: 52000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	good.Investment = &Investment{Purchase: AmountPair{BaseCents: 10_000_000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok with investment, got %v", err)
	}

	bads := []Property{
		{Name: "", Status: PropertyActive},
		{Name: "a", Status: "for_sale"},
		{Name: "a", Status: PropertyActive, NightlyRate: AmountPair{BaseCents: -1}},
		{Name: "a", Status: PropertyActive, Investment: &Investment{Furniture: AmountPair{Secondary: -5}}},
	}
	for i, p := range bads {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestInvestmentTotal(t *testing.T) {
	inv := Investment{
		Purchase:   AmountPair{BaseCents: 100, Secondary: 1000},
		Renovation: AmountPair{BaseCents: 50, Secondary: 500},
		Furniture:  AmountPair{BaseCents: 25, Secondary: 250},
		Equipment:  AmountPair{BaseCents: 10, Secondary: 100},
	}
	got := inv.Total()
	if got.BaseCents != 185 || got.Secondary != 1850 {
		t.Fatalf("unexpected total %+v", got)
	}
}

func TestBookingNights(t *testing.T) {
	b := Booking{CheckIn: NewDate(2024, 1, 15), CheckOut: NewDate(2024, 1, 20)}
	if got := b.Nights(); got != 5 {
		t.Fatalf("expected 5 nights, got %d", got)
	}
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 3, 7, 23, 45, 0, 0, time.UTC)
	if got := DateOf(ts); got.ISO() != "2024-03-07" {
		t.Fatalf("expected 2024-03-07, got %s", got.ISO())
	}
}
