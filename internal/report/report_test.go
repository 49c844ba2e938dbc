package report

import (
	"math"
	"testing"

	"keur/internal/core"
)

func january() core.DateRange {
	return core.DateRange{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 31)}
}

func booking(checkIn, checkOut core.Date, status core.BookingStatus, baseCents, secondary int64) core.Booking {
	return core.Booking{
		ID:         "b1",
		PropertyID: "p1",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Channel:    core.ChannelDirect,
		Status:     status,
		Revenue:    core.AmountPair{BaseCents: baseCents, Secondary: secondary},
	}
}

func activeProperty() core.Property {
	return core.Property{ID: "p1", Name: "Villa Teranga", Status: core.PropertyActive}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalRevenueEmptyWindow(t *testing.T) {
	got := TotalRevenue(nil, january())
	if got.BaseCents != 0 || got.Secondary != 0 {
		t.Fatalf("empty window expected {0,0}, got %+v", got)
	}
	if rate := OccupancyRate(nil, []core.Property{activeProperty()}, january()); rate != 0 {
		t.Fatalf("empty window expected occupancy 0, got %v", rate)
	}
}

// Concrete scenario from the dashboard: one confirmed direct booking
// Jan 15-20 for {250, 164000} in a January window with one property.
func TestJanuaryScenario(t *testing.T) {
	w := january()
	bookings := []core.Booking{
		booking(core.NewDate(2024, 1, 15), core.NewDate(2024, 1, 20), core.StatusConfirmed, 25000, 164000),
	}
	props := []core.Property{activeProperty()}

	rev := TotalRevenue(bookings, w)
	if rev.BaseCents != 25000 || rev.Secondary != 164000 {
		t.Fatalf("unexpected revenue %+v", rev)
	}
	if nights := NightsBooked(bookings, w); nights != 5 {
		t.Fatalf("expected 5 nights, got %d", nights)
	}
	occ := OccupancyRate(bookings, props, w)
	if !almostEqual(occ, 100.0*5.0/31.0) {
		t.Fatalf("expected occupancy %.4f, got %.4f", 100.0*5.0/31.0, occ)
	}
	if rate := AverageNightlyRate(bookings, w); !almostEqual(rate, 50.0) {
		t.Fatalf("expected avg nightly rate 50, got %v", rate)
	}
}

func TestJanuaryExpenseScenario(t *testing.T) {
	w := january()
	bookings := []core.Booking{
		booking(core.NewDate(2024, 1, 15), core.NewDate(2024, 1, 20), core.StatusConfirmed, 25000, 164000),
	}
	expenses := []core.Expense{
		{ID: "e1", Category: core.CategoryCleaning, Amount: core.AmountPair{BaseCents: 4000, Secondary: 26000}, Date: core.NewDate(2024, 1, 10)},
	}

	spent := TotalExpenses(expenses, w)
	if spent.BaseCents != 4000 || spent.Secondary != 26000 {
		t.Fatalf("unexpected expenses %+v", spent)
	}
	net := NetIncome(bookings, expenses, w)
	if net.BaseCents != 21000 || net.Secondary != 138000 {
		t.Fatalf("unexpected net income %+v", net)
	}
}

func TestCancelledBookingsExcluded(t *testing.T) {
	w := january()
	bookings := []core.Booking{
		booking(core.NewDate(2024, 1, 10), core.NewDate(2024, 1, 12), core.StatusCancelled, 10000, 65600),
	}
	if rev := TotalRevenue(bookings, w); rev.BaseCents != 0 {
		t.Fatalf("cancelled booking must not contribute revenue, got %+v", rev)
	}
	if nights := NightsBooked(bookings, w); nights != 0 {
		t.Fatalf("cancelled booking must not contribute nights, got %d", nights)
	}
	if rate := CancellationRate(bookings, w); !almostEqual(rate, 100) {
		t.Fatalf("expected 100%% cancellation rate, got %v", rate)
	}
}

func TestNightsClampedToWindow(t *testing.T) {
	w := january()
	cases := []struct {
		name     string
		checkIn  core.Date
		checkOut core.Date
		want     int
	}{
		{"fully inside", core.NewDate(2024, 1, 15), core.NewDate(2024, 1, 20), 5},
		{"straddles start", core.NewDate(2023, 12, 28), core.NewDate(2024, 1, 3), 2},  // checkOut − W_start
		{"straddles end", core.NewDate(2024, 1, 30), core.NewDate(2024, 2, 2), 1},     // W_end − checkIn
		{"spans whole window", core.NewDate(2023, 12, 1), core.NewDate(2024, 3, 1), 30}, // W_end − W_start
		{"touches boundary only", core.NewDate(2024, 1, 31), core.NewDate(2024, 2, 5), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := []core.Booking{booking(tc.checkIn, tc.checkOut, core.StatusConfirmed, 0, 0)}
			if got := NightsBooked(bookings, w); got != tc.want {
				t.Fatalf("expected %d nights, got %d", tc.want, got)
			}
		})
	}
}

func TestNightsNeverNegative(t *testing.T) {
	// A stay before the window overlaps nothing and must contribute 0,
	// not a negative count.
	w := january()
	bookings := []core.Booking{
		booking(core.NewDate(2023, 11, 1), core.NewDate(2023, 11, 5), core.StatusConfirmed, 0, 0),
	}
	if got := NightsBooked(bookings, w); got != 0 {
		t.Fatalf("expected 0 nights, got %d", got)
	}
}

func TestNetIncomeIdentity(t *testing.T) {
	w := january()
	expenses := []core.Expense{
		{Category: core.CategoryRent, Amount: core.AmountPair{BaseCents: 50000, Secondary: 328000}, Date: core.NewDate(2024, 1, 1)},
	}
	// Window with expenses but no revenue: negative net is allowed.
	net := NetIncome(nil, expenses, w)
	if net.BaseCents != -50000 || net.Secondary != -328000 {
		t.Fatalf("expected negative net, got %+v", net)
	}

	bookings := []core.Booking{
		booking(core.NewDate(2024, 1, 2), core.NewDate(2024, 1, 4), core.StatusCompleted, 30000, 196800),
	}
	net = NetIncome(bookings, expenses, w)
	want := TotalRevenue(bookings, w).BaseCents - TotalExpenses(expenses, w).BaseCents
	if net.BaseCents != want {
		t.Fatalf("net income identity violated: %d != %d", net.BaseCents, want)
	}
}

func TestOccupancyGuards(t *testing.T) {
	w := january()
	bookings := []core.Booking{
		booking(core.NewDate(2024, 1, 15), core.NewDate(2024, 1, 20), core.StatusConfirmed, 0, 0),
	}
	if rate := OccupancyRate(bookings, nil, w); rate != 0 {
		t.Fatalf("no properties expected 0, got %v", rate)
	}
	inverted := core.DateRange{Start: core.NewDate(2024, 2, 1), End: core.NewDate(2024, 1, 1)}
	if rate := OccupancyRate(bookings, []core.Property{activeProperty()}, inverted); rate != 0 {
		t.Fatalf("inverted window expected 0, got %v", rate)
	}
	if rate := AverageNightlyRate(nil, w); rate != 0 {
		t.Fatalf("no nights expected 0, got %v", rate)
	}
}

func TestActiveProperties(t *testing.T) {
	props := []core.Property{
		{ID: "p1", Status: core.PropertyActive},
		{ID: "p2", Status: core.PropertyMaintenance},
		{ID: "p3", Status: core.PropertyInactive},
		{ID: "p4", Status: core.PropertyActive},
	}
	got := ActiveProperties(props)
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p4" {
		t.Fatalf("expected p1 and p4, got %+v", got)
	}
	if out := ActiveProperties(nil); len(out) != 0 {
		t.Fatalf("expected empty result for nil input, got %+v", out)
	}
}

func TestROI(t *testing.T) {
	w := january()
	inv := &core.Investment{
		Purchase:   core.AmountPair{BaseCents: 8_000_000},
		Renovation: core.AmountPair{BaseCents: 1_500_000},
		Furniture:  core.AmountPair{BaseCents: 400_000},
		Equipment:  core.AmountPair{BaseCents: 100_000},
	}
	props := []core.Property{
		{ID: "p1", Name: "a", Status: core.PropertyActive, Investment: inv},
		{ID: "p2", Name: "b", Status: core.PropertyInactive, Investment: inv}, // excluded
		{ID: "p3", Name: "c", Status: core.PropertyActive},                    // no investment recorded
	}
	total := TotalInvestment(props)
	if total.BaseCents != 10_000_000 {
		t.Fatalf("expected investment of active property only, got %d", total.BaseCents)
	}

	bookings := []core.Booking{
		booking(core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 11), core.StatusCompleted, 100_000, 655957),
	}
	got := ROI(bookings, nil, props, w)
	if !almostEqual(got, 1.0) {
		t.Fatalf("expected ROI 1%%, got %v", got)
	}

	// No recorded investment: ROI reported as 0, not infinity.
	if got := ROI(bookings, nil, nil, w); got != 0 {
		t.Fatalf("expected ROI 0 without investment, got %v", got)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	w := january()
	expenses := []core.Expense{
		{Category: core.CategoryCleaning, Amount: core.AmountPair{BaseCents: 4000, Secondary: 26000}, Date: core.NewDate(2024, 1, 10)},
		{Category: core.CategoryCleaning, Amount: core.AmountPair{BaseCents: 1000, Secondary: 6500}, Date: core.NewDate(2024, 1, 20)},
		{Category: core.CategoryUtilities, Amount: core.AmountPair{BaseCents: 2000, Secondary: 13100}, Date: core.NewDate(2024, 1, 5)},
		{Category: core.CategoryRent, Amount: core.AmountPair{BaseCents: 9000, Secondary: 59000}, Date: core.NewDate(2024, 2, 1)}, // outside window
	}

	got := CategoryBreakdown(expenses, w)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d: %+v", len(got), got)
	}
	if got[0].Category != core.CategoryCleaning || got[0].Amount.BaseCents != 5000 {
		t.Fatalf("unexpected first entry %+v", got[0])
	}
	if got[1].Category != core.CategoryUtilities || got[1].Amount.Secondary != 13100 {
		t.Fatalf("unexpected second entry %+v", got[1])
	}

	// Seeding pins zero categories so chart legends stay stable.
	seeded := CategoryBreakdown(expenses, w, core.CategoryRent, core.CategoryCleaning)
	if len(seeded) != 3 {
		t.Fatalf("expected 3 seeded categories, got %d", len(seeded))
	}
	last := seeded[len(seeded)-1]
	if last.Category != core.CategoryRent || last.Amount.BaseCents != 0 {
		t.Fatalf("expected zero rent entry, got %+v", last)
	}
}

func TestChannelBreakdown(t *testing.T) {
	w := january()
	mk := func(ch core.Channel) core.Booking {
		b := booking(core.NewDate(2024, 1, 2), core.NewDate(2024, 1, 4), core.StatusConfirmed, 0, 0)
		b.Channel = ch
		return b
	}
	bookings := []core.Booking{
		mk(core.ChannelDirect), mk(core.ChannelDirect), mk(core.ChannelAirbnb), mk(core.ChannelBooking),
	}

	got := ChannelBreakdown(bookings, w)
	if len(got) != 4 {
		t.Fatalf("expected all 4 channels, got %d", len(got))
	}
	sum := 0.0
	for _, s := range got {
		sum += s.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages of a non-empty window must sum to 100, got %v", sum)
	}
	if got[0].Channel != core.ChannelDirect || !almostEqual(got[0].Percent, 50) {
		t.Fatalf("unexpected direct share %+v", got[0])
	}

	// Zero bookings: all percentages are 0, not NaN.
	for _, s := range ChannelBreakdown(nil, w) {
		if s.Percent != 0 || s.Count != 0 {
			t.Fatalf("empty window expected all-zero shares, got %+v", s)
		}
	}
}

func TestSummarizeComposes(t *testing.T) {
	w := january()
	bookings := []core.Booking{
		booking(core.NewDate(2024, 1, 15), core.NewDate(2024, 1, 20), core.StatusConfirmed, 25000, 164000),
	}
	expenses := []core.Expense{
		{Category: core.CategoryCleaning, Amount: core.AmountPair{BaseCents: 4000, Secondary: 26000}, Date: core.NewDate(2024, 1, 10)},
	}
	s := Summarize(bookings, expenses, []core.Property{activeProperty()}, w)
	if s.Net.BaseCents != 21000 || s.Net.Secondary != 138000 {
		t.Fatalf("unexpected net %+v", s.Net)
	}
	if s.NightsBooked != 5 || len(s.Channels) != 4 || len(s.Categories) != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
