// Package report computes the financial aggregates behind the
// dashboard: revenue, expenses, occupancy, nightly rates, net income,
// ROI and the per-category and per-channel breakdowns.
//
// Every function is a pure fold over slices the caller already fetched
// and validated. They never mutate their inputs, never raise, and
// return a defined zero for all-empty input. Records are assumed
// well-formed; validation happens at ingestion, not here.
package report

import "keur/internal/core"

// CategoryAmount is an expense total for one category.
type CategoryAmount struct {
	Category core.ExpenseCategory
	Amount   core.AmountPair
}

// ChannelShare is the share of active bookings acquired through one
// channel within a window.
type ChannelShare struct {
	Channel core.Channel
	Count   int
	Percent float64
}

// ActiveInRange reports whether a booking counts toward revenue and
// occupancy in the window: not cancelled, and its stay interval
// overlaps the window (checkIn ≤ end AND checkOut ≥ start). The stay
// does not need to start or end inside the window.
func ActiveInRange(b core.Booking, r core.DateRange) bool {
	if b.Status == core.StatusCancelled {
		return false
	}
	return !b.CheckIn.After(r.End.Time) && !b.CheckOut.Before(r.Start.Time)
}

// TotalRevenue sums booking revenue in both currencies over the active
// bookings in the window. Empty window yields {0, 0}.
func TotalRevenue(bookings []core.Booking, r core.DateRange) core.AmountPair {
	var total core.AmountPair
	for _, b := range bookings {
		if ActiveInRange(b, r) {
			total = total.Add(b.Revenue)
		}
	}
	return total
}

// TotalExpenses sums expense amounts in both currencies for expenses
// whose effective date falls inside the inclusive window.
func TotalExpenses(expenses []core.Expense, r core.DateRange) core.AmountPair {
	var total core.AmountPair
	for _, e := range expenses {
		if r.Contains(e.Date) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// NightsBooked counts the nights of active stays clamped to the
// window: min(checkOut, end) − max(checkIn, start), never negative.
// A stay fully inside the window contributes checkOut − checkIn exactly.
func NightsBooked(bookings []core.Booking, r core.DateRange) int {
	nights := 0
	for _, b := range bookings {
		if !ActiveInRange(b, r) {
			continue
		}
		nights += overlapNights(b, r)
	}
	return nights
}

func overlapNights(b core.Booking, r core.DateRange) int {
	start := b.CheckIn
	if start.Before(r.Start.Time) {
		start = r.Start
	}
	end := b.CheckOut
	if end.After(r.End.Time) {
		end = r.End
	}
	n := start.DaysUntil(end)
	if n < 0 {
		return 0
	}
	return n
}

// OccupancyRate is the percentage of available nights actually booked:
// 100 × nightsBooked / (propertyCount × windowNights). The property
// list must already be filtered to the active/selected set. Zero when
// no properties are supplied or the window is empty.
func OccupancyRate(bookings []core.Booking, properties []core.Property, r core.DateRange) float64 {
	available := len(properties) * r.Nights()
	if available <= 0 {
		return 0
	}
	return 100 * float64(NightsBooked(bookings, r)) / float64(available)
}

// AverageNightlyRate is base-currency revenue per booked night, zero
// when nothing was booked.
func AverageNightlyRate(bookings []core.Booking, r core.DateRange) float64 {
	nights := NightsBooked(bookings, r)
	if nights == 0 {
		return 0
	}
	return TotalRevenue(bookings, r).Base() / float64(nights)
}

// NetIncome is revenue minus expenses per currency. Negative results
// are allowed: a window with expenses but no revenue is a loss.
func NetIncome(bookings []core.Booking, expenses []core.Expense, r core.DateRange) core.AmountPair {
	return TotalRevenue(bookings, r).Sub(TotalExpenses(expenses, r))
}

// ActiveProperties narrows a portfolio to the properties that count in
// occupancy and investment denominators. Maintenance and inactive
// properties keep their bookings and expenses in the totals; they only
// stop contributing available nights and capital.
func ActiveProperties(properties []core.Property) []core.Property {
	out := make([]core.Property, 0, len(properties))
	for _, p := range properties {
		if p.Status == core.PropertyActive {
			out = append(out, p)
		}
	}
	return out
}

// TotalInvestment sums purchase, renovation, furniture and equipment
// over active properties only. Rent is deliberately excluded from the
// investment base; it shows up as a recurring expense instead.
func TotalInvestment(properties []core.Property) core.AmountPair {
	var total core.AmountPair
	for _, p := range properties {
		if p.Status != core.PropertyActive || p.Investment == nil {
			continue
		}
		total = total.Add(p.Investment.Total())
	}
	return total
}

// ROI is net income over the window as a percentage of the total
// investment in active properties. Reported as 0 when there is no
// recorded investment to divide by.
func ROI(bookings []core.Booking, expenses []core.Expense, properties []core.Property, r core.DateRange) float64 {
	investment := TotalInvestment(properties).BaseCents
	if investment <= 0 {
		return 0
	}
	net := NetIncome(bookings, expenses, r).BaseCents
	return 100 * float64(net) / float64(investment)
}

// CategoryBreakdown groups window expenses by category, summing both
// currencies. Categories with no matching expense are omitted unless
// listed in seed, which pins them at zero so chart legends stay stable
// across months. Results follow the canonical category order.
func CategoryBreakdown(expenses []core.Expense, r core.DateRange, seed ...core.ExpenseCategory) []CategoryAmount {
	sums := make(map[core.ExpenseCategory]core.AmountPair)
	for _, e := range expenses {
		if r.Contains(e.Date) {
			sums[e.Category] = sums[e.Category].Add(e.Amount)
		}
	}
	seeded := make(map[core.ExpenseCategory]bool, len(seed))
	for _, c := range seed {
		seeded[c] = true
	}
	var out []CategoryAmount
	for _, c := range core.ExpenseCategories() {
		amount, present := sums[c]
		if !present && !seeded[c] {
			continue
		}
		out = append(out, CategoryAmount{Category: c, Amount: amount})
	}
	return out
}

// ChannelBreakdown counts active bookings per source channel in the
// window and expresses each as a percentage of the total. Every channel
// is always present in the result; a window with zero bookings yields
// all-zero percentages, never NaN.
func ChannelBreakdown(bookings []core.Booking, r core.DateRange) []ChannelShare {
	counts := make(map[core.Channel]int)
	total := 0
	for _, b := range bookings {
		if ActiveInRange(b, r) {
			counts[b.Channel]++
			total++
		}
	}
	out := make([]ChannelShare, 0, len(core.Channels()))
	for _, ch := range core.Channels() {
		share := ChannelShare{Channel: ch, Count: counts[ch]}
		if total > 0 {
			share.Percent = 100 * float64(counts[ch]) / float64(total)
		}
		out = append(out, share)
	}
	return out
}

// CancellationRate is the percentage of bookings overlapping the window
// that were cancelled. Unlike the revenue aggregates, cancelled stays
// count here: that is the whole point of the metric.
func CancellationRate(bookings []core.Booking, r core.DateRange) float64 {
	total, cancelled := 0, 0
	for _, b := range bookings {
		if b.CheckIn.After(r.End.Time) || b.CheckOut.Before(r.Start.Time) {
			continue
		}
		total++
		if b.Status == core.StatusCancelled {
			cancelled++
		}
	}
	if total == 0 {
		return 0
	}
	return 100 * float64(cancelled) / float64(total)
}
