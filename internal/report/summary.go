package report

import "keur/internal/core"

// Summary bundles every dashboard aggregate for one window. It is the
// unit consumed by the KPI endpoints, the Excel export and the hosted
// sheet sync.
type Summary struct {
	Range            core.DateRange
	Revenue          core.AmountPair
	Expenses         core.AmountPair
	Net              core.AmountPair
	NightsBooked     int
	OccupancyRate    float64
	AvgNightlyRate   float64
	ROI              float64
	CancellationRate float64
	Categories       []CategoryAmount
	Channels         []ChannelShare
}

// CashflowPoint is one period of the cumulative cashflow series.
type CashflowPoint struct {
	Range      core.DateRange
	Net        core.AmountPair
	Cumulative core.AmountPair
}

// Summarize computes the full aggregate set for one window. The
// property list must already be filtered to the active/selected set.
func Summarize(bookings []core.Booking, expenses []core.Expense, properties []core.Property, r core.DateRange) Summary {
	revenue := TotalRevenue(bookings, r)
	spent := TotalExpenses(expenses, r)
	return Summary{
		Range:            r,
		Revenue:          revenue,
		Expenses:         spent,
		Net:              revenue.Sub(spent),
		NightsBooked:     NightsBooked(bookings, r),
		OccupancyRate:    OccupancyRate(bookings, properties, r),
		AvgNightlyRate:   AverageNightlyRate(bookings, r),
		ROI:              ROI(bookings, expenses, properties, r),
		CancellationRate: CancellationRate(bookings, r),
		Categories:       CategoryBreakdown(expenses, r),
		Channels:         ChannelBreakdown(bookings, r),
	}
}

// CashflowSeries folds per-period net income into a running sum in
// chronological period order. The first point's cumulative value equals
// its own net income.
func CashflowSeries(bookings []core.Booking, expenses []core.Expense, periods []core.DateRange) []CashflowPoint {
	var running core.AmountPair
	out := make([]CashflowPoint, 0, len(periods))
	for _, p := range periods {
		net := NetIncome(bookings, expenses, p)
		running = running.Add(net)
		out = append(out, CashflowPoint{Range: p, Net: net, Cumulative: running})
	}
	return out
}
