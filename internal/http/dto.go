package http

import (
	"keur/internal/core"
	"keur/internal/currency"
	"keur/internal/report"
)

// moneyView carries both raw integers and display strings so clients never
// re-implement the formatting rules.
type moneyView struct {
	BaseCents          int64  `json:"base_cents"`
	Secondary          int64  `json:"secondary"`
	FormattedBase      string `json:"formatted_base"`
	FormattedSecondary string `json:"formatted_secondary"`
}

func newMoneyView(p core.AmountPair, conv currency.Converter) moneyView {
	return moneyView{
		BaseCents:          p.BaseCents,
		Secondary:          p.Secondary,
		FormattedBase:      conv.FormatBase(p.BaseCents),
		FormattedSecondary: conv.FormatSecondary(p.Secondary),
	}
}

type bookingView struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	Channel    string    `json:"channel"`
	Status     string    `json:"status"`
	Revenue    moneyView `json:"revenue"`
}

func newBookingView(b core.Booking, conv currency.Converter) bookingView {
	return bookingView{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		CheckIn:    b.CheckIn.ISO(),
		CheckOut:   b.CheckOut.ISO(),
		Nights:     b.Nights(),
		Channel:    string(b.Channel),
		Status:     string(b.Status),
		Revenue:    newMoneyView(b.Revenue, conv),
	}
}

type expenseView struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id,omitempty"`
	Category   string    `json:"category"`
	Amount     moneyView `json:"amount"`
	Date       string    `json:"date"`
}

func newExpenseView(e core.Expense, conv currency.Converter) expenseView {
	return expenseView{
		ID:         e.ID,
		PropertyID: e.PropertyID,
		Category:   string(e.Category),
		Amount:     newMoneyView(e.Amount, conv),
		Date:       e.Date.ISO(),
	}
}

type investmentView struct {
	Purchase   moneyView `json:"purchase"`
	Renovation moneyView `json:"renovation"`
	Furniture  moneyView `json:"furniture"`
	Equipment  moneyView `json:"equipment"`
	Total      moneyView `json:"total"`
}

type propertyView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	NightlyRate moneyView       `json:"nightly_rate"`
	Investment  *investmentView `json:"investment,omitempty"`
}

func newPropertyView(p core.Property, conv currency.Converter) propertyView {
	view := propertyView{
		ID:          p.ID,
		Name:        p.Name,
		Status:      string(p.Status),
		NightlyRate: newMoneyView(p.NightlyRate, conv),
	}
	if p.Investment != nil {
		view.Investment = &investmentView{
			Purchase:   newMoneyView(p.Investment.Purchase, conv),
			Renovation: newMoneyView(p.Investment.Renovation, conv),
			Furniture:  newMoneyView(p.Investment.Furniture, conv),
			Equipment:  newMoneyView(p.Investment.Equipment, conv),
			Total:      newMoneyView(p.Investment.Total(), conv),
		}
	}
	return view
}

type categoryView struct {
	Category string    `json:"category"`
	Amount   moneyView `json:"amount"`
}

type channelView struct {
	Channel string  `json:"channel"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type summaryView struct {
	From             string         `json:"from"`
	To               string         `json:"to"`
	Revenue          moneyView      `json:"revenue"`
	Expenses         moneyView      `json:"expenses"`
	Net              moneyView      `json:"net"`
	NightsBooked     int            `json:"nights_booked"`
	OccupancyRate    float64        `json:"occupancy_rate"`
	AvgNightlyRate   float64        `json:"avg_nightly_rate"`
	ROI              float64        `json:"roi"`
	CancellationRate float64        `json:"cancellation_rate"`
	Categories       []categoryView `json:"categories"`
	Channels         []channelView  `json:"channels"`
}

func newSummaryView(s report.Summary, conv currency.Converter) summaryView {
	view := summaryView{
		From:             s.Range.Start.ISO(),
		To:               s.Range.End.ISO(),
		Revenue:          newMoneyView(s.Revenue, conv),
		Expenses:         newMoneyView(s.Expenses, conv),
		Net:              newMoneyView(s.Net, conv),
		NightsBooked:     s.NightsBooked,
		OccupancyRate:    s.OccupancyRate,
		AvgNightlyRate:   s.AvgNightlyRate,
		ROI:              s.ROI,
		CancellationRate: s.CancellationRate,
		Categories:       make([]categoryView, 0, len(s.Categories)),
		Channels:         make([]channelView, 0, len(s.Channels)),
	}
	for _, c := range s.Categories {
		view.Categories = append(view.Categories, categoryView{
			Category: string(c.Category),
			Amount:   newMoneyView(c.Amount, conv),
		})
	}
	for _, ch := range s.Channels {
		view.Channels = append(view.Channels, channelView{
			Channel: string(ch.Channel),
			Count:   ch.Count,
			Percent: ch.Percent,
		})
	}
	return view
}

type cashflowView struct {
	Month      string    `json:"month"`
	Net        moneyView `json:"net"`
	Cumulative moneyView `json:"cumulative"`
}

func newCashflowView(points []report.CashflowPoint, conv currency.Converter) []cashflowView {
	out := make([]cashflowView, 0, len(points))
	for _, p := range points {
		out = append(out, cashflowView{
			Month:      p.Range.Start.Format("2006-01"),
			Net:        newMoneyView(p.Net, conv),
			Cumulative: newMoneyView(p.Cumulative, conv),
		})
	}
	return out
}
