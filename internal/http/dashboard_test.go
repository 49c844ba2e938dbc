package http

import (
	"net/http"
	"testing"
)

func seedJanuary(t *testing.T, s *Server) {
	t.Helper()

	if rec := do(t, s, http.MethodPost, "/api/properties", `{"name":"Almadies Flat","nightly_rate":"50.00"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed property: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, s, http.MethodPost, "/api/bookings", `{
		"property_id": "p1",
		"check_in": "2026-01-10",
		"check_out": "2026-01-15",
		"channel": "airbnb",
		"revenue": "250.00"
	}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed booking: %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, s, http.MethodPost, "/api/expenses", `{"category":"cleaning","amount":"40.00","date":"2026-01-12"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed expense: %d %s", rec.Code, rec.Body.String())
	}
}

func TestDashboardSummary(t *testing.T) {
	s := newTestServer(t)
	seedJanuary(t, s)

	rec := do(t, s, http.MethodGet, "/api/dashboard/summary?from=2026-01-01&to=2026-01-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	summary := decode[summaryView](t, rec)
	if summary.Revenue.BaseCents != 25000 {
		t.Errorf("Revenue = %d, want 25000", summary.Revenue.BaseCents)
	}
	if summary.Expenses.BaseCents != 4000 {
		t.Errorf("Expenses = %d, want 4000", summary.Expenses.BaseCents)
	}
	if summary.Net.BaseCents != 21000 {
		t.Errorf("Net = %d, want 21000", summary.Net.BaseCents)
	}
	if summary.NightsBooked != 5 {
		t.Errorf("NightsBooked = %d, want 5", summary.NightsBooked)
	}
	if summary.AvgNightlyRate != 50 {
		t.Errorf("AvgNightlyRate = %v, want 50", summary.AvgNightlyRate)
	}
	if len(summary.Channels) != 4 {
		t.Errorf("expected all 4 channels, got %d", len(summary.Channels))
	}
}

func TestDashboardSummaryCacheInvalidation(t *testing.T) {
	s := newTestServer(t)
	seedJanuary(t, s)

	const target = "/api/dashboard/summary?from=2026-01-01&to=2026-01-31"

	first := decode[summaryView](t, do(t, s, http.MethodGet, target, ""))
	if first.Expenses.BaseCents != 4000 {
		t.Fatalf("Expenses = %d, want 4000", first.Expenses.BaseCents)
	}

	// A new expense must show up despite the cached summary.
	if rec := do(t, s, http.MethodPost, "/api/expenses", `{"category":"laundry","amount":"10.00","date":"2026-01-20"}`); rec.Code != http.StatusCreated {
		t.Fatalf("add expense: %d", rec.Code)
	}

	second := decode[summaryView](t, do(t, s, http.MethodGet, target, ""))
	if second.Expenses.BaseCents != 5000 {
		t.Errorf("Expenses after write = %d, want 5000", second.Expenses.BaseCents)
	}
}

func TestDashboardMonthlyAndCashflow(t *testing.T) {
	s := newTestServer(t)
	seedJanuary(t, s)

	// February expense, no revenue.
	if rec := do(t, s, http.MethodPost, "/api/expenses", `{"category":"rent","amount":"100.00","date":"2026-02-10"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed february expense: %d", rec.Code)
	}

	months := decode[[]summaryView](t, do(t, s, http.MethodGet, "/api/dashboard/monthly?from=2026-01-01&to=2026-02-28", ""))
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Net.BaseCents != 21000 {
		t.Errorf("January net = %d, want 21000", months[0].Net.BaseCents)
	}
	if months[1].Net.BaseCents != -10000 {
		t.Errorf("February net = %d, want -10000", months[1].Net.BaseCents)
	}

	cashflow := decode[[]cashflowView](t, do(t, s, http.MethodGet, "/api/dashboard/cashflow?from=2026-01-01&to=2026-02-28", ""))
	if len(cashflow) != 2 {
		t.Fatalf("expected 2 cashflow points, got %d", len(cashflow))
	}
	if cashflow[1].Cumulative.BaseCents != 11000 {
		t.Errorf("cumulative = %d, want 11000", cashflow[1].Cumulative.BaseCents)
	}
}

func TestCurrencySettings(t *testing.T) {
	s := newTestServer(t)

	got := decode[currencySettingsView](t, do(t, s, http.MethodGet, "/api/settings/currency", ""))
	if got.Rate != 655.957 {
		t.Errorf("Rate = %v, want 655.957", got.Rate)
	}

	if rec := do(t, s, http.MethodPut, "/api/settings/currency", `{"rate":-1}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative rate status = %d, want 422", rec.Code)
	}

	rec := do(t, s, http.MethodPut, "/api/settings/currency", `{"rate":600}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decode[currencySettingsView](t, rec)
	if updated.Rate != 600 {
		t.Errorf("Rate = %v, want 600", updated.Rate)
	}

	// New conversions must use the new rate.
	created := decode[expenseView](t, do(t, s, http.MethodPost, "/api/expenses", `{"category":"cleaning","amount":"100.00","date":"2026-01-12"}`))
	if created.Amount.Secondary != 60000 {
		t.Errorf("Secondary = %d, want 60000 at rate 600", created.Amount.Secondary)
	}
}
