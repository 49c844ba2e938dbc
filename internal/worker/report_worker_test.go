package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"keur/internal/amqp"
	"keur/internal/core"
	"keur/internal/currency"
	"keur/internal/export"
	"keur/internal/memory"
	"keur/internal/report"
)

type capturingPublisher struct {
	published []report.Summary
	err       error
}

func (p *capturingPublisher) PublishSummary(_ context.Context, s report.Summary, _ currency.Converter) error {
	p.published = append(p.published, s)
	return p.err
}

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()

	s.CreateProperty(ctx, core.Property{
		ID:          "p1",
		Name:        "Almadies Flat",
		Status:      core.PropertyActive,
		NightlyRate: core.AmountPair{BaseCents: 5000, Secondary: 32798},
	})
	s.CreateProperty(ctx, core.Property{
		ID:          "p2",
		Name:        "Ngor Studio",
		Status:      core.PropertyInactive,
		NightlyRate: core.AmountPair{BaseCents: 3000, Secondary: 19679},
	})
	s.CreateBooking(ctx, core.Booking{
		ID:         "b1",
		PropertyID: "p1",
		CheckIn:    core.NewDate(2026, 1, 10),
		CheckOut:   core.NewDate(2026, 1, 15),
		Channel:    core.ChannelAirbnb,
		Status:     core.StatusConfirmed,
		Revenue:    core.AmountPair{BaseCents: 25000, Secondary: 163989},
	})
	s.CreateExpense(ctx, core.Expense{
		ID:       "e1",
		Category: core.CategoryCleaning,
		Amount:   core.AmountPair{BaseCents: 4000, Secondary: 26239},
		Date:     core.NewDate(2026, 1, 12),
	})
	return s
}

func newTestWorker(t *testing.T, pub SummaryPublisher) (*ReportWorker, string) {
	t.Helper()
	conv, err := currency.New(currency.Config{Rate: currency.DefaultRate})
	if err != nil {
		t.Fatalf("currency.New: %v", err)
	}
	dir := t.TempDir()
	writer := export.NewExcelWriter(conv, dir)
	return NewReportWorker(seedStore(t), writer, pub, conv), dir
}

func TestHandleExportJob(t *testing.T) {
	w, dir := newTestWorker(t, nil)

	if err := w.HandleJob(amqp.NewReportJob(amqp.JobExportMonthly, 2026, 1)); err != nil {
		t.Fatalf("HandleJob: %v", err)
	}

	path := filepath.Join(dir, "report-2026-01.xlsx")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected workbook at %s: %v", path, err)
	}
}

func TestHandleRefreshJob(t *testing.T) {
	pub := &capturingPublisher{}
	w, _ := newTestWorker(t, pub)

	if err := w.HandleJob(amqp.NewReportJob(amqp.JobSummaryRefresh, 2026, 1)); err != nil {
		t.Fatalf("HandleJob: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published summary, got %d", len(pub.published))
	}

	s := pub.published[0]
	if s.Revenue.BaseCents != 25000 {
		t.Errorf("Revenue = %d, want 25000", s.Revenue.BaseCents)
	}
	if s.NightsBooked != 5 {
		t.Errorf("NightsBooked = %d, want 5", s.NightsBooked)
	}
}

func TestRefreshCountsOnlyActiveProperties(t *testing.T) {
	pub := &capturingPublisher{}
	w, _ := newTestWorker(t, pub)

	if err := w.HandleJob(amqp.NewReportJob(amqp.JobSummaryRefresh, 2026, 1)); err != nil {
		t.Fatalf("HandleJob: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published summary, got %d", len(pub.published))
	}

	// One active unit, 31 available nights, 5 booked. The inactive unit
	// must not dilute the denominator.
	want := 100 * 5.0 / 31.0
	if got := pub.published[0].OccupancyRate; got != want {
		t.Errorf("OccupancyRate = %v, want %v", got, want)
	}
}

func TestHandleRefreshJobWithoutPublisher(t *testing.T) {
	w, _ := newTestWorker(t, nil)

	// Must ack, not requeue forever, when no publisher is configured.
	if err := w.HandleJob(amqp.NewReportJob(amqp.JobSummaryRefresh, 2026, 1)); err != nil {
		t.Errorf("expected nil error without publisher, got %v", err)
	}
}

func TestHandleUnknownJobType(t *testing.T) {
	w, _ := newTestWorker(t, nil)

	if err := w.HandleJob(&amqp.ReportJob{Type: "defrag", Year: 2026, Month: 1}); err == nil {
		t.Error("expected error for unknown job type")
	}
}
