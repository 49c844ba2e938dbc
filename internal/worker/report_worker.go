package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"keur/internal/amqp"
	"keur/internal/core"
	"keur/internal/currency"
	"keur/internal/export"
	"keur/internal/report"
	"keur/internal/store"
)

// SummaryPublisher pushes a finished summary somewhere the owner can see it.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, s report.Summary, conv currency.Converter) error
}

// ReportWorker turns queued report jobs into Excel workbooks and hosted
// sheet rows. Publishing is optional; exporting always works.
type ReportWorker struct {
	store     store.Store
	writer    *export.ExcelWriter
	publisher SummaryPublisher
	converter currency.Converter
}

func NewReportWorker(s store.Store, writer *export.ExcelWriter, publisher SummaryPublisher, conv currency.Converter) *ReportWorker {
	return &ReportWorker{
		store:     s,
		writer:    writer,
		publisher: publisher,
		converter: conv,
	}
}

// HandleJob dispatches one report job. Returning an error requeues it.
func (w *ReportWorker) HandleJob(job *amqp.ReportJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch job.Type {
	case amqp.JobExportMonthly:
		return w.exportMonthly(ctx, job.Year, job.Month)
	case amqp.JobSummaryRefresh:
		return w.refreshSummary(ctx, job.Year, job.Month)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (w *ReportWorker) exportMonthly(ctx context.Context, year, month int) error {
	month0 := report.MonthOf(year, time.Month(month))
	summary, err := w.summarize(ctx, month0)
	if err != nil {
		return err
	}

	// Cashflow covers the year up to and including the requested month.
	yearStart := report.MonthOf(year, time.January)
	periods := report.MonthsBetween(yearStart.Start, month0.End)

	bookings, expenses, _, err := w.load(ctx, core.DateRange{Start: yearStart.Start, End: month0.End})
	if err != nil {
		return err
	}
	cashflow := report.CashflowSeries(bookings, expenses, periods)

	path, err := w.writer.WriteMonthly(summary, cashflow)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	slog.InfoContext(ctx, "Exported monthly report",
		"year", year, "month", month, "path", path)
	return nil
}

func (w *ReportWorker) refreshSummary(ctx context.Context, year, month int) error {
	if w.publisher == nil {
		slog.InfoContext(ctx, "No summary publisher configured, skipping refresh",
			"year", year, "month", month)
		return nil
	}

	summary, err := w.summarize(ctx, report.MonthOf(year, time.Month(month)))
	if err != nil {
		return err
	}

	if err := w.publisher.PublishSummary(ctx, summary, w.converter); err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}
	return nil
}

func (w *ReportWorker) summarize(ctx context.Context, rng core.DateRange) (report.Summary, error) {
	bookings, expenses, properties, err := w.load(ctx, rng)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(bookings, expenses, report.ActiveProperties(properties), rng), nil
}

// load fetches the three datasets in parallel.
func (w *ReportWorker) load(ctx context.Context, rng core.DateRange) ([]core.Booking, []core.Expense, []core.Property, error) {
	var (
		bookings   []core.Booking
		expenses   []core.Expense
		properties []core.Property
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = w.store.ListBookings(gctx, rng)
		if err != nil {
			return fmt.Errorf("load bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = w.store.ListExpenses(gctx, rng)
		if err != nil {
			return fmt.Errorf("load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		properties, err = w.store.ListProperties(gctx)
		if err != nil {
			return fmt.Errorf("load properties: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return bookings, expenses, properties, nil
}
