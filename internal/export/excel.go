package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"keur/internal/currency"
	"keur/internal/report"
)

// ExcelWriter renders a monthly report workbook: a KPI sheet, an expense
// category sheet, a channel sheet and a cashflow sheet.
type ExcelWriter struct {
	converter currency.Converter
	outDir    string
}

func NewExcelWriter(converter currency.Converter, outDir string) *ExcelWriter {
	return &ExcelWriter{converter: converter, outDir: outDir}
}

// WriteMonthly writes the workbook for one month and returns its path.
// The file name is stable per month so re-exports overwrite.
func (w *ExcelWriter) WriteMonthly(summary report.Summary, cashflow []report.CashflowPoint) (string, error) {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, summary); err != nil {
		return "", err
	}
	if err := w.writeCategorySheet(f, summary); err != nil {
		return "", err
	}
	if err := w.writeChannelSheet(f, summary); err != nil {
		return "", err
	}
	if err := w.writeCashflowSheet(f, cashflow); err != nil {
		return "", err
	}

	path := filepath.Join(w.outDir, fmt.Sprintf("report-%s.xlsx", summary.Range.Start.Format("2006-01")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func (w *ExcelWriter) writeSummarySheet(f *excelize.File, s report.Summary) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]any{
		{"Period", fmt.Sprintf("%s to %s", s.Range.Start.ISO(), s.Range.End.ISO())},
		{"Revenue", w.converter.FormatBase(s.Revenue.BaseCents), w.converter.FormatSecondary(s.Revenue.Secondary)},
		{"Expenses", w.converter.FormatBase(s.Expenses.BaseCents), w.converter.FormatSecondary(s.Expenses.Secondary)},
		{"Net income", w.converter.FormatBase(s.Net.BaseCents), w.converter.FormatSecondary(s.Net.Secondary)},
		{"Nights booked", s.NightsBooked},
		{"Occupancy rate", fmt.Sprintf("%.1f%%", s.OccupancyRate)},
		{"Average nightly rate", fmt.Sprintf("%.2f", s.AvgNightlyRate)},
		{"ROI", fmt.Sprintf("%.2f%%", s.ROI)},
		{"Cancellation rate", fmt.Sprintf("%.1f%%", s.CancellationRate)},
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeCategorySheet(f *excelize.File, s report.Summary) error {
	const sheet = "Expenses by category"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create category sheet: %w", err)
	}

	rows := [][]any{{"Category", "Amount", "Amount (FCFA)"}}
	for _, c := range s.Categories {
		rows = append(rows, []any{
			string(c.Category),
			w.converter.FormatBase(c.Amount.BaseCents),
			w.converter.FormatSecondary(c.Amount.Secondary),
		})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeChannelSheet(f *excelize.File, s report.Summary) error {
	const sheet = "Channels"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create channel sheet: %w", err)
	}

	rows := [][]any{{"Channel", "Bookings", "Share"}}
	for _, ch := range s.Channels {
		rows = append(rows, []any{
			string(ch.Channel),
			ch.Count,
			fmt.Sprintf("%.1f%%", ch.Percent),
		})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeCashflowSheet(f *excelize.File, cashflow []report.CashflowPoint) error {
	const sheet = "Cashflow"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create cashflow sheet: %w", err)
	}

	rows := [][]any{{"Month", "Net", "Cumulative"}}
	for _, p := range cashflow {
		rows = append(rows, []any{
			p.Range.Start.Format("2006-01"),
			w.converter.FormatBase(p.Net.BaseCents),
			w.converter.FormatBase(p.Cumulative.BaseCents),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
