package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"keur/internal/currency"
	"keur/internal/report"
)

// Publisher pushes monthly summaries to a hosted spreadsheet so the owner
// can check the numbers without touching the API.
type Publisher struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv builds a Publisher from environment credentials.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SHEET_NAME
// (default "Summary").
func NewFromEnv(ctx context.Context) (*Publisher, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Summary"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Publisher{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// PublishSummary writes one month's figures into the row for that month.
// Row layout: header on row 1, January on row 2 through December on row 13,
// so re-publishing a month overwrites its own row.
func (p *Publisher) PublishSummary(ctx context.Context, s report.Summary, conv currency.Converter) error {
	if p.svc == nil {
		return errors.New("sheets service not initialized")
	}

	month := int(s.Range.Start.Month())
	row := month + 1

	header := &gsheet.ValueRange{Values: [][]any{{
		"Month", "Revenue", "Expenses", "Net", "Net (FCFA)",
		"Nights", "Occupancy", "Avg rate", "ROI", "Cancellations",
	}}}
	headerRange := fmt.Sprintf("%s!A1:J1", p.sheetName)
	_, err := p.svc.Spreadsheets.Values.Update(p.spreadsheetID, headerRange, header).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update header in sheet %s: %w", p.sheetName, err)
	}

	values := &gsheet.ValueRange{Values: [][]any{{
		s.Range.Start.Format("2006-01"),
		conv.FormatBase(s.Revenue.BaseCents),
		conv.FormatBase(s.Expenses.BaseCents),
		conv.FormatBase(s.Net.BaseCents),
		conv.FormatSecondary(s.Net.Secondary),
		s.NightsBooked,
		fmt.Sprintf("%.1f%%", s.OccupancyRate),
		fmt.Sprintf("%.2f", s.AvgNightlyRate),
		fmt.Sprintf("%.2f%%", s.ROI),
		fmt.Sprintf("%.1f%%", s.CancellationRate),
	}}}
	dataRange := fmt.Sprintf("%s!A%d:J%d", p.sheetName, row, row)
	_, err = p.svc.Spreadsheets.Values.Update(p.spreadsheetID, dataRange, values).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update row %d in sheet %s: %w", row, p.sheetName, err)
	}

	slog.InfoContext(ctx, "Published summary to spreadsheet",
		"sheet", p.sheetName,
		"month", s.Range.Start.Format("2006-01"),
		"row", row)
	return nil
}
