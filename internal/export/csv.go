package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"keur/internal/core"
)

// WriteExpensesCSV streams the expense list as CSV. Amounts are written
// as plain integers so spreadsheets can aggregate them without parsing
// formatted strings.
func WriteExpensesCSV(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "property_id", "category", "amount_base_cents", "amount_secondary", "date"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range expenses {
		record := []string{
			e.ID,
			e.PropertyID,
			string(e.Category),
			strconv.FormatInt(e.Amount.BaseCents, 10),
			strconv.FormatInt(e.Amount.Secondary, 10),
			e.Date.ISO(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write expense %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBookingsCSV streams the booking list as CSV.
func WriteBookingsCSV(w io.Writer, bookings []core.Booking) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "property_id", "check_in", "check_out", "channel", "status", "revenue_base_cents", "revenue_secondary"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, b := range bookings {
		record := []string{
			b.ID,
			b.PropertyID,
			b.CheckIn.ISO(),
			b.CheckOut.ISO(),
			string(b.Channel),
			string(b.Status),
			strconv.FormatInt(b.Revenue.BaseCents, 10),
			strconv.FormatInt(b.Revenue.Secondary, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write booking %s: %w", b.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
