package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"keur/internal/core"
)

func TestWriteExpensesCSV(t *testing.T) {
	expenses := []core.Expense{
		{
			ID:       "e1",
			Category: core.CategoryCleaning,
			Amount:   core.AmountPair{BaseCents: 5000, Secondary: 32798},
			Date:     core.NewDate(2026, 3, 5),
		},
		{
			ID:         "e2",
			PropertyID: "p1",
			Category:   core.CategoryRent,
			Amount:     core.AmountPair{BaseCents: 80000, Secondary: 524766},
			Date:       core.NewDate(2026, 3, 31),
		},
	}

	var sb strings.Builder
	if err := WriteExpensesCSV(&sb, expenses); err != nil {
		t.Fatalf("WriteExpensesCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "id" || records[0][5] != "date" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][2] != "cleaning" || records[1][3] != "5000" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][1] != "p1" || records[2][5] != "2026-03-31" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestWriteExpensesCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteExpensesCSV(&sb, nil); err != nil {
		t.Fatalf("WriteExpensesCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %q", sb.String())
	}
}

func TestWriteBookingsCSV(t *testing.T) {
	bookings := []core.Booking{
		{
			ID:         "b1",
			PropertyID: "p1",
			CheckIn:    core.NewDate(2026, 1, 10),
			CheckOut:   core.NewDate(2026, 1, 15),
			Channel:    core.ChannelAirbnb,
			Status:     core.StatusConfirmed,
			Revenue:    core.AmountPair{BaseCents: 25000, Secondary: 163989},
		},
	}

	var sb strings.Builder
	if err := WriteBookingsCSV(&sb, bookings); err != nil {
		t.Fatalf("WriteBookingsCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d", len(records))
	}
	row := records[1]
	if row[2] != "2026-01-10" || row[4] != "airbnb" || row[6] != "25000" {
		t.Errorf("unexpected row: %v", row)
	}
}
