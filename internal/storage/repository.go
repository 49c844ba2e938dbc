package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"keur/internal/core"
	"keur/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements store.Store on an embedded SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateBooking implements store.BookingStore.
func (r *SQLiteRepository) CreateBooking(ctx context.Context, b core.Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (id, property_id, check_in, check_out, channel, status, revenue_base_cents, revenue_secondary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.PropertyID, b.CheckIn.ISO(), b.CheckOut.ISO(),
		string(b.Channel), string(b.Status),
		b.Revenue.BaseCents, b.Revenue.Secondary, b.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	slog.InfoContext(ctx, "Booking saved to SQLite",
		"booking_id", b.ID,
		"property_id", b.PropertyID,
		"check_in", b.CheckIn.ISO(),
		"check_out", b.CheckOut.ISO())
	return nil
}

// ListBookings returns bookings overlapping the range, cancelled ones
// included. ISO dates compare correctly as strings.
func (r *SQLiteRepository) ListBookings(ctx context.Context, rng core.DateRange) ([]core.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, property_id, check_in, check_out, channel, status, revenue_base_cents, revenue_secondary, created_at
		FROM bookings
		WHERE check_in <= ? AND check_out >= ?
		ORDER BY check_in, id`,
		rng.End.ISO(), rng.Start.ISO())
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var out []core.Booking
	for rows.Next() {
		var (
			b                 core.Booking
			checkIn, checkOut string
			channel, status   string
			createdAt         time.Time
		)
		if err := rows.Scan(&b.ID, &b.PropertyID, &checkIn, &checkOut, &channel, &status,
			&b.Revenue.BaseCents, &b.Revenue.Secondary, &createdAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		if b.CheckIn, err = core.ParseDate(checkIn); err != nil {
			return nil, fmt.Errorf("booking %s: bad check-in %q", b.ID, checkIn)
		}
		if b.CheckOut, err = core.ParseDate(checkOut); err != nil {
			return nil, fmt.Errorf("booking %s: bad check-out %q", b.ID, checkOut)
		}
		b.Channel = core.Channel(channel)
		b.Status = core.BookingStatus(status)
		b.CreatedAt = createdAt
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBookingStatus implements store.BookingStore.
func (r *SQLiteRepository) UpdateBookingStatus(ctx context.Context, id string, status core.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return requireRow(res)
}

// DeleteBooking implements store.BookingStore.
func (r *SQLiteRepository) DeleteBooking(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return requireRow(res)
}

// CreateExpense implements store.ExpenseStore.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	propertyID := sql.NullString{String: e.PropertyID, Valid: e.PropertyID != ""}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, property_id, category, amount_base_cents, amount_secondary, effective_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, propertyID, string(e.Category),
		e.Amount.BaseCents, e.Amount.Secondary, e.Date.ISO())
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"expense_id", e.ID,
		"category", string(e.Category),
		"base_cents", e.Amount.BaseCents,
		"date", e.Date.ISO())
	return nil
}

// ListExpenses implements store.ExpenseStore.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, rng core.DateRange) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, property_id, category, amount_base_cents, amount_secondary, effective_date
		FROM expenses
		WHERE effective_date >= ? AND effective_date <= ?
		ORDER BY effective_date, id`,
		rng.Start.ISO(), rng.End.ISO())
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e          core.Expense
			propertyID sql.NullString
			category   string
			date       string
		)
		if err := rows.Scan(&e.ID, &propertyID, &category, &e.Amount.BaseCents, &e.Amount.Secondary, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.PropertyID = propertyID.String
		e.Category = core.ExpenseCategory(category)
		if e.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("expense %s: bad date %q", e.ID, date)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteExpense implements store.ExpenseStore.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

// CreateProperty implements store.PropertyStore.
func (r *SQLiteRepository) CreateProperty(ctx context.Context, p core.Property) error {
	args := []any{
		p.ID, p.Name, string(p.Status),
		p.NightlyRate.BaseCents, p.NightlyRate.Secondary,
	}
	args = append(args, investmentArgs(p.Investment)...)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO properties (id, name, status, nightly_base_cents, nightly_secondary,
			purchase_base_cents, purchase_secondary,
			renovation_base_cents, renovation_secondary,
			furniture_base_cents, furniture_secondary,
			equipment_base_cents, equipment_secondary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}

	slog.InfoContext(ctx, "Property saved to SQLite", "property_id", p.ID, "name", p.Name)
	return nil
}

func investmentArgs(inv *core.Investment) []any {
	if inv == nil {
		return []any{nil, nil, nil, nil, nil, nil, nil, nil}
	}
	return []any{
		inv.Purchase.BaseCents, inv.Purchase.Secondary,
		inv.Renovation.BaseCents, inv.Renovation.Secondary,
		inv.Furniture.BaseCents, inv.Furniture.Secondary,
		inv.Equipment.BaseCents, inv.Equipment.Secondary,
	}
}

// GetProperty implements store.PropertyStore.
func (r *SQLiteRepository) GetProperty(ctx context.Context, id string) (core.Property, error) {
	row := r.db.QueryRowContext(ctx, propertySelect+` WHERE id = ?`, id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Property{}, store.ErrNotFound
	}
	return p, err
}

// ListProperties implements store.PropertyStore.
func (r *SQLiteRepository) ListProperties(ctx context.Context) ([]core.Property, error) {
	rows, err := r.db.QueryContext(ctx, propertySelect+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var out []core.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdatePropertyStatus implements store.PropertyStore.
func (r *SQLiteRepository) UpdatePropertyStatus(ctx context.Context, id string, status core.PropertyStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update property status: %w", err)
	}
	return requireRow(res)
}

const propertySelect = `
	SELECT id, name, status, nightly_base_cents, nightly_secondary,
		purchase_base_cents, purchase_secondary,
		renovation_base_cents, renovation_secondary,
		furniture_base_cents, furniture_secondary,
		equipment_base_cents, equipment_secondary
	FROM properties`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (core.Property, error) {
	var (
		p      core.Property
		status string
		parts  [8]sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Name, &status,
		&p.NightlyRate.BaseCents, &p.NightlyRate.Secondary,
		&parts[0], &parts[1], &parts[2], &parts[3],
		&parts[4], &parts[5], &parts[6], &parts[7])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Property{}, err
		}
		return core.Property{}, fmt.Errorf("scan property: %w", err)
	}
	p.Status = core.PropertyStatus(status)

	anyInvestment := false
	for _, part := range parts {
		if part.Valid {
			anyInvestment = true
			break
		}
	}
	if anyInvestment {
		p.Investment = &core.Investment{
			Purchase:   core.AmountPair{BaseCents: parts[0].Int64, Secondary: parts[1].Int64},
			Renovation: core.AmountPair{BaseCents: parts[2].Int64, Secondary: parts[3].Int64},
			Furniture:  core.AmountPair{BaseCents: parts[4].Int64, Secondary: parts[5].Int64},
			Equipment:  core.AmountPair{BaseCents: parts[6].Int64, Secondary: parts[7].Int64},
		}
	}
	return p, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
