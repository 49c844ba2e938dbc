package core

import (
	"errors"
	"strings"
	"time"
)

const (
	ChannelDirect  Channel = "direct"
	ChannelAirbnb  Channel = "airbnb"
	ChannelBooking Channel = "booking"
	ChannelOther   Channel = "other"
)

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

const (
	PropertyActive      PropertyStatus = "active"
	PropertyMaintenance PropertyStatus = "maintenance"
	PropertyInactive    PropertyStatus = "inactive"
)

const (
	CategoryCleaning    ExpenseCategory = "cleaning"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategorySupplies    ExpenseCategory = "supplies"
	CategoryWages       ExpenseCategory = "wages"
	CategoryTaxes       ExpenseCategory = "taxes"
	CategoryMarketing   ExpenseCategory = "marketing"
	CategoryFurnishings ExpenseCategory = "furnishings"
	CategorySecurity    ExpenseCategory = "security"
	CategoryRent        ExpenseCategory = "rent"
	CategoryCommonAreas ExpenseCategory = "common_areas"
	CategoryConsumables ExpenseCategory = "consumables"
	CategoryLaundry     ExpenseCategory = "laundry"
	CategoryCanalSat    ExpenseCategory = "canal_sat"
	CategoryOther       ExpenseCategory = "other"
)

type (
	Channel         string
	BookingStatus   string
	PropertyStatus  string
	ExpenseCategory string

	Date struct {
		time.Time
	}

	// AmountPair tracks the same monetary value in both currencies:
	// base currency in cents, secondary currency in whole units
	// (the secondary currency has no fractional minor units).
	AmountPair struct {
		BaseCents int64
		Secondary int64
	}

	// DateRange is an inclusive [Start, End] window used as the filter
	// for every aggregation call.
	DateRange struct {
		Start Date
		End   Date
	}

	// Booking is a stay at one property. Revenue is recorded in both
	// currencies at booking time.
	Booking struct {
		ID         string
		PropertyID string
		CheckIn    Date
		CheckOut   Date
		Channel    Channel
		Status     BookingStatus
		Revenue    AmountPair
		CreatedAt  time.Time
	}

	// Expense is a cost record. An empty PropertyID marks a general cost
	// shared across the whole operation.
	Expense struct {
		ID         string
		PropertyID string
		Category   ExpenseCategory
		Amount     AmountPair
		Date       Date
	}

	// Investment is the capital breakdown of a property. Rent is not part
	// of the investment base; it is tracked as a recurring expense.
	Investment struct {
		Purchase   AmountPair
		Renovation AmountPair
		Furniture  AmountPair
		Equipment  AmountPair
	}

	Property struct {
		ID          string
		Name        string
		Status      PropertyStatus
		NightlyRate AmountPair
		Investment  *Investment
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidRange    = errors.New("start date after end date")
	ErrInvalidStay     = errors.New("check-out must be after check-in")
	ErrInvalidChannel  = errors.New("invalid booking channel")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrInvalidProperty = errors.New("invalid property status")
	ErrInvalidCategory = errors.New("invalid expense category")
	ErrNegativeAmount  = errors.New("negative amount")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty property name")
	ErrEmptyPropertyID = errors.New("empty property reference")
)

// Channels lists every booking channel in canonical order.
func Channels() []Channel {
	return []Channel{ChannelDirect, ChannelAirbnb, ChannelBooking, ChannelOther}
}

// ExpenseCategories lists every expense category in canonical order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryCleaning, CategoryMaintenance, CategoryUtilities,
		CategorySupplies, CategoryWages, CategoryTaxes, CategoryMarketing,
		CategoryFurnishings, CategorySecurity, CategoryRent,
		CategoryCommonAreas, CategoryConsumables, CategoryLaundry,
		CategoryCanalSat, CategoryOther,
	}
}

func (c Channel) Valid() bool {
	switch c {
	case ChannelDirect, ChannelAirbnb, ChannelBooking, ChannelOther:
		return true
	}
	return false
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyActive, PropertyMaintenance, PropertyInactive:
		return true
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// NewDate creates a Date at UTC midnight. Domain dates are day-granular;
// the time component is never meaningful.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its UTC calendar day.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// DaysUntil returns the number of whole days from d to other. Negative
// when other precedes d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time) / (24 * time.Hour))
}

func (r DateRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if r.Start.After(r.End.Time) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is the window length in nights: an inclusive January window
// spans 31 nights. Zero for inverted or zero ranges.
func (r DateRange) Nights() int {
	if r.Start.IsZero() || r.End.IsZero() || r.Start.After(r.End.Time) {
		return 0
	}
	return r.Start.DaysUntil(r.End) + 1
}

// Contains reports whether d falls inside the inclusive window.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

func (a AmountPair) Validate() error {
	if a.BaseCents < 0 || a.Secondary < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Add returns the component-wise sum of two pairs.
func (a AmountPair) Add(b AmountPair) AmountPair {
	return AmountPair{BaseCents: a.BaseCents + b.BaseCents, Secondary: a.Secondary + b.Secondary}
}

// Sub returns the component-wise difference. Negative results are
// meaningful (net loss).
func (a AmountPair) Sub(b AmountPair) AmountPair {
	return AmountPair{BaseCents: a.BaseCents - b.BaseCents, Secondary: a.Secondary - b.Secondary}
}

// Base returns the base-currency value as a float for display.
// Use cents for arithmetic.
func (a AmountPair) Base() float64 {
	return float64(a.BaseCents) / 100.0
}

// Total sums the four capital components of an investment.
func (i Investment) Total() AmountPair {
	return i.Purchase.Add(i.Renovation).Add(i.Furniture).Add(i.Equipment)
}

// Nights is the full length of the stay in nights.
func (b Booking) Nights() int {
	return b.CheckIn.DaysUntil(b.CheckOut)
}

func (b Booking) Validate() error {
	if strings.TrimSpace(b.PropertyID) == "" {
		return ErrEmptyPropertyID
	}
	if err := b.CheckIn.Validate(); err != nil {
		return err
	}
	if err := b.CheckOut.Validate(); err != nil {
		return err
	}
	if !b.CheckOut.After(b.CheckIn.Time) {
		return ErrInvalidStay
	}
	if !b.Channel.Valid() {
		return ErrInvalidChannel
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	return b.Revenue.Validate()
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Amount.BaseCents == 0 && e.Amount.Secondary == 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (p Property) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if len(p.Name) > 200 {
		return errors.New("property name too long (max 200 characters)")
	}
	if !p.Status.Valid() {
		return ErrInvalidProperty
	}
	if err := p.NightlyRate.Validate(); err != nil {
		return err
	}
	if p.Investment != nil {
		for _, part := range []AmountPair{p.Investment.Purchase, p.Investment.Renovation, p.Investment.Furniture, p.Investment.Equipment} {
			if err := part.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
