package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Date is a calendar day. The time-of-day part is always midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	User struct {
		ID    int64
		Name  string
		Email *string
	}

	// Budget caps spend for one (user, category, year, month) tuple.
	// AlertPct is nil when the user did not pick a threshold; evaluation
	// falls back to DefaultAlertPct.
	Budget struct {
		ID       int64
		UserID   int64
		Category string
		Year     int
		Month    int // 1-12
		Amount   Money
		AlertPct *float64
	}

	// Expense is a single spend event. Immutable once recorded.
	Expense struct {
		ID       int64
		UserID   int64
		Category string
		Amount   Money
		Note     *string
		Date     Date
	}
)

var (
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidYear    = errors.New("invalid year")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrEmptyName      = errors.New("empty name")
	ErrEmptyCategory  = errors.New("empty category")
	ErrInvalidUserID  = errors.New("invalid user id")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses an ISO-8601 calendar day ("YYYY-MM-DD").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: want YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// ISO formats the date as "YYYY-MM-DD".
func (d Date) ISO() string {
	return d.Format(dateLayout)
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// ValidatePeriod checks a (year, month) budget period.
func ValidatePeriod(year, month int) error {
	if year < 1 {
		return ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (b Budget) Validate() error {
	if b.UserID < 1 {
		return ErrInvalidUserID
	}
	if b.Category == "" {
		return ErrEmptyCategory
	}
	if err := ValidatePeriod(b.Year, b.Month); err != nil {
		return err
	}
	if b.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Validate checks the fields the tool is responsible for. The amount is
// deliberately unchecked: zero and negative expenses (refunds) are allowed.
func (e Expense) Validate() error {
	if e.UserID < 1 {
		return ErrInvalidUserID
	}
	if e.Category == "" {
		return ErrEmptyCategory
	}
	if e.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}
