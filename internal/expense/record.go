// Package expense implements the expense/income tracker: validated records,
// flat-file and SQLite persistence, and summary aggregation.
package expense

import (
	"errors"
	"fmt"
	"strings"

	"github.com/loanlens/loanlens/pkg/datetime"
	"github.com/shopspring/decimal"
)

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Record is one tracked entry. Rows with missing or malformed required
// fields are rejected at load/insert time, never at render time.
type Record struct {
	Date        string // YYYY-MM-DD
	Description string
	Category    string
	Kind        Kind
	Amount      decimal.Decimal
}

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidAmount    = errors.New("invalid amount")

	// ErrMissingColumn indicates a required column is absent from a loaded
	// data file; it is surfaced to the user as an explanation.
	ErrMissingColumn = errors.New("missing required column")
)

// Validate checks the record invariants.
func (r Record) Validate() error {
	if !datetime.ValidDay(r.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if r.Kind != Income && r.Kind != Expense {
		return fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, r.Amount)
	}
	return nil
}

// ParseKind normalizes a user-supplied kind string.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Income):
		return Income, nil
	case string(Expense):
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// ParseAmount parses a user-entered decimal amount, accepting a comma as the
// decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, s)
	}
	return amount, nil
}

// Store persists expense records. Add appends one validated record; List
// returns the full table in insertion order.
type Store interface {
	Add(record Record) error
	List() ([]Record, error)
	Close() error
}
