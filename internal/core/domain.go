package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Debit  Flow = "Debit"
	Credit Flow = "Credit"

	// Uncategorized is the fallback category. It always exists in the
	// dictionary and is never a learning target.
	Uncategorized = "Uncategorized"

	// DateLayout is the statement date format, e.g. "02 Jan 2006".
	DateLayout = "02 Jan 2006"
)

type (
	// Flow marks a transaction as an expense or an income/refund.
	Flow string

	Date struct {
		time.Time
	}

	// Amount holds a signed monetary value in cents. Valid is false when
	// the statement cell failed numeric coercion; such amounts are kept on
	// the row for display but excluded from every sum.
	Amount struct {
		Cents int64
		Valid bool
	}

	// Transaction is one statement row. Category defaults to Uncategorized
	// and is recomputed from the dictionary on every categorization pass.
	Transaction struct {
		Date     Date
		Details  string
		Amount   Amount
		Flow     Flow
		Category string
	}
)

var (
	ErrInvalidFlow    = errors.New("invalid debit/credit flow")
	ErrEmptyDetails   = errors.New("empty details")
	ErrZeroDate       = errors.New("date cannot be zero")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyCategory  = errors.New("empty category name")
)

// ParseFlow maps the statement's literal flow label to a Flow.
func ParseFlow(s string) (Flow, error) {
	switch strings.TrimSpace(s) {
	case string(Debit):
		return Debit, nil
	case string(Credit):
		return Credit, nil
	}
	return "", ErrInvalidFlow
}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Details)) == 0 {
		return ErrEmptyDetails
	}
	if t.Flow != Debit && t.Flow != Credit {
		return ErrInvalidFlow
	}
	return nil
}
