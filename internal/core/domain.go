package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date; the time-of-day portion is always midnight.
	Date struct {
		time.Time
	}

	// Money is an amount in integer cents. All arithmetic in the metrics
	// core happens on cents to avoid floating-point drift.
	Money struct {
		Cents int64
	}

	// Income is a single recorded inflow of funds.
	Income struct {
		ID     int64
		Amount Money
		Source string
		Date   Date
	}

	// Debt is a recurring obligation with a fixed installment schedule.
	// RemainingAmount <= TotalAmount is the upstream service's invariant;
	// the metrics core never assumes it holds.
	Debt struct {
		ID                int64
		Name              string
		TotalAmount       Money
		RemainingAmount   Money
		InstallmentAmount Money
		PaymentDay        int // day of month, 1..31
		DueDate           Date
		NumInstallments   int
		InterestRate      float64 // percent
		Paid              bool
	}

	// Payment is a recorded reduction of a debt's remaining balance.
	// DebtName is denormalized by the upstream API for display and search.
	Payment struct {
		ID         int64
		DebtID     int64
		DebtName   string
		Amount     Money
		Date       Date
		ReceiptURL string
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidPaymentDay = errors.New("payment day must be between 1 and 31")
	ErrEmptyName         = errors.New("empty debt name")
	ErrEmptySource       = errors.New("empty income source")
	ErrMissingDebtRef    = errors.New("payment has no debt reference")
	ErrInvalidDate       = errors.New("invalid date")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// IsEmpty returns true for the zero date; optional dates use the zero value.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate performs structural checks only. Semantic rules (uniqueness,
// ownership, balance consistency) belong to the upstream service.
func (i Income) Validate() error {
	if len(strings.TrimSpace(i.Source)) == 0 {
		return ErrEmptySource
	}
	if i.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return i.Date.Validate()
}

// Validate performs structural checks only; see Income.Validate.
func (d Debt) Validate() error {
	if len(strings.TrimSpace(d.Name)) == 0 {
		return ErrEmptyName
	}
	if d.TotalAmount.Cents < 0 || d.RemainingAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if d.InstallmentAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if d.PaymentDay < 1 || d.PaymentDay > 31 {
		return ErrInvalidPaymentDay
	}
	return nil
}

// Validate performs structural checks only; see Income.Validate.
func (p Payment) Validate() error {
	if p.DebtID <= 0 {
		return ErrMissingDebtRef
	}
	if p.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
