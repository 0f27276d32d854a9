package upstream

import (
	"fmt"
	"time"

	"payvue/internal/core"
)

// Wire representations of the upstream finance API. Amounts travel as
// floating-point units and dates as strings; both are converted to the
// core types at the boundary.

type incomeDTO struct {
	ID     int64   `json:"id" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
	Source string  `json:"source" validate:"required"`
	Date   string  `json:"date" validate:"required"`
}

type debtDTO struct {
	ID                int64   `json:"id" validate:"required"`
	Name              string  `json:"name" validate:"required"`
	TotalAmount       float64 `json:"total_amount" validate:"gte=0"`
	RemainingAmount   float64 `json:"remaining_amount" validate:"gte=0"`
	InstallmentAmount float64 `json:"installment_amount" validate:"gt=0"`
	PaymentDay        int     `json:"payment_day" validate:"min=1,max=31"`
	DueDate           string  `json:"due_date,omitempty"`
	NumInstallments   int     `json:"num_installments" validate:"gte=0"`
	InterestRate      float64 `json:"interest_rate" validate:"gte=0"`
	Paid              bool    `json:"paid"`
}

type paymentDTO struct {
	ID         int64   `json:"id" validate:"required"`
	DebtID     int64   `json:"debt_id" validate:"required"`
	DebtName   string  `json:"debt_name"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Date       string  `json:"date" validate:"required"`
	ReceiptURL string  `json:"receipt_url,omitempty"`
}

// parseDate accepts the two date shapes the upstream API emits.
func parseDate(value string) (core.Date, error) {
	if value == "" {
		return core.Date{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return core.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, value)
}

func (d incomeDTO) toDomain() (core.Income, error) {
	date, err := parseDate(d.Date)
	if err != nil {
		return core.Income{}, fmt.Errorf("income %d: %w", d.ID, err)
	}
	return core.Income{
		ID:     d.ID,
		Amount: core.MoneyFromFloat(d.Amount),
		Source: d.Source,
		Date:   date,
	}, nil
}

func (d debtDTO) toDomain() (core.Debt, error) {
	dueDate, err := parseDate(d.DueDate)
	if err != nil {
		return core.Debt{}, fmt.Errorf("debt %d: %w", d.ID, err)
	}
	return core.Debt{
		ID:                d.ID,
		Name:              d.Name,
		TotalAmount:       core.MoneyFromFloat(d.TotalAmount),
		RemainingAmount:   core.MoneyFromFloat(d.RemainingAmount),
		InstallmentAmount: core.MoneyFromFloat(d.InstallmentAmount),
		PaymentDay:        d.PaymentDay,
		DueDate:           dueDate,
		NumInstallments:   d.NumInstallments,
		InterestRate:      d.InterestRate,
		Paid:              d.Paid,
	}, nil
}

func (d paymentDTO) toDomain() (core.Payment, error) {
	date, err := parseDate(d.Date)
	if err != nil {
		return core.Payment{}, fmt.Errorf("payment %d: %w", d.ID, err)
	}
	return core.Payment{
		ID:         d.ID,
		DebtID:     d.DebtID,
		DebtName:   d.DebtName,
		Amount:     core.MoneyFromFloat(d.Amount),
		Date:       date,
		ReceiptURL: d.ReceiptURL,
	}, nil
}
