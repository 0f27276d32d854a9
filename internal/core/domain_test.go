package core

import (
	"errors"
	"testing"
)

func validDebt() Debt {
	return Debt{
		Name:              "Visa",
		TotalAmount:       Money{Cents: 100000},
		RemainingAmount:   Money{Cents: 60000},
		InstallmentAmount: Money{Cents: 10000},
		PaymentDay:        15,
		DueDate:           NewDate(2025, 12, 1),
		NumInstallments:   10,
	}
}

func TestDebtValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Debt)
		wantErr error
	}{
		{"valid", func(d *Debt) {}, nil},
		{"empty name", func(d *Debt) { d.Name = "  " }, ErrEmptyName},
		{"negative total", func(d *Debt) { d.TotalAmount.Cents = -1 }, ErrInvalidAmount},
		{"zero installment", func(d *Debt) { d.InstallmentAmount.Cents = 0 }, ErrInvalidAmount},
		{"payment day too low", func(d *Debt) { d.PaymentDay = 0 }, ErrInvalidPaymentDay},
		{"payment day too high", func(d *Debt) { d.PaymentDay = 32 }, ErrInvalidPaymentDay},
		{"payment day 31 is structural valid", func(d *Debt) { d.PaymentDay = 31 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDebt()
			tt.mutate(&d)
			err := d.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIncomeValidate(t *testing.T) {
	inc := Income{Amount: Money{Cents: 5000}, Source: "salary", Date: NewDate(2024, 1, 2)}
	if err := inc.Validate(); err != nil {
		t.Fatalf("valid income rejected: %v", err)
	}

	inc.Source = ""
	if err := inc.Validate(); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty source: got %v", err)
	}

	inc = Income{Amount: Money{Cents: -1}, Source: "x", Date: NewDate(2024, 1, 2)}
	if err := inc.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount: got %v", err)
	}

	inc = Income{Amount: Money{Cents: 1}, Source: "x"}
	if err := inc.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("zero date: got %v", err)
	}
}

func TestPaymentValidate(t *testing.T) {
	p := Payment{DebtID: 3, Amount: Money{Cents: 100}}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid payment rejected: %v", err)
	}

	p.DebtID = 0
	if err := p.Validate(); !errors.Is(err, ErrMissingDebtRef) {
		t.Errorf("missing debt ref: got %v", err)
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, 2, 29)
	if d.Year() != 2024 || d.Month() != 2 || d.Day() != 29 {
		t.Errorf("NewDate parts = %d-%d-%d", d.Year(), d.Month(), d.Day())
	}
	if d.IsEmpty() {
		t.Error("populated date reported empty")
	}
	if !(Date{}).IsEmpty() {
		t.Error("zero date not reported empty")
	}
}
