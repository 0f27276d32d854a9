// Package metrics implements the derived-metrics engine: pure, synchronous
// computations over snapshots of incomes, debts and payments. Nothing in this
// package performs I/O, mutates its inputs, or returns an error — results that
// cannot be derived yet are reported through ok booleans.
package metrics

import (
	"payvue/internal/core"
)

// InstallmentCount derives the number of installments as
// ceil(total / installment). The second return value is false when either
// amount is missing or non-positive: the field stays unset rather than
// producing a degenerate result.
func InstallmentCount(total, installment core.Money) (int, bool) {
	if total.Cents <= 0 || installment.Cents <= 0 {
		return 0, false
	}
	n := (total.Cents + installment.Cents - 1) / installment.Cents
	return int(n), true
}

// RemainingInstallments derives how many installments are left on a debt
// from its remaining balance. Unset while the remaining amount is zero,
// mirroring the dashboard's "-" placeholder.
func RemainingInstallments(d core.Debt) (int, bool) {
	return InstallmentCount(d.RemainingAmount, d.InstallmentAmount)
}

// DebtDraft models the debt-entry form during editing. Fields the user has
// not touched are absent (Has* false); Set methods run a full recompute of
// the dependent fields, the same way every keystroke re-runs the derivation
// in the entry form.
type DebtDraft struct {
	TotalAmount       core.Money
	HasTotal          bool
	RemainingAmount   core.Money
	HasRemaining      bool
	InstallmentAmount core.Money
	HasInstallment    bool
	NumInstallments   int
	HasCount          bool
}

// SetTotalAmount records a new total amount and recomputes the installment
// count. If no remaining amount has been entered yet it defaults to the
// total (a brand-new debt starts fully outstanding); an explicitly entered
// remaining amount is never overwritten.
func (d *DebtDraft) SetTotalAmount(m core.Money) {
	d.TotalAmount = m
	d.HasTotal = m.Cents > 0
	if !d.HasRemaining {
		d.RemainingAmount = m
	}
	d.recomputeCount()
}

// SetInstallmentAmount records a new installment amount and recomputes the
// installment count.
func (d *DebtDraft) SetInstallmentAmount(m core.Money) {
	d.InstallmentAmount = m
	d.HasInstallment = m.Cents > 0
	d.recomputeCount()
}

// SetRemainingAmount records an explicit remaining amount. Once set it is
// sticky: later total-amount edits leave it alone.
func (d *DebtDraft) SetRemainingAmount(m core.Money) {
	d.RemainingAmount = m
	d.HasRemaining = true
}

func (d *DebtDraft) recomputeCount() {
	if n, ok := InstallmentCount(d.TotalAmount, d.InstallmentAmount); ok {
		d.NumInstallments = n
		d.HasCount = true
	}
	// An underivable count leaves the previous value in place; the form
	// field is only ever filled in, never cleared, by the derivation.
}
