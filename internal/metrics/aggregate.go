package metrics

import (
	"fmt"
	"sort"
	"time"

	"payvue/internal/core"
)

// Summary holds the scalar dashboard totals. Savings may be negative; the
// sign drives a display state, not an error.
type Summary struct {
	TotalIncome  core.Money
	TotalExpense core.Money
	TotalPaid    core.Money
	Savings      core.Money
}

// Summarize recomputes the dashboard totals from scratch on every call.
// TotalExpense is the nominal monthly obligation (sum of installment
// amounts), not the payments actually made; TotalPaid covers those.
// Empty collections yield a zero summary.
func Summarize(incomes []core.Income, debts []core.Debt, payments []core.Payment) Summary {
	var s Summary
	for _, i := range incomes {
		s.TotalIncome = s.TotalIncome.Add(i.Amount)
	}
	for _, d := range debts {
		s.TotalExpense = s.TotalExpense.Add(d.InstallmentAmount)
	}
	for _, p := range payments {
		s.TotalPaid = s.TotalPaid.Add(p.Amount)
	}
	s.Savings = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// MonthlyExpenseSeries buckets debt installments into the twelve calendar
// months. Every debt's installment lands in the current month: the source
// system performs no historical month attribution, and that behavior is
// preserved here rather than redesigned.
func MonthlyExpenseSeries(debts []core.Debt, now time.Time) [12]core.Money {
	var series [12]core.Money
	idx := int(now.Month()) - 1
	for _, d := range debts {
		series[idx] = series[idx].Add(d.InstallmentAmount)
	}
	return series
}

// SeriesPoint is one charted income observation.
type SeriesPoint struct {
	Label  string // "day/month", e.g. "2/1"
	Date   core.Date
	Amount core.Money
}

// IncomeSeries returns incomes as (label, amount) pairs sorted ascending by
// date. The sort is stable, so same-day incomes keep their insertion order.
// The input slice is left untouched.
func IncomeSeries(incomes []core.Income) []SeriesPoint {
	if len(incomes) == 0 {
		return nil
	}
	sorted := make([]core.Income, len(incomes))
	copy(sorted, incomes)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Date.Time.Before(sorted[b].Date.Time)
	})

	points := make([]SeriesPoint, len(sorted))
	for i, inc := range sorted {
		points[i] = SeriesPoint{
			Label:  fmt.Sprintf("%d/%d", inc.Date.Day(), inc.Date.Month()),
			Date:   inc.Date,
			Amount: inc.Amount,
		}
	}
	return points
}
