package metrics

import (
	"testing"
	"time"

	"payvue/internal/core"
)

func money(cents int64) core.Money { return core.Money{Cents: cents} }

func TestSummarize(t *testing.T) {
	incomes := []core.Income{
		{Amount: money(10000), Source: "salary"},
		{Amount: money(5000), Source: "freelance"},
	}
	debts := []core.Debt{
		{Name: "Visa", InstallmentAmount: money(4000)},
		{Name: "Car", InstallmentAmount: money(8000)},
	}
	payments := []core.Payment{
		{DebtID: 1, Amount: money(4000)},
	}

	s := Summarize(incomes, debts, payments)
	if s.TotalIncome.Cents != 15000 {
		t.Errorf("TotalIncome = %d, want 15000", s.TotalIncome.Cents)
	}
	if s.TotalExpense.Cents != 12000 {
		t.Errorf("TotalExpense = %d, want 12000", s.TotalExpense.Cents)
	}
	if s.TotalPaid.Cents != 4000 {
		t.Errorf("TotalPaid = %d, want 4000", s.TotalPaid.Cents)
	}
	if s.Savings.Cents != 3000 {
		t.Errorf("Savings = %d, want 3000", s.Savings.Cents)
	}
}

func TestSummarize_NegativeSavings(t *testing.T) {
	incomes := []core.Income{{Amount: money(1000)}}
	debts := []core.Debt{{InstallmentAmount: money(5000)}}

	s := Summarize(incomes, debts, nil)
	if s.Savings.Cents != -4000 {
		t.Errorf("Savings = %d, want -4000", s.Savings.Cents)
	}
}

func TestSummarize_EmptyCollections(t *testing.T) {
	s := Summarize(nil, nil, nil)
	if s != (Summary{}) {
		t.Errorf("empty collections must yield a zero summary, got %+v", s)
	}
}

func TestMonthlyExpenseSeries_CurrentMonthOnly(t *testing.T) {
	debts := []core.Debt{
		{InstallmentAmount: money(3000)},
		{InstallmentAmount: money(2000)},
	}
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	series := MonthlyExpenseSeries(debts, now)
	for i, v := range series {
		if i == 4 { // May
			if v.Cents != 5000 {
				t.Errorf("May bucket = %d, want 5000", v.Cents)
			}
			continue
		}
		if v.Cents != 0 {
			t.Errorf("bucket %d = %d, want 0", i, v.Cents)
		}
	}
}

func TestIncomeSeries_SortedStable(t *testing.T) {
	incomes := []core.Income{
		{ID: 1, Amount: money(300), Date: core.NewDate(2024, 3, 10)},
		{ID: 2, Amount: money(100), Date: core.NewDate(2024, 1, 2)},
		{ID: 3, Amount: money(200), Date: core.NewDate(2024, 1, 2)},
	}

	points := IncomeSeries(incomes)
	if len(points) != 3 {
		t.Fatalf("len = %d, want 3", len(points))
	}
	if points[0].Amount.Cents != 100 || points[1].Amount.Cents != 200 {
		t.Errorf("same-day incomes reordered: got %d, %d", points[0].Amount.Cents, points[1].Amount.Cents)
	}
	if points[0].Label != "2/1" {
		t.Errorf("label = %q, want \"2/1\"", points[0].Label)
	}
	if points[2].Label != "10/3" {
		t.Errorf("label = %q, want \"10/3\"", points[2].Label)
	}

	// Input order is never touched.
	if incomes[0].ID != 1 {
		t.Error("IncomeSeries mutated its input")
	}
}

func TestIncomeSeries_Empty(t *testing.T) {
	if points := IncomeSeries(nil); len(points) != 0 {
		t.Errorf("empty input yielded %d points", len(points))
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	incomes := []core.Income{{Amount: money(100)}, {Amount: money(50)}}
	first := Summarize(incomes, nil, nil)
	second := Summarize(incomes, nil, nil)
	if first != second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
	if first.TotalIncome.Cents != 150 {
		t.Errorf("TotalIncome = %d, want 150", first.TotalIncome.Cents)
	}
}
