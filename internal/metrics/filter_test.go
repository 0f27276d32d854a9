package metrics

import (
	"reflect"
	"testing"
	"time"

	"payvue/internal/core"
)

func TestFilterDebts_CaseInsensitiveSearch(t *testing.T) {
	debts := []core.Debt{
		{ID: 1, Name: "Visa"},
		{ID: 2, Name: "Mastercard"},
	}

	got := FilterDebts(debts, Filter{Search: "visa"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("FilterDebts(visa) = %+v, want only Visa", got)
	}

	got = FilterDebts(debts, Filter{Search: "VISA"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("FilterDebts(VISA) = %+v, want only Visa", got)
	}
}

func TestFilterDebts_EmptyFilterKeepsOrder(t *testing.T) {
	debts := []core.Debt{
		{ID: 3, Name: "c"},
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
	}

	got := FilterDebts(debts, Filter{})
	if !reflect.DeepEqual(got, debts) {
		t.Errorf("empty filter changed the collection: %+v", got)
	}
}

func TestFilterIncomes(t *testing.T) {
	incomes := []core.Income{
		{ID: 1, Source: "Salary", Amount: money(150000), Date: core.NewDate(2024, 1, 5)},
		{ID: 2, Source: "Freelance", Amount: money(45050), Date: core.NewDate(2024, 2, 20)},
		{ID: 3, Source: "Rent", Amount: money(90000), Date: core.NewDate(2024, 3, 1)},
	}

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int64
	}{
		{
			name:    "text match on source",
			filter:  Filter{Search: "sala"},
			wantIDs: []int64{1},
		},
		{
			name:    "text match on amount string",
			filter:  Filter{Search: "450.5"},
			wantIDs: []int64{2},
		},
		{
			name: "date range lower bound inclusive",
			filter: Filter{Range: DateRange{
				Start: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			}},
			wantIDs: []int64{2, 3},
		},
		{
			name: "date range upper bound inclusive",
			filter: Filter{Range: DateRange{
				End: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			}},
			wantIDs: []int64{1, 2},
		},
		{
			name: "range and text compose conjunctively",
			filter: Filter{
				Search: "free",
				Range: DateRange{
					Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
				},
			},
			wantIDs: []int64{2},
		},
		{
			name:    "no filters returns everything",
			filter:  Filter{},
			wantIDs: []int64{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterIncomes(incomes, tt.filter)
			ids := make([]int64, len(got))
			for i, inc := range got {
				ids[i] = inc.ID
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("FilterIncomes() ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestFilterPayments(t *testing.T) {
	payments := []core.Payment{
		{ID: 1, DebtID: 10, DebtName: "Visa", Amount: money(50000), Date: core.NewDate(2024, 1, 15)},
		{ID: 2, DebtID: 20, DebtName: "Car loan", Amount: money(80000), Date: core.NewDate(2024, 2, 15)},
		{ID: 3, DebtID: 10, DebtName: "Visa", Amount: money(50000), Date: core.NewDate(2024, 3, 15)},
	}

	got := FilterPayments(payments, Filter{DebtID: 10})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("FilterPayments(debt 10) = %+v", got)
	}

	got = FilterPayments(payments, Filter{Search: "car"})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("FilterPayments(car) = %+v", got)
	}

	got = FilterPayments(payments, Filter{
		DebtID: 10,
		Range:  DateRange{Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("FilterPayments(debt 10 after feb) = %+v", got)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	original := []core.Income{
		{ID: 1, Source: "a", Amount: money(100)},
		{ID: 2, Source: "b", Amount: money(200)},
	}
	snapshot := make([]core.Income, len(original))
	copy(snapshot, original)

	_ = FilterIncomes(original, Filter{Search: "a"})
	_ = FilterIncomes(original, Filter{Search: "a"})

	if !reflect.DeepEqual(original, snapshot) {
		t.Error("FilterIncomes mutated its input")
	}
}
