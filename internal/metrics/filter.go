package metrics

import (
	"strings"
	"time"

	"payvue/internal/core"
)

// DateRange is an inclusive calendar range; a zero bound is open-ended.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Filter is the set of active history filters. A zero field is a no-op:
// the empty Filter matches everything. All active predicates must match
// (conjunctive composition), and filtering preserves input order.
type Filter struct {
	Search string    // case-insensitive substring over the collection's text fields
	Range  DateRange // inclusive date bounds
	DebtID int64     // payments only: equality on the debt back-reference
}

// FilterIncomes matches the search term against the income source and the
// amount's decimal string, and applies the date range.
func FilterIncomes(items []core.Income, f Filter) []core.Income {
	out := make([]core.Income, 0, len(items))
	for _, it := range items {
		if !f.Range.Contains(it.Date.Time) {
			continue
		}
		if !matchText(f.Search, it.Source, it.Amount.Decimal()) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// FilterDebts matches the search term against the debt name, the same
// lookup the dashboard search box performs.
func FilterDebts(items []core.Debt, f Filter) []core.Debt {
	out := make([]core.Debt, 0, len(items))
	for _, it := range items {
		if !matchText(f.Search, it.Name) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// FilterPayments matches the search term against the payment amount and the
// denormalized debt name, restricts to a single debt when DebtID is set, and
// applies the date range.
func FilterPayments(items []core.Payment, f Filter) []core.Payment {
	out := make([]core.Payment, 0, len(items))
	for _, it := range items {
		if f.DebtID != 0 && it.DebtID != f.DebtID {
			continue
		}
		if !f.Range.Contains(it.Date.Time) {
			continue
		}
		if !matchText(f.Search, it.Amount.Decimal(), it.DebtName) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// matchText reports whether needle is a case-insensitive substring of any
// field. An empty needle matches everything.
func matchText(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
