package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"payvue/internal/core"
	"payvue/internal/log"
	"payvue/internal/metrics"
)

type dashboardResponse struct {
	SnapshotVersion  int64             `json:"snapshot_version"`
	Summary          summaryJSON       `json:"summary"`
	MonthlyExpenses  [12]float64       `json:"monthly_expenses"`
	IncomeSeries     []seriesPointJSON `json:"income_series"`
	UpcomingPayments []upcomingJSON    `json:"upcoming_payments"`
}

type summaryJSON struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	TotalPaid    float64 `json:"total_paid"`
	Savings      float64 `json:"savings"`
}

type seriesPointJSON struct {
	Label  string  `json:"label"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type upcomingJSON struct {
	DebtID                int64   `json:"debt_id"`
	Name                  string  `json:"name"`
	InstallmentAmount     float64 `json:"installment_amount"`
	PaymentDay            int     `json:"payment_day"`
	DaysUntilPayment      int     `json:"days_until_payment"`
	RemainingAmount       float64 `json:"remaining_amount"`
	RemainingInstallments *int    `json:"remaining_installments"`
	NumInstallments       int     `json:"num_installments"`
	Paid                  bool    `json:"paid"`
}

// handleDashboard serves the derived dashboard view. Responses are cached
// per snapshot version and search term; a refresh bumps the version, so
// stale entries are never served.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	version, err := s.snapshots.Version(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read snapshot version", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "snapshot unavailable")
		return
	}

	cacheKey := fmt.Sprintf("dashboard:v%d:q=%s", version, search)
	if body, ok := s.cache.Get(ctx, cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load snapshot", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "snapshot unavailable")
		return
	}

	summary := metrics.Summarize(snap.Incomes, snap.Debts, snap.Payments)
	now := time.Now()
	monthly := metrics.MonthlyExpenseSeries(snap.Debts, now)

	resp := dashboardResponse{
		SnapshotVersion: version,
		Summary: summaryJSON{
			TotalIncome:  summary.TotalIncome.Units(),
			TotalExpense: summary.TotalExpense.Units(),
			TotalPaid:    summary.TotalPaid.Units(),
			Savings:      summary.Savings.Units(),
		},
		IncomeSeries:     make([]seriesPointJSON, 0),
		UpcomingPayments: make([]upcomingJSON, 0),
	}
	for i, m := range monthly {
		resp.MonthlyExpenses[i] = m.Units()
	}
	for _, p := range metrics.IncomeSeries(snap.Incomes) {
		resp.IncomeSeries = append(resp.IncomeSeries, seriesPointJSON{
			Label:  p.Label,
			Date:   p.Date.Format(dateLayout),
			Amount: p.Amount.Units(),
		})
	}

	// The dashboard search box narrows the payment list by debt name
	for _, d := range metrics.FilterDebts(snap.Debts, metrics.Filter{Search: search}) {
		item := upcomingJSON{
			DebtID:            d.ID,
			Name:              d.Name,
			InstallmentAmount: d.InstallmentAmount.Units(),
			PaymentDay:        d.PaymentDay,
			DaysUntilPayment:  metrics.DaysUntilPayment(d.PaymentDay, now),
			RemainingAmount:   d.RemainingAmount.Units(),
			NumInstallments:   d.NumInstallments,
			Paid:              d.Paid,
		}
		if n, ok := metrics.RemainingInstallments(d); ok {
			item.RemainingInstallments = &n
		}
		resp.UpcomingPayments = append(resp.UpcomingPayments, item)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if err := s.cache.Set(ctx, cacheKey, body); err != nil {
		s.logger.WarnContext(ctx, "Failed to cache dashboard response",
			log.FieldError, err, log.FieldCacheKey, cacheKey)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

type deriveResponse struct {
	TotalAmount       float64 `json:"total_amount"`
	RemainingAmount   float64 `json:"remaining_amount"`
	InstallmentAmount float64 `json:"installment_amount"`
	NumInstallments   *int    `json:"num_installments"`
}

// handleDeriveDebt mirrors the debt-entry form derivation: given the
// amounts typed so far, it fills in the installment count and defaults the
// remaining balance to the total unless one was given explicitly.
func (s *Server) handleDeriveDebt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var draft metrics.DebtDraft

	// An explicit remaining amount must be applied first so the total
	// does not overwrite it
	if v := strings.TrimSpace(q.Get("remaining_amount")); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid remaining_amount")
			return
		}
		draft.SetRemainingAmount(core.Money{Cents: cents})
	}
	if v := strings.TrimSpace(q.Get("total_amount")); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid total_amount")
			return
		}
		draft.SetTotalAmount(core.Money{Cents: cents})
	}
	if v := strings.TrimSpace(q.Get("installment_amount")); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid installment_amount")
			return
		}
		draft.SetInstallmentAmount(core.Money{Cents: cents})
	}

	resp := deriveResponse{
		TotalAmount:       draft.TotalAmount.Units(),
		RemainingAmount:   draft.RemainingAmount.Units(),
		InstallmentAmount: draft.InstallmentAmount.Units(),
	}
	if draft.HasCount {
		n := draft.NumInstallments
		resp.NumInstallments = &n
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady reports readiness: the snapshot store must answer and hold
// at least one snapshot.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	version, err := s.snapshots.Version(ctx)
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"checks": map[string]string{"snapshot_store": fmt.Sprintf("failed: %v", err)},
		})
		return
	}
	if version == 0 {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"checks": map[string]string{"snapshot_store": "no snapshot yet"},
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":                 "ready",
		"snapshot_version":       version,
		"last_seen_notification": s.lastSeenVersion.Load(),
	})
}
