package http

import (
	"net/http"

	"payvue/internal/core"
	"payvue/internal/log"
	"payvue/internal/metrics"
)

type incomeJSON struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Source string  `json:"source"`
	Date   string  `json:"date"`
}

type debtJSON struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	TotalAmount       float64 `json:"total_amount"`
	RemainingAmount   float64 `json:"remaining_amount"`
	InstallmentAmount float64 `json:"installment_amount"`
	PaymentDay        int     `json:"payment_day"`
	DueDate           string  `json:"due_date,omitempty"`
	NumInstallments   int     `json:"num_installments"`
	InterestRate      float64 `json:"interest_rate"`
	Paid              bool    `json:"paid"`
}

type paymentJSON struct {
	ID         int64   `json:"id"`
	DebtID     int64   `json:"debt_id"`
	DebtName   string  `json:"debt_name"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	ReceiptURL string  `json:"receipt_url,omitempty"`
}

// handleHistoryIncomes lists incomes, narrowed by search and date range.
func (s *Server) handleHistoryIncomes(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.snapshots.LoadSnapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load snapshot", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "snapshot unavailable")
		return
	}

	items := make([]incomeJSON, 0)
	for _, income := range metrics.FilterIncomes(snap.Incomes, filter) {
		items = append(items, incomeJSON{
			ID:     income.ID,
			Amount: income.Amount.Units(),
			Source: income.Source,
			Date:   income.Date.Format(dateLayout),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"incomes": items})
}

// handleHistoryDebts lists debts, narrowed by the name search.
func (s *Server) handleHistoryDebts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.snapshots.LoadSnapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load snapshot", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "snapshot unavailable")
		return
	}

	items := make([]debtJSON, 0)
	for _, debt := range metrics.FilterDebts(snap.Debts, filter) {
		items = append(items, toDebtJSON(debt))
	}

	respondJSON(w, http.StatusOK, map[string]any{"debts": items})
}

// handleHistoryPayments lists payments, narrowed by search, date range and
// the debt back-reference.
func (s *Server) handleHistoryPayments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.snapshots.LoadSnapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load snapshot", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "snapshot unavailable")
		return
	}

	items := make([]paymentJSON, 0)
	for _, payment := range metrics.FilterPayments(snap.Payments, filter) {
		items = append(items, paymentJSON{
			ID:         payment.ID,
			DebtID:     payment.DebtID,
			DebtName:   payment.DebtName,
			Amount:     payment.Amount.Units(),
			Date:       payment.Date.Format(dateLayout),
			ReceiptURL: payment.ReceiptURL,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"payments": items})
}

func toDebtJSON(debt core.Debt) debtJSON {
	out := debtJSON{
		ID:                debt.ID,
		Name:              debt.Name,
		TotalAmount:       debt.TotalAmount.Units(),
		RemainingAmount:   debt.RemainingAmount.Units(),
		InstallmentAmount: debt.InstallmentAmount.Units(),
		PaymentDay:        debt.PaymentDay,
		NumInstallments:   debt.NumInstallments,
		InterestRate:      debt.InterestRate,
		Paid:              debt.Paid,
	}
	if !debt.DueDate.IsEmpty() {
		out.DueDate = debt.DueDate.Format(dateLayout)
	}
	return out
}
