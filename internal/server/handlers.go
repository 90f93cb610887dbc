package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/cache"
	"github.com/loanlens/loanlens/internal/expense"
	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/loanlens/loanlens/pkg/eligibility"
)

// Amortize computes the payment, schedule, and aggregates for one loan.
// Results are cached by parameter hash; identical inputs always produce
// identical output, so cached entries never go stale.
func (h *Handler) Amortize(w http.ResponseWriter, r *http.Request) {
	var req amortizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	params := req.loanParameters()
	if err := h.bounds.CheckLoanParameters(params); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	includeExtra := true
	if req.IncludeExtraInSchedule != nil {
		includeExtra = *req.IncludeExtraInSchedule
	}

	// StartDate shifts the payoff projection but not the numbers, so it is
	// excluded from the cache key only when unset.
	key := cache.Key(params, includeExtra)
	if req.StartDate != "" {
		key += ":" + req.StartDate
	}
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cached))
		return
	}

	engine := amortize.NewEngine(h.logger)
	engine.IncludeExtraInSchedule = includeExtra

	summary, rows, err := engine.Analyze(params, req.StartDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := amortizeResponse{
		Summary:  toLoanSummary(summary),
		Schedule: toScheduleRows(rows),
	}
	if params.ExtraPayment > 0 && includeExtra {
		accel, err := engine.CompareExtraPayment(params)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Acceleration = &acceleration{
			BaselinePeriods: accel.BaselinePeriods,
			MonthsSaved:     accel.MonthsSaved,
			InterestSaved:   accel.InterestSaved,
		}
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.cache.Set(r.Context(), key, string(body)); err != nil {
		// Cache failures degrade to recomputation on the next request.
		h.logger.Warn("failed to cache schedule",
			zap.String("op", "server.Amortize"),
			zap.Error(err),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Eligibility assesses the loan amount a borrower profile qualifies for.
func (h *Handler) Eligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	termMonths := req.TermMonths
	if termMonths == 0 && req.TermYears > 0 {
		termMonths = req.TermYears * 12
	}
	profile := eligibility.Profile{
		NetMonthlyIncome:    req.NetMonthlyIncome,
		ExistingObligations: req.ExistingObligations,
		AnnualRatePercent:   req.AnnualRatePercent,
		TermMonths:          termMonths,
		FOIR:                req.FOIR,
	}

	result, err := h.checker.Assess(profile)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, eligibilityResponse{
		MaxAffordableEMI: result.MaxAffordableEMI,
		EligibleAmount:   result.EligibleAmount,
		EMI:              result.EMI,
		Periods:          result.Periods,
	})
}

// ListBanks returns the configured offer table.
func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	offers := h.comparator.Offers()
	out := make([]bankOffer, 0, len(offers))
	for _, offer := range offers {
		out = append(out, toBankOffer(offer))
	}
	h.respondJSON(w, http.StatusOK, out)
}

// CompareBanks ranks the admitted offers for a requested amount and term.
func (h *Handler) CompareBanks(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount <= 0 {
		h.respondError(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}
	termMonths, err := strconv.Atoi(r.URL.Query().Get("termMonths"))
	if err != nil || termMonths <= 0 {
		h.respondError(w, http.StatusBadRequest, "termMonths must be a positive integer")
		return
	}

	comparisons, err := h.comparator.Compare(amount, termMonths)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := make([]bankComparison, 0, len(comparisons))
	for _, c := range comparisons {
		out = append(out, bankComparison{
			Offer:         toBankOffer(c.Offer),
			EMI:           c.EMI,
			TotalInterest: c.TotalInterest,
			ProcessingFee: c.ProcessingFee,
			TotalCost:     c.TotalCost,
		})
	}
	h.respondJSON(w, http.StatusOK, out)
}

// ListExpenses returns the full expense table.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	records, err := h.listExpenseRecords(w)
	if err != nil {
		return
	}
	out := make([]expenseRecord, 0, len(records))
	for _, record := range records {
		out = append(out, expenseRecord{
			Date:        record.Date,
			Description: record.Description,
			Category:    record.Category,
			Kind:        string(record.Kind),
			Amount:      record.Amount.StringFixed(2),
		})
	}
	h.respondJSON(w, http.StatusOK, out)
}

// AddExpense validates and persists one record.
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	if h.expenses == nil {
		h.respondError(w, http.StatusNotFound, "expense tracking is not configured")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	kind, err := expense.ParseKind(req.Kind)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := expense.ParseAmount(req.Amount)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	record := expense.Record{
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
		Kind:        kind,
		Amount:      amount,
	}
	if err := h.expenses.Add(record); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, expenseRecord{
		Date:        record.Date,
		Description: record.Description,
		Category:    record.Category,
		Kind:        string(record.Kind),
		Amount:      record.Amount.StringFixed(2),
	})
}

// ExpenseSummary returns the tracker aggregates.
func (h *Handler) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	records, err := h.listExpenseRecords(w)
	if err != nil {
		return
	}
	summary := expense.Summarize(records)

	byCategory := make(map[string]string, len(summary.ByCategory))
	for _, category := range summary.Categories() {
		byCategory[category] = summary.ByCategory[category].StringFixed(2)
	}
	h.respondJSON(w, http.StatusOK, expenseSummary{
		TotalIncome:   summary.TotalIncome.StringFixed(2),
		TotalExpenses: summary.TotalExpenses.StringFixed(2),
		Net:           summary.Net.StringFixed(2),
		ByCategory:    byCategory,
		Count:         summary.Count,
	})
}

// ExportExpenses serves the full table as a CSV download.
func (h *Handler) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	records, err := h.listExpenseRecords(w)
	if err != nil {
		return
	}
	data, err := expense.ExportCSV(records)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// listExpenseRecords loads the table, writing the HTTP error itself so
// callers can just bail on a non-nil error.
func (h *Handler) listExpenseRecords(w http.ResponseWriter) ([]expense.Record, error) {
	if h.expenses == nil {
		h.respondError(w, http.StatusNotFound, "expense tracking is not configured")
		return nil, errors.New("expense store not configured")
	}
	records, err := h.expenses.List()
	if err != nil {
		if errors.Is(err, expense.ErrMissingColumn) {
			h.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			h.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, err
	}
	return records, nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}
