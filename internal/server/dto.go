package server

import (
	"github.com/loanlens/loanlens/internal/banks"
	"github.com/loanlens/loanlens/pkg/amortize"
)

// amortizeRequest carries LoanParameters over the wire. TermYears is a
// convenience accepted when TermMonths is zero.
type amortizeRequest struct {
	Principal              float64 `json:"principal"`
	AnnualRatePercent      float64 `json:"annualRatePercent"`
	TermMonths             int     `json:"termMonths,omitempty"`
	TermYears              int     `json:"termYears,omitempty"`
	ExtraPayment           float64 `json:"extraPayment,omitempty"`
	StartDate              string  `json:"startDate,omitempty"`
	IncludeExtraInSchedule *bool   `json:"includeExtraInSchedule,omitempty"`
}

type scheduleRow struct {
	Period    int     `json:"period"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type loanSummary struct {
	PeriodicPayment   float64 `json:"periodicPayment"`
	TotalPrincipal    float64 `json:"totalPrincipal"`
	TotalInterest     float64 `json:"totalInterest"`
	TotalPaid         float64 `json:"totalPaid"`
	Periods           int     `json:"periods"`
	RepaymentProgress float64 `json:"repaymentProgress"`
	PayoffDate        string  `json:"payoffDate,omitempty"`
}

type acceleration struct {
	BaselinePeriods int     `json:"baselinePeriods"`
	MonthsSaved     int     `json:"monthsSaved"`
	InterestSaved   float64 `json:"interestSaved"`
}

type amortizeResponse struct {
	Summary      loanSummary   `json:"summary"`
	Schedule     []scheduleRow `json:"schedule"`
	Acceleration *acceleration `json:"acceleration,omitempty"`
}

type eligibilityRequest struct {
	NetMonthlyIncome    float64 `json:"netMonthlyIncome"`
	ExistingObligations float64 `json:"existingObligations,omitempty"`
	AnnualRatePercent   float64 `json:"annualRatePercent"`
	TermMonths          int     `json:"termMonths,omitempty"`
	TermYears           int     `json:"termYears,omitempty"`
	FOIR                float64 `json:"foir,omitempty"`
}

type eligibilityResponse struct {
	MaxAffordableEMI float64 `json:"maxAffordableEmi"`
	EligibleAmount   float64 `json:"eligibleAmount"`
	EMI              float64 `json:"emi"`
	Periods          int     `json:"periods"`
}

type bankOffer struct {
	Bank                 string  `json:"bank"`
	MinAmount            float64 `json:"minAmount"`
	MaxAmount            float64 `json:"maxAmount"`
	AnnualRatePercent    float64 `json:"annualRatePercent"`
	MaxTermYears         int     `json:"maxTermYears"`
	ProcessingFeePercent float64 `json:"processingFeePercent"`
}

type bankComparison struct {
	Offer         bankOffer `json:"offer"`
	EMI           float64   `json:"emi"`
	TotalInterest float64   `json:"totalInterest"`
	ProcessingFee float64   `json:"processingFee"`
	TotalCost     float64   `json:"totalCost"`
}

type expenseRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
}

type expenseRecord struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
}

type expenseSummary struct {
	TotalIncome   string            `json:"totalIncome"`
	TotalExpenses string            `json:"totalExpenses"`
	Net           string            `json:"net"`
	ByCategory    map[string]string `json:"byCategory"`
	Count         int               `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (req amortizeRequest) loanParameters() amortize.LoanParameters {
	termMonths := req.TermMonths
	if termMonths == 0 && req.TermYears > 0 {
		termMonths = req.TermYears * 12
	}
	return amortize.LoanParameters{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermMonths:        termMonths,
		ExtraPayment:      req.ExtraPayment,
	}
}

func toScheduleRows(rows []amortize.ScheduleRow) []scheduleRow {
	out := make([]scheduleRow, len(rows))
	for i, row := range rows {
		out[i] = scheduleRow(row)
	}
	return out
}

func toLoanSummary(s amortize.Summary) loanSummary {
	return loanSummary{
		PeriodicPayment:   s.PeriodicPayment,
		TotalPrincipal:    s.TotalPrincipal,
		TotalInterest:     s.TotalInterest,
		TotalPaid:         s.TotalPaid,
		Periods:           s.Periods,
		RepaymentProgress: s.RepaymentProgress,
		PayoffDate:        s.PayoffDate,
	}
}

func toBankOffer(o banks.Offer) bankOffer {
	return bankOffer{
		Bank:                 o.Bank,
		MinAmount:            o.MinAmount,
		MaxAmount:            o.MaxAmount,
		AnnualRatePercent:    o.AnnualRatePercent,
		MaxTermYears:         o.MaxTermYears,
		ProcessingFeePercent: o.ProcessingFeePercent,
	}
}
