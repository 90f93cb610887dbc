// Package amortize provides the fixed-rate loan payment formula and the
// period-by-period amortization schedule it drives.
package amortize

import (
	"errors"
	"fmt"
	"math"

	"github.com/loanlens/loanlens/pkg/constants"
	"github.com/loanlens/loanlens/pkg/datetime"
	"github.com/loanlens/loanlens/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrInvalidInput indicates loan parameters for which no schedule is defined.
var ErrInvalidInput = errors.New("invalid loan parameters")

// LoanParameters holds the inputs for one calculation. Immutable once built;
// every schedule is recomputed fresh from these values.
type LoanParameters struct {
	Principal         float64
	AnnualRatePercent float64
	TermMonths        int
	ExtraPayment      float64
}

// NewLoanParameters builds LoanParameters from a term expressed in years.
func NewLoanParameters(principal, annualRatePercent float64, termYears int, extraPayment float64) LoanParameters {
	return LoanParameters{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termYears * constants.MonthsPerYear,
		ExtraPayment:      extraPayment,
	}
}

// Validate checks the parameter invariants.
func (p LoanParameters) Validate() error {
	if p.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %.2f", ErrInvalidInput, p.Principal)
	}
	if p.TermMonths <= 0 {
		return fmt.Errorf("%w: term must be positive, got %d months", ErrInvalidInput, p.TermMonths)
	}
	if p.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: rate must be non-negative, got %.2f%%", ErrInvalidInput, p.AnnualRatePercent)
	}
	if p.ExtraPayment < 0 {
		return fmt.Errorf("%w: extra payment must be non-negative, got %.2f", ErrInvalidInput, p.ExtraPayment)
	}
	return nil
}

// ScheduleRow holds the values for a given payment period.
type ScheduleRow struct {
	Period    int
	Principal float64
	Interest  float64
	Balance   float64
}

// Summary holds the aggregates derived from a full schedule.
type Summary struct {
	PeriodicPayment   float64
	TotalPrincipal    float64
	TotalInterest     float64
	TotalPaid         float64
	Periods           int
	RepaymentProgress float64
	PayoffDate        string
}

// Acceleration reports the effect of an extra payment against the
// zero-extra baseline for the same principal, rate, and term.
type Acceleration struct {
	BaselinePeriods  int
	Periods          int
	MonthsSaved      int
	BaselineInterest float64
	Interest         float64
	InterestSaved    float64
}

// PeriodicRate converts an annual percentage rate to a monthly rate.
func PeriodicRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// ComputePeriodicPayment calculates the headline monthly payment using the
// standard amortization formula, with the extra payment added on top.
func ComputePeriodicPayment(params LoanParameters) (float64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	payment := annuityPayment(params)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0, fmt.Errorf("%w: rate %.2f%% over %d months yields a non-finite payment",
			ErrInvalidInput, params.AnnualRatePercent, params.TermMonths)
	}
	return payment + params.ExtraPayment, nil
}

// annuityPayment is the raw fixed payment before any extra payment.
func annuityPayment(params LoanParameters) float64 {
	n := float64(params.TermMonths)
	r := PeriodicRate(params.AnnualRatePercent)
	if r == 0 {
		// For zero interest, simply divide the principal by term
		return params.Principal / n
	}
	power := math.Pow(1.00+r, n)
	return params.Principal * r * power / (power - 1.00)
}

// Engine generates amortization schedules. IncludeExtraInSchedule controls
// whether the extra payment participates in the schedule loop or only in the
// headline payment figure; the eligibility-checker variant sets it to false.
type Engine struct {
	logger                 *zap.Logger
	IncludeExtraInSchedule bool
}

// NewEngine creates an engine that applies extra payments inside the schedule.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, IncludeExtraInSchedule: true}
}

// BuildSchedule generates the full period-by-period breakdown of a loan until
// payoff. The returned rows are freshly computed on every call; length is at
// most params.TermMonths and the final balance is exactly zero.
func (e *Engine) BuildSchedule(params LoanParameters) ([]ScheduleRow, error) {
	payment, err := ComputePeriodicPayment(params)
	if err != nil {
		return nil, err
	}

	loopPayment := payment
	if !e.IncludeExtraInSchedule {
		loopPayment = payment - params.ExtraPayment
	}

	r := PeriodicRate(params.AnnualRatePercent)
	balance := params.Principal
	rows := make([]ScheduleRow, 0, params.TermMonths)

	for period := 1; period <= params.TermMonths; period++ {
		interest := balance * r
		principal := loopPayment - interest

		// On the final period the computed principal either exceeds the
		// remainder or leaves a sub-cent residue; pay off exactly the
		// remainder so the rows sum back to the original principal.
		if principal >= balance || mathutil.Round(balance-principal) == 0 {
			principal = balance
			balance = 0.00
		} else {
			balance -= principal
		}

		rows = append(rows, ScheduleRow{
			Period:    period,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})

		if balance == 0 {
			if period < params.TermMonths {
				e.logger.Debug(fmt.Sprintf("loan paid off at period %d of %d", period, params.TermMonths),
					zap.String("op", "amortize.BuildSchedule"),
				)
			}
			break
		}
	}

	return rows, nil
}

// Analyze builds the schedule and its derived aggregates in one call. When
// startDate is non-empty (YYYY-MM, the month of the first payment) the payoff
// month is projected into Summary.PayoffDate.
func (e *Engine) Analyze(params LoanParameters, startDate string) (Summary, []ScheduleRow, error) {
	payment, err := ComputePeriodicPayment(params)
	if err != nil {
		return Summary{}, nil, err
	}
	rows, err := e.BuildSchedule(params)
	if err != nil {
		return Summary{}, nil, err
	}

	summary := Summary{
		PeriodicPayment: payment,
		Periods:         len(rows),
	}
	for _, row := range rows {
		summary.TotalPrincipal += row.Principal
		summary.TotalInterest += row.Interest
	}
	summary.TotalPaid = summary.TotalPrincipal + summary.TotalInterest

	finalBalance := rows[len(rows)-1].Balance
	summary.RepaymentProgress = 1 - finalBalance/params.Principal

	if startDate != "" {
		payoff, err := datetime.OffsetDate(startDate, datetime.DateTimeLayout, len(rows)-1)
		if err != nil {
			return Summary{}, nil, fmt.Errorf("%w: bad start date %q", ErrInvalidInput, startDate)
		}
		summary.PayoffDate = payoff
	}

	return summary, rows, nil
}

// CompareExtraPayment reports the months and interest saved by the
// configured extra payment relative to the zero-extra baseline.
func (e *Engine) CompareExtraPayment(params LoanParameters) (Acceleration, error) {
	baselineParams := params
	baselineParams.ExtraPayment = 0

	baseline, _, err := e.Analyze(baselineParams, "")
	if err != nil {
		return Acceleration{}, err
	}
	accelerated, _, err := e.Analyze(params, "")
	if err != nil {
		return Acceleration{}, err
	}

	return Acceleration{
		BaselinePeriods:  baseline.Periods,
		Periods:          accelerated.Periods,
		MonthsSaved:      baseline.Periods - accelerated.Periods,
		BaselineInterest: baseline.TotalInterest,
		Interest:         accelerated.TotalInterest,
		InterestSaved:    baseline.TotalInterest - accelerated.TotalInterest,
	}, nil
}
