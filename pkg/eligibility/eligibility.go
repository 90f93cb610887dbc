// Package eligibility estimates the loan amount a borrower qualifies for
// from income, existing obligations, and the requested rate and term.
package eligibility

import (
	"fmt"
	"math"

	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/loanlens/loanlens/pkg/constants"
	"go.uber.org/zap"
)

// Profile holds the borrower inputs for one eligibility check.
type Profile struct {
	NetMonthlyIncome    float64
	ExistingObligations float64
	AnnualRatePercent   float64
	TermMonths          int
	// FOIR is the fixed-obligation-to-income ratio cap. Zero means the
	// default of 40%.
	FOIR float64
}

// Validate checks the profile invariants.
func (p Profile) Validate() error {
	if p.NetMonthlyIncome <= 0 {
		return fmt.Errorf("%w: net monthly income must be positive, got %.2f",
			amortize.ErrInvalidInput, p.NetMonthlyIncome)
	}
	if p.ExistingObligations < 0 {
		return fmt.Errorf("%w: obligations must be non-negative, got %.2f",
			amortize.ErrInvalidInput, p.ExistingObligations)
	}
	if p.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: rate must be non-negative, got %.2f%%",
			amortize.ErrInvalidInput, p.AnnualRatePercent)
	}
	if p.TermMonths <= 0 {
		return fmt.Errorf("%w: term must be positive, got %d months",
			amortize.ErrInvalidInput, p.TermMonths)
	}
	if p.FOIR < 0 || p.FOIR > 1 {
		return fmt.Errorf("%w: FOIR must be within [0,1], got %.2f",
			amortize.ErrInvalidInput, p.FOIR)
	}
	return nil
}

func (p Profile) foir() float64 {
	if p.FOIR == 0 {
		return constants.DefaultFOIR
	}
	return p.FOIR
}

// Assessment is the result of an eligibility check.
type Assessment struct {
	MaxAffordableEMI float64
	EligibleAmount   float64
	EMI              float64
	Periods          int
}

// Checker runs eligibility assessments through the amortization engine.
// The engine variant here keeps extra payments out of the schedule loop.
type Checker struct {
	logger *zap.Logger
	engine *amortize.Engine
}

// NewChecker creates a Checker.
func NewChecker(logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := amortize.NewEngine(logger)
	engine.IncludeExtraInSchedule = false
	return &Checker{logger: logger, engine: engine}
}

// MaxAffordableEMI is the income headroom left for a new installment,
// clamped at zero when obligations already exceed the FOIR cap.
func MaxAffordableEMI(p Profile) float64 {
	emi := p.NetMonthlyIncome*p.foir() - p.ExistingObligations
	if emi < 0 {
		return 0
	}
	return emi
}

// EligibleAmount inverts the annuity formula to find the principal whose
// installment equals emi over the profile's rate and term.
func EligibleAmount(emi, annualRatePercent float64, termMonths int) float64 {
	if emi <= 0 {
		return 0
	}
	n := float64(termMonths)
	r := amortize.PeriodicRate(annualRatePercent)
	if r == 0 {
		return emi * n
	}
	power := math.Pow(1.00+r, n)
	return emi * (power - 1.00) / (r * power)
}

// Assess computes the eligible loan amount for the profile and confirms it by
// recomputing the installment and schedule through the engine.
func (c *Checker) Assess(p Profile) (Assessment, error) {
	if err := p.Validate(); err != nil {
		return Assessment{}, err
	}

	maxEMI := MaxAffordableEMI(p)
	amount := EligibleAmount(maxEMI, p.AnnualRatePercent, p.TermMonths)
	if amount <= 0 {
		c.logger.Debug("no affordable installment headroom",
			zap.String("op", "eligibility.Assess"),
			zap.Float64("income", p.NetMonthlyIncome),
			zap.Float64("obligations", p.ExistingObligations),
		)
		return Assessment{MaxAffordableEMI: maxEMI}, nil
	}

	params := amortize.LoanParameters{
		Principal:         amount,
		AnnualRatePercent: p.AnnualRatePercent,
		TermMonths:        p.TermMonths,
	}
	summary, rows, err := c.engine.Analyze(params, "")
	if err != nil {
		return Assessment{}, err
	}

	return Assessment{
		MaxAffordableEMI: maxEMI,
		EligibleAmount:   amount,
		EMI:              summary.PeriodicPayment,
		Periods:          len(rows),
	}, nil
}
