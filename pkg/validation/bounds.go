package validation

import (
	"fmt"

	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/loanlens/loanlens/pkg/constants"
)

// Bounds holds the application-defined input ranges enforced before loan
// parameters reach the engine.
type Bounds struct {
	MinPrincipal   float64
	MaxRatePercent float64
	MinTermYears   int
	MaxTermYears   int
}

// DefaultBounds returns the ranges the original dashboards enforce.
func DefaultBounds() Bounds {
	return Bounds{
		MinPrincipal:   constants.DefaultMinPrincipal,
		MaxRatePercent: constants.DefaultMaxRatePercent,
		MinTermYears:   constants.DefaultMinTermYears,
		MaxTermYears:   constants.DefaultMaxTermYears,
	}
}

// CheckLoanParameters validates params against the bounds. Engine-level
// invariants still apply afterward; these ranges are the stricter UI layer.
func (b Bounds) CheckLoanParameters(params amortize.LoanParameters) error {
	if params.Principal < b.MinPrincipal {
		return fmt.Errorf("%w: principal %.2f below minimum %.2f",
			amortize.ErrInvalidInput, params.Principal, b.MinPrincipal)
	}
	if params.AnnualRatePercent < 0 || params.AnnualRatePercent > b.MaxRatePercent {
		return fmt.Errorf("%w: rate %.2f%% outside [0, %.2f]",
			amortize.ErrInvalidInput, params.AnnualRatePercent, b.MaxRatePercent)
	}
	minMonths := b.MinTermYears * constants.MonthsPerYear
	maxMonths := b.MaxTermYears * constants.MonthsPerYear
	if params.TermMonths < minMonths || params.TermMonths > maxMonths {
		return fmt.Errorf("%w: term %d months outside [%d, %d]",
			amortize.ErrInvalidInput, params.TermMonths, minMonths, maxMonths)
	}
	if params.ExtraPayment < 0 {
		return fmt.Errorf("%w: extra payment %.2f must be non-negative",
			amortize.ErrInvalidInput, params.ExtraPayment)
	}
	return nil
}
