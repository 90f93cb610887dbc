// Package banks compares loan offers from a statically configured table.
// There is no live bank integration; offers come from configuration.
package banks

import (
	"fmt"
	"sort"

	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/loanlens/loanlens/pkg/constants"
	"go.uber.org/zap"
)

// Offer is one bank's loan product.
type Offer struct {
	Bank                 string
	MinAmount            float64
	MaxAmount            float64
	AnnualRatePercent    float64
	MaxTermYears         int
	ProcessingFeePercent float64
}

// Comparison is the cost breakdown of one offer for a requested loan.
type Comparison struct {
	Offer         Offer
	EMI           float64
	TotalInterest float64
	ProcessingFee float64
	TotalCost     float64
}

// Comparator filters and ranks the configured offers.
type Comparator struct {
	logger *zap.Logger
	engine *amortize.Engine
	offers []Offer
}

// NewComparator creates a Comparator over the given offer table.
func NewComparator(logger *zap.Logger, offers []Offer) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{
		logger: logger,
		engine: amortize.NewEngine(logger),
		offers: offers,
	}
}

// Offers returns the full configured table.
func (c *Comparator) Offers() []Offer {
	return c.offers
}

// Filter returns the offers whose bounds admit the requested amount and term.
// An empty result is not an error.
func (c *Comparator) Filter(amount float64, termMonths int) []Offer {
	matched := make([]Offer, 0, len(c.offers))
	for _, offer := range c.offers {
		if amount < offer.MinAmount || amount > offer.MaxAmount {
			continue
		}
		if termMonths > offer.MaxTermYears*constants.MonthsPerYear {
			continue
		}
		matched = append(matched, offer)
	}
	return matched
}

// Compare computes the cost breakdown for every admitted offer, sorted by
// EMI ascending.
func (c *Comparator) Compare(amount float64, termMonths int) ([]Comparison, error) {
	matched := c.Filter(amount, termMonths)
	if len(matched) == 0 {
		c.logger.Debug(fmt.Sprintf("no offers admit amount %.2f over %d months", amount, termMonths),
			zap.String("op", "banks.Compare"),
		)
		return nil, nil
	}

	comparisons := make([]Comparison, 0, len(matched))
	for _, offer := range matched {
		params := amortize.LoanParameters{
			Principal:         amount,
			AnnualRatePercent: offer.AnnualRatePercent,
			TermMonths:        termMonths,
		}
		summary, _, err := c.engine.Analyze(params, "")
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", offer.Bank, err)
		}
		fee := amount * offer.ProcessingFeePercent / constants.PercentageMultiplier
		comparisons = append(comparisons, Comparison{
			Offer:         offer,
			EMI:           summary.PeriodicPayment,
			TotalInterest: summary.TotalInterest,
			ProcessingFee: fee,
			TotalCost:     summary.TotalPaid + fee,
		})
	}

	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].EMI < comparisons[j].EMI
	})
	return comparisons, nil
}
