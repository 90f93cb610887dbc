package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loanlens/loanlens/pkg/constants"
	"github.com/loanlens/loanlens/pkg/eligibility"
	"github.com/loanlens/loanlens/pkg/format"
)

var (
	flagIncome      float64
	flagObligations float64
	flagEligRate    float64
	flagEligYears   int
	flagFOIR        float64
)

var eligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "Estimate the loan amount a borrower qualifies for",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := eligibility.NewChecker(logger)
		result, err := checker.Assess(eligibility.Profile{
			NetMonthlyIncome:    flagIncome,
			ExistingObligations: flagObligations,
			AnnualRatePercent:   flagEligRate,
			TermMonths:          flagEligYears * constants.MonthsPerYear,
			FOIR:                flagFOIR,
		})
		if err != nil {
			return err
		}

		fmt.Printf("--- Eligibility assessment ---\n")
		fmt.Printf("Max affordable EMI: %s\n", format.Currency(result.MaxAffordableEMI))
		if result.EligibleAmount == 0 {
			fmt.Printf("No loan headroom: existing obligations exceed the income cap.\n")
			return nil
		}
		fmt.Printf("Eligible amount:    %s\n", format.Currency(result.EligibleAmount))
		fmt.Printf("EMI at that amount: %s over %d months\n", format.Currency(result.EMI), result.Periods)
		return nil
	},
}

func init() {
	eligibilityCmd.Flags().Float64Var(&flagIncome, "income", 0, "net monthly income")
	eligibilityCmd.Flags().Float64Var(&flagObligations, "obligations", 0, "existing monthly obligations")
	eligibilityCmd.Flags().Float64Var(&flagEligRate, "rate", 8.5, "annual interest rate in percent")
	eligibilityCmd.Flags().IntVar(&flagEligYears, "term-years", 20, "loan term in years")
	eligibilityCmd.Flags().Float64Var(&flagFOIR, "foir", 0, "fixed-obligation-to-income ratio cap (default 0.40)")
	_ = eligibilityCmd.MarkFlagRequired("income")
	rootCmd.AddCommand(eligibilityCmd)
}
