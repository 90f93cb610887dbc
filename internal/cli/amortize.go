package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/loanlens/loanlens/pkg/constants"
	"github.com/loanlens/loanlens/pkg/format"
	"github.com/loanlens/loanlens/pkg/output"
	"github.com/loanlens/loanlens/pkg/validation"
)

var (
	flagPrincipal         float64
	flagRate              float64
	flagTermYears         int
	flagExtraPayment      float64
	flagStartDate         string
	flagExtraHeadlineOnly bool
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Compute the monthly payment and amortization schedule for a loan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.ValidateOutputFormat(outputFormat()); err != nil {
			return err
		}

		params := amortize.NewLoanParameters(flagPrincipal, flagRate, flagTermYears, flagExtraPayment)
		if err := conf.ValidationBounds().CheckLoanParameters(params); err != nil {
			return err
		}

		engine := amortize.NewEngine(logger)
		if flagExtraHeadlineOnly {
			engine.IncludeExtraInSchedule = false
		}

		summary, rows, err := engine.Analyze(params, flagStartDate)
		if err != nil {
			return err
		}

		switch outputFormat() {
		case constants.OutputFormatPretty:
			output.PrettyFormat(summary, rows)
			if params.ExtraPayment > 0 && engine.IncludeExtraInSchedule {
				accel, err := engine.CompareExtraPayment(params)
				if err != nil {
					return err
				}
				fmt.Printf("\nExtra payment saves %d months and %s in interest.\n",
					accel.MonthsSaved, format.Currency(accel.InterestSaved))
			}
		case constants.OutputFormatCSV:
			output.CsvFormat(rows)
		}

		logger.Debug("amortization computed",
			zap.String("op", "cli.amortize"),
			zap.Int("periods", summary.Periods),
		)
		return nil
	},
}

func init() {
	amortizeCmd.Flags().Float64Var(&flagPrincipal, "principal", 250000, "loan amount")
	amortizeCmd.Flags().Float64Var(&flagRate, "rate", 5.0, "annual interest rate in percent")
	amortizeCmd.Flags().IntVar(&flagTermYears, "term-years", 30, "loan term in years")
	amortizeCmd.Flags().Float64Var(&flagExtraPayment, "extra", 0, "extra payment applied each month")
	amortizeCmd.Flags().StringVar(&flagStartDate, "start-date", "", "first payment month (YYYY-MM) for payoff projection")
	amortizeCmd.Flags().BoolVar(&flagExtraHeadlineOnly, "extra-headline-only", false, "report the extra payment in the headline figure without applying it in the schedule")
	rootCmd.AddCommand(amortizeCmd)
}
