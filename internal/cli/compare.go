package cli

import (
	"github.com/spf13/cobra"

	"github.com/loanlens/loanlens/internal/banks"
	"github.com/loanlens/loanlens/pkg/constants"
	"github.com/loanlens/loanlens/pkg/output"
	"github.com/loanlens/loanlens/pkg/validation"
)

var (
	flagCompareAmount float64
	flagCompareYears  int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the configured bank offers for a requested loan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.ValidateOutputFormat(outputFormat()); err != nil {
			return err
		}

		comparator := banks.NewComparator(logger, conf.BankOffers())
		comparisons, err := comparator.Compare(flagCompareAmount, flagCompareYears*constants.MonthsPerYear)
		if err != nil {
			return err
		}

		switch outputFormat() {
		case constants.OutputFormatPretty:
			output.PrettyComparisons(comparisons)
		case constants.OutputFormatCSV:
			output.CsvComparisons(comparisons)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().Float64Var(&flagCompareAmount, "amount", 0, "requested loan amount")
	compareCmd.Flags().IntVar(&flagCompareYears, "term-years", 20, "requested term in years")
	_ = compareCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(compareCmd)
}
