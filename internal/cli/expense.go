package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loanlens/loanlens/internal/expense"
	"github.com/loanlens/loanlens/pkg/output"
)

var (
	flagExpenseDate        string
	flagExpenseDescription string
	flagExpenseCategory    string
	flagExpenseKind        string
	flagExpenseAmount      string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Track income and expense records",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one record",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openExpenseStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		kind, err := expense.ParseKind(flagExpenseKind)
		if err != nil {
			return err
		}
		amount, err := expense.ParseAmount(flagExpenseAmount)
		if err != nil {
			return err
		}

		record := expense.Record{
			Date:        flagExpenseDate,
			Description: flagExpenseDescription,
			Category:    flagExpenseCategory,
			Kind:        kind,
			Amount:      amount,
		}
		if err := store.Add(record); err != nil {
			return err
		}
		fmt.Printf("Recorded %s %s (%s) on %s.\n", record.Kind, record.Amount.StringFixed(2), record.Category, record.Date)
		return nil
	},
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the full table",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openExpenseStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		records, err := store.List()
		if err != nil {
			return err
		}
		output.PrettyExpenses(records)
		return nil
	},
}

var expenseSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print income, expense, and category totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openExpenseStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		records, err := store.List()
		if err != nil {
			return err
		}
		output.PrettyExpenseSummary(expense.Summarize(records))
		return nil
	},
}

var expenseExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full table as CSV to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openExpenseStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		records, err := store.List()
		if err != nil {
			return err
		}
		data, err := expense.ExportCSV(records)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	expenseAddCmd.Flags().StringVar(&flagExpenseDate, "date", "", "record date (YYYY-MM-DD)")
	expenseAddCmd.Flags().StringVar(&flagExpenseDescription, "description", "", "record description")
	expenseAddCmd.Flags().StringVar(&flagExpenseCategory, "category", "", "record category")
	expenseAddCmd.Flags().StringVar(&flagExpenseKind, "kind", "expense", "record kind: income or expense")
	expenseAddCmd.Flags().StringVar(&flagExpenseAmount, "amount", "", "record amount")
	_ = expenseAddCmd.MarkFlagRequired("date")
	_ = expenseAddCmd.MarkFlagRequired("description")
	_ = expenseAddCmd.MarkFlagRequired("category")
	_ = expenseAddCmd.MarkFlagRequired("amount")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseSummaryCmd, expenseExportCmd)
	rootCmd.AddCommand(expenseCmd)
}
