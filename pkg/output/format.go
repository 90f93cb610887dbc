// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/loanlens/loanlens/internal/banks"
	"github.com/loanlens/loanlens/internal/expense"
	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/loanlens/loanlens/pkg/format"
)

// PrettyFormat outputs a human-readable loan summary and schedule table.
func PrettyFormat(summary amortize.Summary, rows []amortize.ScheduleRow) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Loan summary ---\n")
	fmt.Printf("Monthly payment:  %s\n", format.Currency(summary.PeriodicPayment))
	fmt.Printf("Total paid:       %s\n", format.Currency(summary.TotalPaid))
	fmt.Printf("Total interest:   %s\n", format.Currency(summary.TotalInterest))
	fmt.Printf("Periods:          %d\n", summary.Periods)
	if summary.PayoffDate != "" {
		fmt.Printf("Payoff date:      %s\n", summary.PayoffDate)
	}
	fmt.Printf("\nPeriod | Principal     | Interest      | Balance\n")
	fmt.Printf("______ | _____________ | _____________ | _____________\n")
	for _, row := range rows {
		_, _ = p.Printf("%6d | $%.2f | $%.2f | $%.2f\n", row.Period, row.Principal, row.Interest, row.Balance)
	}
}

// CsvFormat outputs the schedule in comma-separated value format.
func CsvFormat(rows []amortize.ScheduleRow) {
	fmt.Printf(`"period","principal","interest","balance"`)
	fmt.Printf("\n")
	for _, row := range rows {
		fmt.Printf(`"%d","%.2f","%.2f","%.2f"`, row.Period, row.Principal, row.Interest, row.Balance)
		fmt.Printf("\n")
	}
}

// PrettyComparisons outputs the bank comparison table sorted as given.
func PrettyComparisons(comparisons []banks.Comparison) {
	if len(comparisons) == 0 {
		fmt.Printf("No bank offers match the requested amount and term.\n")
		return
	}
	fmt.Printf("Bank                 | Rate    | EMI           | Interest      | Fee         | Total cost\n")
	fmt.Printf("____________________ | _______ | _____________ | _____________ | ___________ | _____________\n")
	for _, c := range comparisons {
		fmt.Printf("%-20s | %6.2f%% | %13s | %13s | %11s | %13s\n",
			c.Offer.Bank, c.Offer.AnnualRatePercent,
			format.Currency(c.EMI), format.Currency(c.TotalInterest),
			format.Currency(c.ProcessingFee), format.Currency(c.TotalCost))
	}
}

// CsvComparisons outputs the bank comparison in comma-separated value format.
func CsvComparisons(comparisons []banks.Comparison) {
	fmt.Printf(`"bank","rate","emi","interest","fee","total_cost"`)
	fmt.Printf("\n")
	for _, c := range comparisons {
		fmt.Printf(`"%s","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			c.Offer.Bank, c.Offer.AnnualRatePercent, c.EMI, c.TotalInterest, c.ProcessingFee, c.TotalCost)
		fmt.Printf("\n")
	}
}

// PrettyExpenseSummary outputs the expense tracker aggregates.
func PrettyExpenseSummary(summary expense.Summary) {
	fmt.Printf("--- Expense summary (%d records) ---\n", summary.Count)
	fmt.Printf("Income:   %s%s\n", format.Symbol, summary.TotalIncome.StringFixed(2))
	fmt.Printf("Expenses: %s%s\n", format.Symbol, summary.TotalExpenses.StringFixed(2))
	fmt.Printf("Net:      %s%s\n", format.Symbol, summary.Net.StringFixed(2))
	fmt.Printf("\nCategory totals:\n")
	for _, category := range summary.Categories() {
		fmt.Printf("  %-20s %s\n", category, summary.ByCategory[category].StringFixed(2))
	}
}

// PrettyExpenses outputs the full expense table.
func PrettyExpenses(records []expense.Record) {
	fmt.Printf("Date       | Kind    | Category        | Amount      | Description\n")
	fmt.Printf("__________ | _______ | _______________ | ___________ | ___________\n")
	for _, record := range records {
		fmt.Printf("%s | %-7s | %-15s | %11s | %s\n",
			record.Date, record.Kind, record.Category,
			format.Symbol+record.Amount.StringFixed(2), record.Description)
	}
}
