package expense

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/shopspring/decimal"
)

// Summary holds the aggregates over a set of records.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Net           decimal.Decimal
	ByCategory    map[string]decimal.Decimal
	Count         int
}

// Summarize aggregates records into totals and per-category subtotals.
// Expense amounts count negatively toward Net and category subtotals.
func Summarize(records []Record) Summary {
	summary := Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		ByCategory:    make(map[string]decimal.Decimal),
		Count:         len(records),
	}
	for _, record := range records {
		signed := record.Amount
		if record.Kind == Expense {
			signed = record.Amount.Neg()
			summary.TotalExpenses = summary.TotalExpenses.Add(record.Amount)
		} else {
			summary.TotalIncome = summary.TotalIncome.Add(record.Amount)
		}
		summary.ByCategory[record.Category] = summary.ByCategory[record.Category].Add(signed)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// Categories returns the category names in sorted order for stable rendering.
func (s Summary) Categories() []string {
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExportCSV renders the full table as CSV for download.
func ExportCSV(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, record := range records {
		row := []string{record.Date, record.Description, record.Category, string(record.Kind), record.Amount.String()}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
