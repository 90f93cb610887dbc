package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		amount   float64
		expected string
	}{
		{"Simple dollar amount", "$", 1342.05, "$1,342.05"},
		{"Negative amount", "$", -1234.56, "-$1,234.56"},
		{"Large principal", "$", 250000, "$250,000.00"},
		{"Rupee symbol", "₹", 25000, "₹25,000.00"},
		{"Euro symbol", "€", 99.9, "€99.90"},
		{"Zero", "$", 0, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Symbol
			Symbol = tt.symbol
			defer func() { Symbol = prev }()

			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Positive", 1342.05, "1,342.05"},
		{"Negative", -1342.05, "-1,342.05"},
		{"Small", 0.5, "0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumericCurrency(tt.amount); got != tt.expected {
				t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}
