package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
server:
  address: ":9090"
currency:
  symbol: "₹"
bounds:
  minPrincipal: 5000
  maxRatePercent: 18
  maxTermYears: 25
banks:
  - bank: First National
    minAmount: 10000
    maxAmount: 500000
    annualRatePercent: 6.5
    maxTermYears: 30
    processingFeePercent: 1.0
expenses:
  backend: sqlite
  path: data/expenses.db
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" {
		t.Errorf("logging level = %q, expected debug", conf.Logging.Level)
	}
	if conf.Server.Address != ":9090" {
		t.Errorf("server address = %q, expected :9090", conf.Server.Address)
	}
	if conf.Currency.Symbol != "₹" {
		t.Errorf("currency symbol = %q, expected ₹", conf.Currency.Symbol)
	}
	if len(conf.Banks) != 1 || conf.Banks[0].Bank != "First National" {
		t.Errorf("banks = %+v, expected one First National offer", conf.Banks)
	}
	if conf.Expenses.Backend != "sqlite" {
		t.Errorf("expense backend = %q, expected sqlite", conf.Expenses.Backend)
	}

	bounds := conf.ValidationBounds()
	if bounds.MinPrincipal != 5000 {
		t.Errorf("min principal = %v, expected 5000", bounds.MinPrincipal)
	}
	if bounds.MinTermYears != 1 {
		t.Errorf("min term years = %v, expected default 1", bounds.MinTermYears)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Server.Address != ":8080" {
		t.Errorf("default server address = %q, expected :8080", conf.Server.Address)
	}
	if conf.Currency.Symbol != "$" {
		t.Errorf("default currency symbol = %q, expected $", conf.Currency.Symbol)
	}
	if conf.Cache.TTLMinutes != 60 {
		t.Errorf("default cache TTL = %d, expected 60", conf.Cache.TTLMinutes)
	}
	if conf.Bounds.MaxTermYears != 40 {
		t.Errorf("default max term = %d, expected 40", conf.Bounds.MaxTermYears)
	}
	if conf.Expenses.Backend != "csv" {
		t.Errorf("default expense backend = %q, expected csv", conf.Expenses.Backend)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Errorf("LoadConfiguration() expected error for missing file")
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{
		Bounds: BoundsConfig{MinTermYears: 10, MaxTermYears: 5},
		Banks: []BankOffer{
			{Bank: "", MinAmount: 100, MaxAmount: 50, AnnualRatePercent: -1, MaxTermYears: 0},
		},
		Expenses: ExpensesConfig{Backend: "parquet"},
	}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 6 {
		t.Errorf("expected 6 warnings, got %d: %v", len(warnings), warnings)
	}
}
