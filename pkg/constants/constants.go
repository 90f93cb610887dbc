// Package constants provides shared constants for the loanlens application.
package constants

// DateTimeLayout is the month-granularity date format used for loan start
// dates and payoff projections.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultFOIR is the default fixed-obligation-to-income ratio cap used
	// by the eligibility checker.
	DefaultFOIR = 0.40
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultCurrencySymbol is used when no currency is configured
	DefaultCurrencySymbol = "$"
)

// Input bound defaults; these mirror the ranges enforced by the input
// collection layer before parameters reach the engine.
const (
	DefaultMinPrincipal   = 1000.0
	DefaultMaxRatePercent = 20.0
	DefaultMinTermYears   = 1
	DefaultMaxTermYears   = 40
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultCacheTTLMinutes is the default lifetime of cached schedules
	DefaultCacheTTLMinutes = 60
)
