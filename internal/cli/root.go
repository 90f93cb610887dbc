// Package cli wires the loanlens subcommands: amortize, eligibility,
// compare, expense, and serve.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/loanlens/loanlens/internal/config"
	"github.com/loanlens/loanlens/internal/expense"
	"github.com/loanlens/loanlens/pkg/constants"
	"github.com/loanlens/loanlens/pkg/format"
)

var (
	flagConfig       string
	flagLogLevel     string
	flagOutputFormat string

	conf   *config.Configuration
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "loanlens",
	Short:         "Loan, eligibility, and expense calculators",
	Long:          "loanlens computes amortization schedules, loan eligibility, bank offer comparisons, and tracks expenses.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.LoadConfiguration(flagConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration at %s: %w", flagConfig, err)
		}

		logger, err = initializeLogger(conf.Logging, flagLogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "cli"),
			)
		}

		format.Symbol = conf.Currency.Symbol
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "loanlens: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagOutputFormat, "output", "", "output format override: pretty, csv")
}

// outputFormat resolves the effective output format, CLI flag first.
func outputFormat() string {
	if flagOutputFormat != "" {
		return flagOutputFormat
	}
	if conf.Output.Format != "" {
		return conf.Output.Format
	}
	return constants.OutputFormatPretty
}

// openExpenseStore builds the configured expense backend.
func openExpenseStore() (expense.Store, error) {
	switch conf.Expenses.Backend {
	case "sqlite":
		return expense.NewSQLiteStore(conf.Expenses.Path, logger)
	default:
		return expense.NewCSVStore(conf.Expenses.Path, logger)
	}
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	outFormat := loggingConfig.Format
	if outFormat == "" {
		outFormat = "json"
	}

	var zapConfig zap.Config
	switch outFormat {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", outFormat)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}
