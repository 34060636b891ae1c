package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"txrollup/internal/config"
	"txrollup/internal/logger"
	"txrollup/internal/pipeline"
)

var (
	flagCustomers     string
	flagTransactions  string
	flagOutput        string
	flagFormat        string
	flagWarnThreshold float64
	flagQuiet         bool
)

var rootCmd = &cobra.Command{
	Use:   "txrollup",
	Short: "Monthly transaction rollup ETL",
	Long:  "Load customer and transaction CSVs, clean them, and write monthly per-customer totals.",
	RunE:  runRun,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagCustomers, "customers", "c", "", "Customers CSV path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagTransactions, "transactions", "t", "", "Transactions CSV path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format: csv or sqlite (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagWarnThreshold, "warn-threshold", 0, "Flag cleaning steps removing more than this fraction of rows")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
}

// resolveOptions merges the config file, TXROLLUP_* env overrides, and
// command-line flags into pipeline options. Flags win.
func resolveOptions() (pipeline.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		CustomersPath:    cfg.Paths.Customers,
		TransactionsPath: cfg.Paths.Transactions,
		OutputPath:       cfg.Paths.Output,
		Format:           cfg.Output.Format,
		WarnThreshold:    cfg.Cleaning.WarnThreshold,
		Logger:           buildLogger(),
	}

	if flagCustomers != "" {
		opts.CustomersPath = flagCustomers
	}
	if flagTransactions != "" {
		opts.TransactionsPath = flagTransactions
	}
	if flagOutput != "" {
		opts.OutputPath = flagOutput
	}
	if flagFormat != "" {
		opts.Format = flagFormat
	}
	if flagWarnThreshold > 0 {
		opts.WarnThreshold = flagWarnThreshold
	}

	return opts, nil
}

func buildLogger() zerolog.Logger {
	log := logger.New()
	if flagQuiet {
		log = log.Level(zerolog.WarnLevel)
	}
	return log
}
