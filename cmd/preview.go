package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"txrollup/internal/pipeline"
	"txrollup/internal/source"
	"txrollup/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the computed aggregates in an interactive table",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, _ []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	custRows, err := source.ReadCustomersFile(opts.CustomersPath)
	if err != nil {
		return err
	}
	txRows, err := source.ReadTransactionsFile(opts.TransactionsPath)
	if err != nil {
		return err
	}

	customers, _ := pipeline.CleanCustomers(custRows)
	transactions, _ := pipeline.CleanTransactions(txRows, customers)
	stats := pipeline.AggregateMonthly(transactions, customers)

	var warnings []string
	if len(customers) == 0 {
		warnings = append(warnings, "customers table is empty after cleaning")
	}
	if len(transactions) == 0 {
		warnings = append(warnings, "transactions table is empty after cleaning")
	}

	// Force TrueColor so the table styling renders on dumb profiles too.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(stats, warnings)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview error: %w", err)
	}
	return nil
}
