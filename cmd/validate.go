package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"txrollup/internal/cli"
	"txrollup/internal/model"
	"txrollup/internal/pipeline"
	"txrollup/internal/source"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and clean the inputs without writing output",
	Long:  "Dry run: loads both tables, applies the cleaning steps, and prints the per-step report.",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
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

	customers, custSteps := pipeline.CleanCustomers(custRows)
	transactions, txSteps := pipeline.CleanTransactions(txRows, customers)
	report := model.CleaningReport{Steps: append(custSteps, txSteps...)}

	fmt.Println()
	fmt.Println(cli.RenderTitle("VALIDATE  dry run, no output written"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.CleaningTable(report)))

	threshold := opts.WarnThreshold
	if threshold <= 0 {
		threshold = pipeline.DefaultWarnThreshold
	}
	for _, s := range report.Steps {
		if s.RowsIn > 0 && s.RemovedFraction() > threshold {
			fmt.Println(cli.RenderWarning(fmt.Sprintf(
				"%s %s removed %s of its rows; review source data",
				s.Table, s.Step, cli.FormatPercent(s.RemovedFraction()))))
		}
	}
	if len(customers) == 0 {
		fmt.Println(cli.RenderWarning("customers table is empty after cleaning"))
	}
	if len(transactions) == 0 {
		fmt.Println(cli.RenderWarning("transactions table is empty after cleaning"))
	}

	return nil
}
