package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"txrollup/internal/cli"
	"txrollup/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full load, clean, aggregate, write pipeline",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	opts, err := resolveOptions()
	if err != nil {
		return err
	}

	res, err := pipeline.Run(opts)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY TRANSACTION ROLLUP"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.CleaningTable(res.Report)))
	fmt.Println()

	summary := cli.Table{
		Title:   "Run summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Customers (cleaned)", cli.FormatNumber(int64(res.Customers))},
			{"Transactions (cleaned)", cli.FormatNumber(int64(res.Transactions))},
			{"Aggregate rows", cli.FormatNumber(int64(len(res.Aggregates)))},
			{"Rows written", cli.FormatNumber(int64(res.RowsWritten))},
			{"Output", res.OutputPath},
			{"Elapsed", res.Elapsed.Round(time.Millisecond).String()},
		},
	}
	fmt.Print(cli.RenderTable(summary))

	for _, w := range res.Warnings {
		fmt.Println(cli.RenderWarning(w))
	}

	return nil
}
