package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"txrollup/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the existing config (or defaults) so re-running keeps values.
	cfg, _ := config.Load()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Customers CSV").
				Description("Path to the customers input file").
				Value(&cfg.Paths.Customers),
			huh.NewInput().
				Title("Transactions CSV").
				Description("Path to the transactions input file").
				Value(&cfg.Paths.Transactions),
			huh.NewInput().
				Title("Output path").
				Description("Where the monthly summary is written").
				Value(&cfg.Paths.Output),
			huh.NewSelect[string]().
				Title("Output format").
				Options(
					huh.NewOption("CSV", "csv"),
					huh.NewOption("SQLite", "sqlite"),
				).
				Value(&cfg.Output.Format),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `txrollup setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
