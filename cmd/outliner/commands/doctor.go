package commands

import (
	"fmt"

	"github.com/mamysa/CFunctionOutliner/internal/healthcheck"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and run a sample extraction",
	Long: `Validates the effective configuration, outlines a built-in sample
region with it and syntax-checks the result.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := healthcheck.Check(cmd.Context(), cfg, "", cfgPath)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		displayHealthResult(cmd.OutOrStdout(), result)

		if result.Failed() {
			return fmt.Errorf("health check failed: one or more checks reported an error")
		}
		return nil
	},
}
