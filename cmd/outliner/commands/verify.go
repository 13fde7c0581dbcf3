package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mamysa/CFunctionOutliner/pkg/verify"
	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file.c>",
	Short: "Run a syntax check over a C file",
	Long: `Parses a C file and reports syntax errors and missing tokens. With
--function the file must also define the named function. Exits non-zero
when anything is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file %s: %w", args[0], err)
		}

		report, err := verify.Check(cmd.Context(), content)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("function")
		missing := name != "" && !report.HasFunction(name)

		out := cmd.OutOrStdout()
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "%s:%s\n", args[0], issue)
			}
			if report.OK() && !missing {
				fmt.Fprintf(out, "%s: ok (%d functions)\n", args[0], len(report.Functions))
			}
		}

		if missing {
			return fmt.Errorf("function %s is not defined in %s", name, args[0])
		}
		if !report.OK() {
			return fmt.Errorf("found %d syntax issues in %s", len(report.Issues), args[0])
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().String("function", "", "require a definition of this function")
	verifyCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
