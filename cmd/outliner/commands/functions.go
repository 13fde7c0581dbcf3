package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mamysa/CFunctionOutliner/pkg/locate"
	"github.com/spf13/cobra"
)

// functionsCmd represents the functions command
var functionsCmd = &cobra.Command{
	Use:   "functions <file.c>",
	Short: "List function definitions and their line extents",
	Long: `Lists every function definition in a C file with its return type and
1-based line extent. The extent is what the function span of an interchange
document refers to.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		info, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("stat file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("path is a directory, expected a file: %s", filePath)
		}

		functions, err := locate.FunctionsInFile(cmd.Context(), filePath)
		if err != nil {
			return err
		}
		logger.Debug("located functions", "path", filePath, "count", len(functions))

		out := cmd.OutOrStdout()
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			if functions == nil {
				functions = []locate.Function{}
			}
			data, err := json.MarshalIndent(functions, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(functions) == 0 {
			fmt.Fprintf(out, "no function definitions in %s\n", filePath)
			return nil
		}
		for _, fn := range functions {
			fmt.Fprintf(out, "%s %s%s\n", fn.ReturnType, fn.Name, fn.Params)
			fmt.Fprintf(out, "  lines %d-%d, body from %d\n", fn.StartLine, fn.EndLine, fn.BodyStartLine)
		}
		return nil
	},
}

func init() {
	functionsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
