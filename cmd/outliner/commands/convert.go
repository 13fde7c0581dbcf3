package commands

import (
	"bytes"
	"fmt"

	"github.com/mamysa/CFunctionOutliner/pkg/interchange"
	"github.com/spf13/cobra"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <document> --to <format>",
	Short: "Convert an interchange document between formats",
	Long: `Reads an interchange document, validates it and writes it in another
format: xml, yaml, json or msgpack. Without -o the result goes to stdout.
When -o is given, --to defaults to the format of its extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fromName, _ := cmd.Flags().GetString("from")
		toName, _ := cmd.Flags().GetString("to")
		output, _ := cmd.Flags().GetString("output")

		from, err := interchange.ParseFormat(fromName)
		if err != nil {
			return err
		}
		to, err := interchange.ParseFormat(toName)
		if err != nil {
			return err
		}
		if to == interchange.FormatAuto {
			if output == "" {
				return fmt.Errorf("--to is required when writing to stdout")
			}
			to = interchange.DetectFormat(output)
		}

		doc, err := interchange.Load(args[0], from)
		if err != nil {
			return err
		}

		if output != "" {
			if err := interchange.Save(output, doc, to); err != nil {
				return err
			}
			logger.Info("document converted", "from", args[0], "to", output, "format", to)
			return nil
		}

		var buf bytes.Buffer
		if err := interchange.Encode(&buf, doc, to); err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

func init() {
	convertCmd.Flags().String("from", "", "input format (default: by extension)")
	convertCmd.Flags().String("to", "", "output format: xml, yaml, json or msgpack")
	convertCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}
