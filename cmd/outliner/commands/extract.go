package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mamysa/CFunctionOutliner/pkg/interchange"
	"github.com/mamysa/CFunctionOutliner/pkg/outline"
	"github.com/mamysa/CFunctionOutliner/pkg/verify"
	"github.com/spf13/cobra"
)

var (
	extractDoc    string
	extractSrc    string
	extractFormat string
	extractAppend bool
	extractVerify bool
	extractStrict bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract --xml <document> --src <file.c>",
	Short: "Outline a region of a C function",
	Long: `Reads an interchange document describing a region of a C function and the
source file it refers to, and writes the transformed source to stdout: the
extracted function first, then the enclosing function with the region
replaced by a call.

With --append the lines before and after the enclosing function are
re-emitted too, so the output is a drop-in replacement for the whole file.

Nothing is written to stdout unless the whole transformation succeeds.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringVar(&extractDoc, "xml", "", "interchange document (xml, yaml, json or msgpack)")
	f.StringVar(&extractSrc, "src", "", "C source file")
	f.BoolVar(&extractAppend, "append", false, "emit the whole file, not just the enclosing function")
	f.StringVar(&extractFormat, "format", "", "interchange format (default: from config, else by extension)")
	f.BoolVar(&extractVerify, "verify", false, "syntax-check the output and log any issues")
	f.BoolVar(&extractStrict, "strict", false, "fail when the syntax check finds issues (implies --verify)")
	_ = extractCmd.MarkFlagRequired("xml")
	_ = extractCmd.MarkFlagRequired("src")
}

func runExtract(cmd *cobra.Command, args []string) error {
	formatName := cfg.InterchangeFormat
	if cmd.Flags().Changed("format") {
		formatName = extractFormat
	}
	format, err := interchange.ParseFormat(formatName)
	if err != nil {
		return err
	}

	doc, err := loadDocument(extractDoc, format)
	if err != nil {
		return err
	}

	src, err := os.Open(extractSrc)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	wholeFile := cfg.WholeFile
	if cmd.Flags().Changed("append") {
		wholeFile = extractAppend
	}

	lines, err := outline.Extract(doc, src, outline.Options{
		WholeFile: wholeFile,
		Indent:    cfg.Indent,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	logger.Debug("extraction finished", "function", doc.FuncName, "lines", len(lines))

	strict := extractStrict || cfg.VerifyStrict
	if extractVerify || strict || cfg.Verify {
		if err := checkOutput(cmd, lines, doc.FuncName, strict); err != nil {
			return err
		}
	}

	return outline.WriteLines(cmd.OutOrStdout(), lines)
}

// loadDocument decodes and validates an interchange document. Any failure
// is a metadata error.
func loadDocument(path string, format interchange.Format) (*interchange.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading interchange document: %w", err)
	}
	if format == interchange.FormatAuto {
		format = interchange.DetectFormat(path)
	}

	doc, err := interchange.Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, outline.MetadataError(fmt.Errorf("%s: %w", path, err))
	}
	if err := doc.Validate(); err != nil {
		return nil, outline.MetadataError(fmt.Errorf("%s: %w", path, err))
	}
	logger.Debug("interchange document loaded",
		"path", path,
		"format", format,
		"region", doc.RegionSpan(),
		"function", doc.FunctionSpan(),
		"variables", len(doc.Variables),
		"exits", len(doc.RegionExits))
	return doc, nil
}

func checkOutput(cmd *cobra.Command, lines []string, name string, strict bool) error {
	report, err := verify.CheckLines(cmd.Context(), lines)
	if err != nil {
		return err
	}

	for _, issue := range report.Issues {
		logger.Warn("output syntax issue", "at", issue.String())
	}
	missing := !report.HasFunction(name)
	if missing {
		logger.Warn("extracted function not found in output", "function", name)
	}

	if strict && (!report.OK() || missing) {
		return fmt.Errorf("verification failed: %d syntax issues in output", len(report.Issues))
	}
	return nil
}
