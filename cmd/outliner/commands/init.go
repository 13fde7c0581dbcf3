package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mamysa/CFunctionOutliner/internal/config"
	"github.com/mamysa/CFunctionOutliner/internal/healthcheck"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize outliner configuration interactively",
	Long: `Guides you through setting up outliner configuration step by step and
runs a health check against the saved file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		return runInit(cmd, global)
	},
}

func init() {
	initCmd.Flags().Bool("global", false, "save to ~/.outliner/config.yaml without asking")
}

// initAnswers holds what the wizard asked for.
type initAnswers struct {
	Format    string
	Indent    string
	WholeFile bool
	Verify    bool
	Strict    bool
	Location  string // "global" or "project"
}

// indentChoices maps wizard options to indentation strings.
var indentChoices = map[string]string{
	"tab":     "\t",
	"2spaces": "  ",
	"4spaces": "    ",
}

func runInit(cmd *cobra.Command, global bool) error {
	answers := initAnswers{Format: "auto", Indent: "tab", Location: "project"}
	if global {
		answers.Location = "global"
	}

	// === SECTION 1: Documents and output ===
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Interchange format").
				Description("Format of the documents describing regions to extract").
				Options(
					huh.NewOption("Detect from file extension", "auto"),
					huh.NewOption("XML", "xml"),
					huh.NewOption("YAML", "yaml"),
					huh.NewOption("JSON", "json"),
					huh.NewOption("MessagePack", "msgpack"),
				).
				Value(&answers.Format),
			huh.NewSelect[string]().
				Title("Indentation").
				Description("Used for generated statements").
				Options(
					huh.NewOption("Tab", "tab"),
					huh.NewOption("2 spaces", "2spaces"),
					huh.NewOption("4 spaces", "4spaces"),
				).
				Value(&answers.Indent),
			huh.NewConfirm().
				Title("Emit whole files by default?").
				Description("Re-emit the lines around the enclosing function, like --append").
				Value(&answers.WholeFile),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 2: Verification ===
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Syntax-check output?").
				Description("Parse every emitted file and log syntax issues").
				Value(&answers.Verify),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	if answers.Verify {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Fail on syntax issues?").
					Affirmative("Fail").
					Negative("Only warn").
					Value(&answers.Strict),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	// === SECTION 3: Config Location ===
	if !global {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Save Configuration").
					Description("Where to save the configuration file?").
					Options(
						huh.NewOption("Project (./.outliner/config.yaml)", "project"),
						huh.NewOption("Global (~/.outliner/config.yaml)", "global"),
					).
					Value(&answers.Location),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	configPath := config.ProjectConfigFilePath()
	if answers.Location == "global" {
		configPath = config.GlobalConfigFilePath()
	}

	if fileExists(configPath) {
		var overwrite bool
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Config file exists").
					Description(fmt.Sprintf("Overwrite existing config at %s?", configPath)).
					Affirmative("Overwrite").
					Negative("Cancel").
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
		if !overwrite {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	return saveInitConfig(cmd, configPath, answers)
}

// saveInitConfig turns the answers into a config, saves it and runs a
// health check against the saved file.
func saveInitConfig(cmd *cobra.Command, configPath string, answers initAnswers) error {
	out := cmd.OutOrStdout()

	newCfg, err := buildConfig(answers)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n=== Configuration Preview ===")
	fmt.Fprintf(out, "Config path: %s\n", configPath)
	fmt.Fprintf(out, "Interchange format: %s\n", newCfg.InterchangeFormat)
	fmt.Fprintf(out, "Indent: %q\n", newCfg.Indent)
	fmt.Fprintf(out, "Whole file: %v\n", newCfg.WholeFile)
	fmt.Fprintf(out, "Verify: %v (strict: %v)\n", newCfg.Verify, newCfg.VerifyStrict)
	fmt.Fprintln(out, "================================")

	if err := newCfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "Configuration saved to: %s\n", configPath)

	// === SECTION 4: Health Check ===
	fmt.Fprintln(out, "\n=== Running Health Check ===")

	loadedCfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading saved config: %w", err)
	}

	result, err := healthcheck.Check(cmd.Context(), loadedCfg, configPath, configPath)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	displayHealthResult(out, result)

	if result.Failed() {
		return fmt.Errorf("health check failed: see the checks above")
	}
	return nil
}

func buildConfig(answers initAnswers) (*config.Config, error) {
	newCfg := config.DefaultConfig()
	newCfg.InterchangeFormat = answers.Format

	indent, ok := indentChoices[answers.Indent]
	if !ok {
		return nil, fmt.Errorf("unknown indentation choice %q", answers.Indent)
	}
	newCfg.Indent = indent
	newCfg.WholeFile = answers.WholeFile
	newCfg.Verify = answers.Verify
	newCfg.VerifyStrict = answers.Verify && answers.Strict

	if err := newCfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return newCfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func displayHealthResult(out io.Writer, result *healthcheck.HealthCheckResult) {
	if result.EffectivePath != "" {
		fmt.Fprintf(out, "Using config: %s (%s)\n\n", result.EffectivePath, result.EffectiveScope)
	} else {
		fmt.Fprint(out, "Using config: built-in defaults\n\n")
	}

	for _, check := range result.Checks {
		fmt.Fprintf(out, "%s %s: %s", formatStatusIcon(check.Status), check.Name, check.Status)
		if check.Detail != "" {
			fmt.Fprintf(out, " (%s)", check.Detail)
		}
		fmt.Fprintln(out)
		if check.Error != "" {
			fmt.Fprintf(out, "  Error: %s\n", check.Error)
		}
	}
}

func formatStatusIcon(status string) string {
	switch status {
	case healthcheck.StatusOK:
		return "✓"
	case healthcheck.StatusSkipped:
		return "-"
	case healthcheck.StatusError:
		return "✗"
	default:
		return "?"
	}
}
