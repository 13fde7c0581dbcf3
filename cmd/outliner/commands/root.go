package commands

import (
	"fmt"

	"github.com/mamysa/CFunctionOutliner/internal/config"
	"github.com/mamysa/CFunctionOutliner/internal/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	// Settings resolved before any subcommand runs.
	cfg     *config.Config
	cfgPath string
	logger  log.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "outliner - Outline a region of C code into its own function",
	Long: `outliner moves a contiguous region of a C function into a new standalone
function and replaces the region with a call to it. Variables crossing the
region boundary are passed in and handed back through a result structure;
early returns and gotos inside the region are relayed to the caller.

Commands:
  extract     Outline a region described by an interchange document
  functions   List function definitions and their line extents
  verify      Run a syntax check over a C file
  convert     Convert an interchange document between formats
  init        Create a configuration file interactively
  doctor      Check configuration and run a sample extraction

Use "outliner [command] --help" for more information about a command.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.outliner/config.yaml, then ~/.outliner/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	RootCmd.AddCommand(extractCmd)
	RootCmd.AddCommand(functionsCmd)
	RootCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(convertCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(doctorCmd)
}

// loadSettings loads the configuration and builds the logger. Log output
// goes to the command's error stream so stdout carries only results.
func loadSettings(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		cfgPath = cfgFile
	} else {
		cfg, err = config.Load()
		cfgPath = effectiveConfigPath()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = log.DebugLevel
	}
	logger = log.New(log.LoggerConfig{
		Level:      level,
		JSONOutput: cfg.JSONLogs,
		Output:     cmd.ErrOrStderr(),
	})
	logger.Debug("configuration loaded", "path", cfgPath, "format", cfg.InterchangeFormat)
	return nil
}

// effectiveConfigPath returns the highest-priority config file that exists.
func effectiveConfigPath() string {
	for _, path := range []string{config.ProjectConfigFilePath(), config.GlobalConfigFilePath()} {
		if fileExists(path) {
			return path
		}
	}
	return ""
}
