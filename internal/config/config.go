package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for outliner
type Config struct {
	// WholeFile re-emits the lines around the enclosing function by default
	WholeFile bool `yaml:"whole_file" env:"OUTLINER_WHOLE_FILE"`

	// InterchangeFormat is the default document format (auto, xml, yaml, json, msgpack)
	InterchangeFormat string `yaml:"interchange_format" env:"OUTLINER_INTERCHANGE_FORMAT"`

	// Indent prefixes generated statements
	Indent string `yaml:"indent" env:"OUTLINER_INDENT"`

	// Verify runs a syntax check over the emitted source
	Verify bool `yaml:"verify" env:"OUTLINER_VERIFY"`
	// VerifyStrict turns syntax issues found by Verify into failures
	VerifyStrict bool `yaml:"verify_strict" env:"OUTLINER_VERIFY_STRICT"`

	// Logging
	LogLevel string `yaml:"log_level" env:"OUTLINER_LOG_LEVEL"`
	JSONLogs bool   `yaml:"json_logs" env:"OUTLINER_JSON_LOGS"`
}

var (
	validFormats = []string{"auto", "xml", "yaml", "json", "msgpack"}
	validLevels  = []string{"debug", "info", "warn", "error"}
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WholeFile:         false,
		InterchangeFormat: "auto",
		Indent:            "\t",
		Verify:            false,
		VerifyStrict:      false,
		LogLevel:          "warn",
		JSONLogs:          false,
	}
}

// GlobalConfigFilePath returns the global config file path (~/.outliner/config.yaml)
func GlobalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".outliner/config.yaml"
	}
	return filepath.Join(home, ".outliner", "config.yaml")
}

// ProjectConfigFilePath returns the project-level config file path (./.outliner/config.yaml)
func ProjectConfigFilePath() string {
	return filepath.Join(".outliner", "config.yaml")
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.outliner/config.yaml)
// 3. Global config (~/.outliner/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{GlobalConfigFilePath(), ProjectConfigFilePath()} {
		if err := mergeFile(cfg, path, true); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := mergeFile(cfg, path, false); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func mergeFile(cfg *Config, path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OUTLINER_WHOLE_FILE"); v != "" {
		cfg.WholeFile = parseBool(v)
	}
	if v := os.Getenv("OUTLINER_INTERCHANGE_FORMAT"); v != "" {
		cfg.InterchangeFormat = strings.ToLower(v)
	}
	if v := os.Getenv("OUTLINER_INDENT"); v != "" {
		cfg.Indent = parseIndent(v)
	}
	if v := os.Getenv("OUTLINER_VERIFY"); v != "" {
		cfg.Verify = parseBool(v)
	}
	if v := os.Getenv("OUTLINER_VERIFY_STRICT"); v != "" {
		cfg.VerifyStrict = parseBool(v)
	}
	if v := os.Getenv("OUTLINER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("OUTLINER_JSON_LOGS"); v != "" {
		cfg.JSONLogs = parseBool(v)
	}
}

func parseBool(s string) bool {
	return s == "true" || s == "1" || s == "yes"
}

// parseIndent accepts "tab" and a number of spaces in addition to a
// literal indentation string, since tabs are awkward in env values.
func parseIndent(s string) string {
	if s == "tab" {
		return "\t"
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && n > 0 && n <= 16 && fmt.Sprint(n) == s {
		return strings.Repeat(" ", n)
	}
	return s
}

// Validate checks that the configuration has valid required fields
func (c *Config) Validate() error {
	if !contains(validFormats, c.InterchangeFormat) {
		return fmt.Errorf("invalid interchange_format: %s (must be one of %s)", c.InterchangeFormat, strings.Join(validFormats, ", "))
	}
	if !contains(validLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s (must be one of %s)", c.LogLevel, strings.Join(validLevels, ", "))
	}
	if c.Indent == "" {
		return fmt.Errorf("indent must not be empty")
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("indent must contain only spaces and tabs, got %q", c.Indent)
	}
	if c.VerifyStrict && !c.Verify {
		return fmt.Errorf("verify_strict requires verify")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
