package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"WholeFile", cfg.WholeFile, false},
		{"InterchangeFormat", cfg.InterchangeFormat, "auto"},
		{"Indent", cfg.Indent, "\t"},
		{"Verify", cfg.Verify, false},
		{"VerifyStrict", cfg.VerifyStrict, false},
		{"LogLevel", cfg.LogLevel, "warn"},
		{"JSONLogs", cfg.JSONLogs, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("DefaultConfig().%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "msgpack format", mutate: func(c *Config) { c.InterchangeFormat = "msgpack" }},
		{name: "four spaces", mutate: func(c *Config) { c.Indent = "    " }},
		{name: "strict verify", mutate: func(c *Config) { c.Verify, c.VerifyStrict = true, true }},
		{
			name:        "unknown format",
			mutate:      func(c *Config) { c.InterchangeFormat = "toml" },
			wantErr:     true,
			errContains: "interchange_format",
		},
		{
			name:        "unknown level",
			mutate:      func(c *Config) { c.LogLevel = "trace" },
			wantErr:     true,
			errContains: "log_level",
		},
		{
			name:        "empty indent",
			mutate:      func(c *Config) { c.Indent = "" },
			wantErr:     true,
			errContains: "indent",
		},
		{
			name:        "non-blank indent",
			mutate:      func(c *Config) { c.Indent = "--" },
			wantErr:     true,
			errContains: "spaces and tabs",
		},
		{
			name:        "strict without verify",
			mutate:      func(c *Config) { c.VerifyStrict = true },
			wantErr:     true,
			errContains: "verify_strict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errContains)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		wantErr  bool
		validate func(*testing.T, *Config)
	}{
		{
			name: "full file",
			content: `whole_file: true
interchange_format: yaml
indent: "  "
verify: true
verify_strict: true
log_level: debug
json_logs: true
`,
			validate: func(t *testing.T, c *Config) {
				if !c.WholeFile || c.InterchangeFormat != "yaml" || c.Indent != "  " {
					t.Errorf("unexpected config %+v", c)
				}
				if !c.Verify || !c.VerifyStrict || c.LogLevel != "debug" || !c.JSONLogs {
					t.Errorf("unexpected config %+v", c)
				}
			},
		},
		{
			name:    "partial file keeps defaults",
			content: "verify: true\n",
			validate: func(t *testing.T, c *Config) {
				if !c.Verify {
					t.Error("Verify = false, want true")
				}
				if c.Indent != "\t" || c.InterchangeFormat != "auto" {
					t.Errorf("defaults lost: %+v", c)
				}
			},
		},
		{
			name:    "env overrides file",
			content: "interchange_format: xml\nlog_level: info\n",
			env:     map[string]string{"OUTLINER_INTERCHANGE_FORMAT": "JSON", "OUTLINER_LOG_LEVEL": "error"},
			validate: func(t *testing.T, c *Config) {
				if c.InterchangeFormat != "json" {
					t.Errorf("InterchangeFormat = %q, want json", c.InterchangeFormat)
				}
				if c.LogLevel != "error" {
					t.Errorf("LogLevel = %q, want error", c.LogLevel)
				}
			},
		},
		{
			name:    "invalid yaml",
			content: "indent: [\n",
			wantErr: true,
		},
		{
			name:    "invalid value",
			content: "log_level: loud\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := LoadFromFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFromFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromFile() on missing file succeeded, want error")
	}
}

func TestLoadPrecedence(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, project)

	global := &Config{InterchangeFormat: "yaml", Indent: "  ", LogLevel: "info", Verify: true}
	if err := global.Save(filepath.Join(home, ".outliner", "config.yaml")); err != nil {
		t.Fatalf("saving global config: %v", err)
	}
	if err := os.MkdirAll(".outliner", 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ProjectConfigFilePath(), []byte("interchange_format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OUTLINER_INDENT", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.InterchangeFormat != "json" {
		t.Errorf("InterchangeFormat = %q, want project value json", cfg.InterchangeFormat)
	}
	if cfg.LogLevel != "info" || !cfg.Verify {
		t.Errorf("global values lost: %+v", cfg)
	}
	if cfg.Indent != "    " {
		t.Errorf("Indent = %q, want four spaces from env", cfg.Indent)
	}
}

func TestLoadWithoutFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestParseIndent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tab", "\t"},
		{"2", "  "},
		{"4", "    "},
		{"  ", "  "},
		{"\t", "\t"},
		{"0", "0"},
		{"99", "99"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseIndent(tt.in); got != tt.want {
				t.Errorf("parseIndent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := DefaultConfig()
	cfg.WholeFile = true
	cfg.Indent = "  "
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
