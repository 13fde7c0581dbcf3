package healthcheck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mamysa/CFunctionOutliner/internal/config"
	"github.com/mamysa/CFunctionOutliner/pkg/interchange"
	"github.com/mamysa/CFunctionOutliner/pkg/outline"
	"github.com/mamysa/CFunctionOutliner/pkg/verify"
)

// Status values for a single check.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// CheckStatus represents the outcome of a single check.
type CheckStatus struct {
	Name   string
	Status string
	Detail string
	Error  string
}

// HealthCheckResult contains the full health check output for display.
type HealthCheckResult struct {
	SavedPath      string
	SavedScope     string // "global" or "project"
	EffectivePath  string
	EffectiveScope string // "global" or "project"
	Checks         []CheckStatus
}

// Failed reports whether any check errored.
func (r *HealthCheckResult) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusError {
			return true
		}
	}
	return false
}

// sample is a small function with one early return, extracted on every
// health check to exercise the whole pipeline.
var sample = []string{
	"int find(int *v, int n) {",
	"	int i;",
	"	for (i = 0; i < n; i++) {",
	"		if (v[i] == 0)",
	"			return i;",
	"	}",
	"	return -1;",
	"}",
}

func sampleDocument() *interchange.Document {
	return &interchange.Document{
		FuncName:       "find_loop",
		FuncReturnType: "int",
		Region:         interchange.NewSpan(3, 6),
		Function:       interchange.NewSpan(1, 8),
		RegionExits:    []int{5},
		Variables: []interchange.Variable{
			{Name: "i", Type: "int"},
			{Name: "n", Type: "int"},
			{Name: "v", Type: "int *"},
		},
	}
}

// Check performs a health check against the given config.
// savedPath is where the user saved config (may be empty outside init).
// effectivePath is the config file actually in use (considering priority).
func Check(ctx context.Context, cfg *config.Config, savedPath string, effectivePath string) (*HealthCheckResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	result := &HealthCheckResult{
		SavedPath:      savedPath,
		SavedScope:     scopeFromPath(savedPath),
		EffectivePath:  effectivePath,
		EffectiveScope: scopeFromPath(effectivePath),
	}

	result.Checks = append(result.Checks, checkConfig(cfg))
	pipeline, lines := checkPipeline(cfg)
	result.Checks = append(result.Checks, pipeline)
	result.Checks = append(result.Checks, checkParser(ctx, lines))

	return result, nil
}

// scopeFromPath determines "global" or "project" scope from a config file path.
// Returns empty string if path is empty.
func scopeFromPath(path string) string {
	if path == "" {
		return ""
	}

	home, err := os.UserHomeDir()
	if err == nil {
		globalDir := filepath.Join(home, ".outliner")
		if strings.HasPrefix(path, globalDir) {
			return "global"
		}
	}

	return "project"
}

func checkConfig(cfg *config.Config) CheckStatus {
	status := CheckStatus{
		Name:   "config",
		Detail: fmt.Sprintf("format=%s indent=%q verify=%v", cfg.InterchangeFormat, cfg.Indent, cfg.Verify),
	}
	if err := cfg.Validate(); err != nil {
		status.Status = StatusError
		status.Error = err.Error()
		return status
	}
	status.Status = StatusOK
	return status
}

// checkPipeline extracts the sample region with the configured indent.
func checkPipeline(cfg *config.Config) (CheckStatus, []string) {
	status := CheckStatus{Name: "outline"}

	src := strings.NewReader(strings.Join(sample, "\n") + "\n")
	lines, err := outline.Extract(sampleDocument(), src, outline.Options{Indent: cfg.Indent})
	if err != nil {
		status.Status = StatusError
		status.Error = err.Error()
		return status, nil
	}

	status.Status = StatusOK
	status.Detail = fmt.Sprintf("sample extracted into %d lines", len(lines))
	return status, lines
}

// checkParser runs the syntax check over the pipeline's output.
func checkParser(ctx context.Context, lines []string) CheckStatus {
	status := CheckStatus{Name: "syntax"}
	if lines == nil {
		status.Status = StatusSkipped
		status.Detail = "no output to check"
		return status
	}

	report, err := verify.CheckLines(ctx, lines)
	if err != nil {
		status.Status = StatusError
		status.Error = err.Error()
		return status
	}
	if !report.OK() {
		status.Status = StatusError
		status.Error = fmt.Sprintf("%d syntax issues, first: %s", len(report.Issues), report.Issues[0])
		return status
	}
	if !report.HasFunction("find_loop") || !report.HasFunction("find") {
		status.Status = StatusError
		status.Error = "extracted or enclosing function missing from output"
		return status
	}

	status.Status = StatusOK
	status.Detail = fmt.Sprintf("%d functions parsed", len(report.Functions))
	return status
}
