package verify

import (
	"context"
	"strings"
	"testing"
)

func TestCheckClean(t *testing.T) {
	lines := []string{
		"struct f_region_struct {",
		"	int x;",
		"};",
		"",
		"struct f_region_struct f_region(int x) {",
		"	struct f_region_struct f_region_retval;",
		"	x++;",
		"	f_region_retval.x = x;",
		"	return f_region_retval;",
		"}",
		"",
		"int f(int x) {",
		"	struct f_region_struct f_region_retval = f_region(x);",
		"	x = f_region_retval.x;",
		"	return x;",
		"}",
	}

	report, err := CheckLines(context.Background(), lines)
	if err != nil {
		t.Fatalf("CheckLines() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("unexpected issues: %v", report.Issues)
	}
	for _, name := range []string{"f_region", "f"} {
		if !report.HasFunction(name) {
			t.Errorf("HasFunction(%q) = false", name)
		}
	}
	if report.HasFunction("g") {
		t.Error("HasFunction(g) = true")
	}
}

func TestCheckReportsIssues(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"unbalanced braces", "int f(void) {\n\tif (1) {\n\t\treturn 0;\n}\n"},
		{"stray tokens", "int f(void) {\n\treturn 0;\n}\n}}\n"},
		{"broken statement", "int f(void) {\n\tint x = ;\n\treturn x;\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Check(context.Background(), []byte(tt.code))
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if report.OK() {
				t.Fatalf("Check(%q) reported no issues", tt.code)
			}
			for _, issue := range report.Issues {
				if issue.Line < 1 || issue.Column < 1 {
					t.Errorf("issue has invalid position: %+v", issue)
				}
				if issue.String() == "" {
					t.Error("empty issue string")
				}
			}
		})
	}
}

func TestIssueString(t *testing.T) {
	missing := Issue{Kind: MissingToken, Line: 3, Column: 2, Text: "}"}
	if got := missing.String(); got != "3:2: missing }" {
		t.Errorf("String() = %q", got)
	}
	syntax := Issue{Kind: SyntaxError, Line: 1, Column: 5, Text: "}}"}
	if got := syntax.String(); got != `1:5: syntax error near "}}"` {
		t.Errorf("String() = %q", got)
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("  a b\nc d"); got != "a b" {
		t.Errorf("snippet() = %q, want %q", got, "a b")
	}
	long := strings.Repeat("x", 60)
	if got := snippet(long); got != strings.Repeat("x", 40)+"..." {
		t.Errorf("snippet() = %q", got)
	}
}
