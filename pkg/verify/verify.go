// Package verify runs a syntax check over C source produced by the
// outliner. It reports the parse errors and missing tokens tree-sitter
// recovers from, and which functions the source defines.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamysa/CFunctionOutliner/pkg/locate"
	sitter "github.com/smacker/go-tree-sitter"
)

// IssueKind classifies a syntax issue.
type IssueKind string

const (
	// SyntaxError marks text the parser could not fit into the grammar.
	SyntaxError IssueKind = "syntax_error"
	// MissingToken marks a token the parser had to insert to recover.
	MissingToken IssueKind = "missing"
)

// Issue is one syntax problem. Line and Column are 1-based.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
	Text   string    `json:"text"`
}

func (i Issue) String() string {
	switch i.Kind {
	case MissingToken:
		return fmt.Sprintf("%d:%d: missing %s", i.Line, i.Column, i.Text)
	default:
		return fmt.Sprintf("%d:%d: syntax error near %q", i.Line, i.Column, i.Text)
	}
}

// Report is the result of checking one source.
type Report struct {
	Issues    []Issue           `json:"issues"`
	Functions []locate.Function `json:"functions"`
}

// OK reports whether the source parsed cleanly.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// HasFunction reports whether the source defines name.
func (r *Report) HasFunction(name string) bool {
	for _, fn := range r.Functions {
		if fn.Name == name {
			return true
		}
	}
	return false
}

// Check parses content and collects its syntax issues and function
// definitions.
func Check(ctx context.Context, content []byte) (*Report, error) {
	tree, err := locate.Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	report := &Report{}
	root := tree.RootNode()
	if root.HasError() {
		collectIssues(root, content, &report.Issues)
	}

	functions, err := locate.Functions(ctx, content)
	if err != nil {
		return nil, err
	}
	report.Functions = functions
	return report, nil
}

// CheckLines joins lines the way the outliner writes them and checks them.
func CheckLines(ctx context.Context, lines []string) (*Report, error) {
	return Check(ctx, []byte(strings.Join(lines, "\n")+"\n"))
}

func collectIssues(node *sitter.Node, content []byte, issues *[]Issue) {
	if node == nil {
		return
	}

	switch {
	case node.IsMissing():
		*issues = append(*issues, newIssue(MissingToken, node, node.Type()))
		return
	case node.Type() == "ERROR":
		*issues = append(*issues, newIssue(SyntaxError, node, snippet(node.Content(content))))
		return
	}

	if !node.HasError() {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectIssues(node.Child(i), content, issues)
	}
}

func newIssue(kind IssueKind, node *sitter.Node, text string) Issue {
	start := node.StartPoint()
	return Issue{
		Kind:   kind,
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
		Text:   text,
	}
}

// snippet keeps the first line of an error node, shortened.
func snippet(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return text
}
