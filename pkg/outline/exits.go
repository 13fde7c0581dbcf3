package outline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mamysa/CFunctionOutliner/pkg/variable"
)

// ExitKind names the shape of an exit statement.
type ExitKind int

const (
	ExitReturn ExitKind = iota
	ExitReturnVoid
	ExitGoto
)

func (k ExitKind) String() string {
	switch k {
	case ExitReturn:
		return "return"
	case ExitReturnVoid:
		return "return-void"
	case ExitGoto:
		return "goto"
	default:
		return "unknown"
	}
}

// ExitAction is what the caller does once the flag of an exit site is
// set. It is one of Return, ReturnVoid or Goto.
type ExitAction interface {
	Kind() ExitKind
}

// Return relays a returned value through Value.
type Return struct {
	Value variable.Descriptor
	Expr  string
}

// ReturnVoid returns from the caller with no value.
type ReturnVoid struct{}

// Goto jumps to Label in the caller.
type Goto struct {
	Label string
}

func (Return) Kind() ExitKind     { return ExitReturn }
func (ReturnVoid) Kind() ExitKind { return ExitReturnVoid }
func (Goto) Kind() ExitKind       { return ExitGoto }

// ExitSite is a rewritten exit from the region.
type ExitSite struct {
	Line   int
	Flag   variable.Descriptor
	Action ExitAction
}

// ParseExitStatement classifies one exit line. The line must hold exactly
// one return or goto statement, optionally indented and terminated by ';'.
// operand is the returned expression or the goto label.
func ParseExitStatement(line string) (kind ExitKind, operand string, err error) {
	body := strings.TrimLeft(line, " \t")
	body = strings.TrimRight(body, "\r\n; ")
	stripped := StripLiterals(body)

	var keyword string
	switch {
	case hasKeyword(stripped, "return"):
		keyword, kind = "return", ExitReturn
	case hasKeyword(stripped, "goto"):
		keyword, kind = "goto", ExitGoto
	default:
		return 0, "", fmt.Errorf("expected a return or goto statement, got %q", strings.TrimSpace(line))
	}

	if !strings.HasPrefix(body, keyword) {
		return 0, "", fmt.Errorf("unexpected content before %s statement in %q", keyword, strings.TrimSpace(line))
	}
	rest := stripped[len(keyword):]
	if strings.ContainsAny(rest, "{};") {
		return 0, "", fmt.Errorf("unexpected content after %s statement in %q", keyword, strings.TrimSpace(line))
	}
	operand = strings.TrimSpace(body[len(keyword):])

	switch kind {
	case ExitGoto:
		if !isIdentifier(operand) {
			return 0, "", fmt.Errorf("goto needs a label, got %q", operand)
		}
	case ExitReturn:
		if operand == "" {
			kind = ExitReturnVoid
		}
	}
	return kind, operand, nil
}

// hasKeyword reports whether s begins with keyword as a whole word.
func hasKeyword(s, keyword string) bool {
	if !strings.HasPrefix(s, keyword) {
		return false
	}
	return len(s) == len(keyword) || !isIdentChar(s[len(keyword)])
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isIdentifier(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// RewriteExits replaces every exit line of the region with stores into the
// result structure followed by a return of it, and records an ExitSite on
// fn for each. Exit lines are processed once each, in ascending order.
func (c *ExtractionContext) RewriteExits(fn *Function) error {
	lines := append([]int(nil), c.ExitLines...)
	sort.Ints(lines)

	prev := 0
	for _, n := range lines {
		if n == prev {
			continue
		}
		prev = n

		text, ok := c.RegionLines.Get(n)
		if !ok {
			return exitShapeError(n, "exit line is outside region %s", c.Region)
		}
		kind, operand, err := ParseExitStatement(text)
		if err != nil {
			return &Error{Kind: KindExitShape, Line: n, Msg: "malformed exit statement", Err: err}
		}

		site := ExitSite{Line: n, Flag: fn.flagVar(n)}
		switch kind {
		case ExitReturn:
			site.Action = Return{Value: fn.valueVar(n), Expr: operand}
		case ExitReturnVoid:
			site.Action = ReturnVoid{}
		case ExitGoto:
			site.Action = Goto{Label: operand}
		}

		c.RegionLines.Set(n, leadingSpace(text)+"{ "+strings.Join(exitStores(fn, site), " ")+" }")
		fn.Exits = append(fn.Exits, site)
		c.logger.Debug("rewrote region exit", "line", n, "kind", kind)
	}
	return nil
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
