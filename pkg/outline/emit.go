package outline

import (
	"fmt"
	"strings"
)

// Each emitter renders one structural element as a sequence of lines.

func emitResultDecl(fn *Function, indent string) []string {
	lines := []string{fn.StructType() + " {"}
	for _, v := range fn.crossing() {
		if member, ok := v.StructMember(); ok {
			lines = append(lines, indent+member)
		}
	}
	for _, site := range fn.Exits {
		member, _ := site.Flag.StructMember()
		lines = append(lines, indent+member)
		if ret, ok := site.Action.(Return); ok {
			member, _ := ret.Value.StructMember()
			lines = append(lines, indent+member)
		}
	}
	return append(lines, "};", "")
}

func emitSignature(fn *Function, toplevel bool) []string {
	params := make([]string, 0, len(fn.Inputs))
	for _, v := range fn.Inputs {
		params = append(params, v.Argument())
	}
	return []string{fmt.Sprintf("%s %s(%s) {", fn.SignatureType(toplevel), fn.Name, strings.Join(params, ", "))}
}

func emitResultInit(fn *Function, indent string) []string {
	result := fn.ResultVar()
	lines := []string{fmt.Sprintf("%s%s %s;", indent, fn.StructType(), result)}
	for _, site := range fn.Exits {
		lines = append(lines, fmt.Sprintf("%s%s.%s = 0;", indent, result, site.Flag.Name))
	}
	return lines
}

// storeAll stores every storable crossing variable into the result.
func storeAll(fn *Function) []string {
	var stmts []string
	for _, v := range fn.crossing() {
		if stmt, ok := v.Store(fn.ResultVar()); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// exitStores is the statement sequence that replaces an exit line.
func exitStores(fn *Function, site ExitSite) []string {
	result := fn.ResultVar()
	stmts := []string{fmt.Sprintf("%s.%s = 1;", result, site.Flag.Name)}
	switch a := site.Action.(type) {
	case Return:
		stmts = append(stmts, fmt.Sprintf("%s.%s = %s;", result, a.Value.Name, a.Expr))
	case ReturnVoid:
	case Goto:
		stmts = append(stmts, storeAll(fn)...)
	}
	return append(stmts, fmt.Sprintf("return %s;", result))
}

func emitFallthrough(fn *Function, indent string) []string {
	var lines []string
	for _, stmt := range storeAll(fn) {
		lines = append(lines, indent+stmt)
	}
	return append(lines, fmt.Sprintf("%sreturn %s;", indent, fn.ResultVar()))
}

// emitClosing closes the extracted function unless the region's own last
// line already did.
func emitClosing(c *ExtractionContext) []string {
	if c.Region.Balanced() {
		return []string{"}", ""}
	}
	return []string{""}
}

func emitCall(fn *Function, toplevel bool, indent string) []string {
	args := make([]string, 0, len(fn.Inputs))
	for _, v := range fn.Inputs {
		args = append(args, v.Name)
	}
	call := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(args, ", "))

	switch {
	case toplevel && fn.ReturnType == "void":
		return []string{indent + call + ";"}
	case toplevel:
		return []string{indent + "return " + call + ";"}
	default:
		return []string{fmt.Sprintf("%s%s %s = %s;", indent, fn.StructType(), fn.ResultVar(), call)}
	}
}

func emitRestore(fn *Function, indent string) []string {
	result := fn.ResultVar()
	var lines []string
	for _, v := range fn.Inputs {
		if stmt, ok := v.Restore(result); ok {
			lines = append(lines, indent+stmt)
		}
	}
	for _, v := range fn.Outputs {
		for _, stmt := range v.DeclareAndInitialize(result) {
			lines = append(lines, indent+stmt)
		}
	}
	for _, site := range fn.Exits {
		lines = append(lines, indent+exitCheck(site, result))
	}
	return lines
}

func exitCheck(site ExitSite, result string) string {
	var action string
	switch a := site.Action.(type) {
	case Return:
		action = fmt.Sprintf("return %s.%s;", result, a.Value.Name)
	case ReturnVoid:
		action = "return;"
	case Goto:
		action = fmt.Sprintf("goto %s;", a.Label)
	}
	return fmt.Sprintf("if (%s.%s) { %s }", result, site.Flag.Name, action)
}
