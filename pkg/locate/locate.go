// Package locate finds C function definitions and their line extents.
//
// It is a helper for authoring interchange documents: the function span of
// a document is the StartLine..EndLine of one of the functions reported
// here.
package locate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// ErrNotFound is returned by Find when no function has the requested name.
var ErrNotFound = errors.New("function not found")

// cParserPool is a pool of reusable tree-sitter parsers for C.
var cParserPool = sync.Pool{
	New: func() interface{} {
		parser := sitter.NewParser()
		parser.SetLanguage(c.GetLanguage())
		return parser
	},
}

// Function is one function definition. Lines are 1-based and inclusive.
type Function struct {
	Name       string `json:"name"`
	ReturnType string `json:"return_type"`
	Params     string `json:"params"`
	StartLine  int    `json:"start_line"`
	// BodyStartLine holds the opening brace of the body.
	BodyStartLine int  `json:"body_start_line"`
	EndLine       int  `json:"end_line"`
	IsStatic      bool `json:"is_static,omitempty"`
}

// Lines is the number of lines the definition spans.
func (f Function) Lines() int {
	return f.EndLine - f.StartLine + 1
}

// Parse parses C source with a pooled parser.
func Parse(ctx context.Context, content []byte) (*sitter.Tree, error) {
	parser := cParserPool.Get().(*sitter.Parser)
	defer cParserPool.Put(parser)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing C source: %w", err)
	}
	if tree == nil {
		return nil, errors.New("parsing C source failed")
	}
	return tree, nil
}

// Functions lists the function definitions in content in source order.
func Functions(ctx context.Context, content []byte) ([]Function, error) {
	tree, err := Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var functions []Function
	walkForFunctions(tree.RootNode(), content, &functions)
	return functions, nil
}

// FunctionsInFile reads path and lists its function definitions.
func FunctionsInFile(ctx context.Context, path string) ([]Function, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Functions(ctx, content)
}

// Find returns the first definition of name.
func Find(ctx context.Context, content []byte, name string) (Function, error) {
	functions, err := Functions(ctx, content)
	if err != nil {
		return Function{}, err
	}
	for _, fn := range functions {
		if fn.Name == name {
			return fn, nil
		}
	}
	return Function{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// At returns the definition whose extent contains line.
func At(functions []Function, line int) (Function, bool) {
	for _, fn := range functions {
		if line >= fn.StartLine && line <= fn.EndLine {
			return fn, true
		}
	}
	return Function{}, false
}

func walkForFunctions(node *sitter.Node, content []byte, functions *[]Function) {
	if node == nil {
		return
	}

	if node.Type() == "function_definition" {
		if fn, ok := parseFunctionDefinition(node, content); ok {
			*functions = append(*functions, fn)
		}
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkForFunctions(node.NamedChild(i), content, functions)
	}
}

func parseFunctionDefinition(node *sitter.Node, content []byte) (Function, bool) {
	fn := Function{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}

	if typ := node.ChildByFieldName("type"); typ != nil {
		fn.ReturnType = typ.Content(content)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "storage_class_specifier":
			if child.Content(content) == "static" {
				fn.IsStatic = true
			}
		case "type_qualifier":
			fn.ReturnType = child.Content(content) + " " + fn.ReturnType
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		fn.BodyStartLine = int(body.StartPoint().Row) + 1
	}

	// Pointer declarators wrap the function declarator once per '*'.
	decl := node.ChildByFieldName("declarator")
	stars := 0
	for decl != nil && decl.Type() != "function_declarator" {
		switch decl.Type() {
		case "pointer_declarator":
			stars++
			decl = decl.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			decl = decl.NamedChild(0)
		default:
			decl = nil
		}
	}
	if decl == nil {
		return Function{}, false
	}
	if stars > 0 {
		fn.ReturnType += " " + strings.Repeat("*", stars)
	}

	name := decl.ChildByFieldName("declarator")
	if name == nil || name.Type() != "identifier" {
		return Function{}, false
	}
	fn.Name = name.Content(content)
	if params := decl.ChildByFieldName("parameters"); params != nil {
		fn.Params = params.Content(content)
	}
	return fn, true
}
