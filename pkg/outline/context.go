// Package outline rewrites a region of a C function into a standalone
// function and replaces the region with a call to it.
//
// The pipeline runs in a fixed order over one ExtractionContext:
// NewContext routes source lines into the region and the rest of the
// function, Normalize fixes up the boundaries, RewriteExits turns early
// returns and gotos into flag stores, and Assemble produces the output.
package outline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mamysa/CFunctionOutliner/pkg/interchange"
	"github.com/mamysa/CFunctionOutliner/pkg/span"
	"github.com/mamysa/CFunctionOutliner/pkg/variable"
)

// Logger receives progress messages from the pipeline.
type Logger interface {
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

// Options control a single extraction.
type Options struct {
	// WholeFile re-emits the lines before and after the enclosing function.
	WholeFile bool
	// Indent prefixes generated statements. Defaults to a tab.
	Indent string
	Logger Logger
}

func (o Options) indent() string {
	if o.Indent == "" {
		return "\t"
	}
	return o.Indent
}

// ExtractionContext holds all state for one extraction. Line ownership
// moves between RegionLines and Remainder only during normalization.
type ExtractionContext struct {
	Name       string
	ReturnType string
	Toplevel   bool
	WholeFile  bool

	Function span.SourceSpan
	Region   span.SourceSpan

	RegionLines *span.LineSet
	Remainder   *span.LineSet
	Prologue    []string
	Epilogue    []string

	Variables []variable.Descriptor
	ExitLines []int

	indent string
	logger Logger
}

// NewContext validates doc and routes every line of src: lines of the
// region into RegionLines, other lines of the function into Remainder and,
// in whole-file mode, the rest into Prologue and Epilogue.
func NewContext(doc *interchange.Document, src io.Reader, opts Options) (*ExtractionContext, error) {
	if err := doc.Validate(); err != nil {
		return nil, metadataError(err)
	}

	ctx := &ExtractionContext{
		Name:        doc.FuncName,
		ReturnType:  doc.FuncReturnType,
		Toplevel:    doc.Toplevel,
		WholeFile:   opts.WholeFile,
		Function:    doc.FunctionSpan(),
		Region:      doc.RegionSpan(),
		RegionLines: span.NewLineSet(),
		Remainder:   span.NewLineSet(),
		Variables:   doc.Descriptors(),
		ExitLines:   append([]int(nil), doc.RegionExits...),
		indent:      opts.indent(),
		logger:      opts.Logger,
	}
	if ctx.logger == nil {
		ctx.logger = nopLogger{}
	}

	total, err := ctx.route(src)
	if err != nil {
		return nil, err
	}
	if total < ctx.Function.End {
		return nil, structuralError(total+1, "source has %d lines but function %s ends at line %d", total, ctx.Function, ctx.Function.End)
	}

	ctx.logger.Debug("routed source lines",
		"total", total,
		"region", ctx.RegionLines.Len(),
		"remainder", ctx.Remainder.Len(),
		"prologue", len(ctx.Prologue),
		"epilogue", len(ctx.Epilogue))
	return ctx, nil
}

func (c *ExtractionContext) route(src io.Reader) (int, error) {
	r := bufio.NewReader(src)
	lineNum := 0
	for {
		text, err := r.ReadString('\n')
		if text == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return lineNum, nil
			}
			return lineNum, fmt.Errorf("reading source: %w", err)
		}
		lineNum++
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")

		switch {
		case c.Region.Contains(lineNum):
			c.RegionLines.Set(lineNum, text)
		case c.Function.Contains(lineNum):
			c.Remainder.Set(lineNum, text)
		case c.WholeFile && lineNum < c.Function.Start:
			c.Prologue = append(c.Prologue, text)
		case c.WholeFile && lineNum > c.Function.End:
			c.Epilogue = append(c.Epilogue, text)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return lineNum, nil
			}
			return lineNum, fmt.Errorf("reading source: %w", err)
		}
	}
}
