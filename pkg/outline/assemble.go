package outline

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mamysa/CFunctionOutliner/pkg/interchange"
)

// Assemble emits the extracted function followed by the rewritten
// enclosing function. In toplevel mode the result structure, its
// initialization, the fallthrough stores and the restoration block are
// all omitted.
func Assemble(c *ExtractionContext, fn *Function) []string {
	var out []string
	out = append(out, c.Prologue...)

	if !c.Toplevel {
		out = append(out, emitResultDecl(fn, c.indent)...)
	}
	out = append(out, emitSignature(fn, c.Toplevel)...)
	if !c.Toplevel {
		out = append(out, emitResultInit(fn, c.indent)...)
	}
	out = append(out, c.RegionLines.Texts()...)
	if !c.Toplevel {
		out = append(out, emitFallthrough(fn, c.indent)...)
	}
	out = append(out, emitClosing(c)...)

	out = append(out, c.Remainder.Range(c.Function.Start, c.Region.Start-1)...)
	out = append(out, emitCall(fn, c.Toplevel, c.indent)...)
	if !c.Toplevel {
		out = append(out, emitRestore(fn, c.indent)...)
	}
	out = append(out, c.Remainder.Range(c.Region.End+1, c.Function.End)...)

	return append(out, c.Epilogue...)
}

// Extract runs the whole pipeline over one document and one source and
// returns the transformed source lines. Nothing is produced on error.
func Extract(doc *interchange.Document, src io.Reader, opts Options) ([]string, error) {
	c, err := NewContext(doc, src, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Normalize(); err != nil {
		return nil, err
	}

	fn := NewFunction(c.Name, c.ReturnType, c.Variables)
	if c.Toplevel {
		if len(c.ExitLines) > 0 {
			c.logger.Debug("toplevel region keeps its exits as written", "exits", len(c.ExitLines))
		}
	} else if err := c.RewriteExits(fn); err != nil {
		return nil, err
	}

	return Assemble(c, fn), nil
}

// WriteLines writes each line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return bw.Flush()
}
