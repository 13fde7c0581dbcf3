package outline

import (
	"strings"
	"testing"

	"github.com/mamysa/CFunctionOutliner/pkg/interchange"
	"github.com/stretchr/testify/require"
)

func newDoc(name, retType string, region, function [2]int) *interchange.Document {
	return &interchange.Document{
		FuncName:       name,
		FuncReturnType: retType,
		Region:         interchange.NewSpan(region[0], region[1]),
		Function:       interchange.NewSpan(function[0], function[1]),
	}
}

func source(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func mustContext(t *testing.T, doc *interchange.Document, src *strings.Reader, opts Options) *ExtractionContext {
	t.Helper()
	ctx, err := NewContext(doc, src, opts)
	require.NoError(t, err)
	return ctx
}

// requireOwnership checks that every line of the function span is owned by
// exactly one of the two line sets and that the region stays inside it.
func requireOwnership(t *testing.T, ctx *ExtractionContext) {
	t.Helper()
	require.True(t, ctx.Region.Within(ctx.Function), "region %s outside function %s", ctx.Region, ctx.Function)
	for n := ctx.Function.Start; n <= ctx.Function.End; n++ {
		inRegion := ctx.RegionLines.Has(n)
		inRest := ctx.Remainder.Has(n)
		require.True(t, inRegion != inRest, "line %d: region=%v remainder=%v", n, inRegion, inRest)
	}
	require.Equal(t, ctx.Function.Len(), ctx.RegionLines.Len()+ctx.Remainder.Len())
}
