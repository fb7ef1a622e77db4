package expr

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stepforge/internal/ir"
)

// parseExpr parses a standalone expression and registers its source with
// the adapter, the way the loader does for whole files.
func parseExpr(t *testing.T, adapter *Adapter, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "parse %q: %s", src, diags.Error())
	adapter.AddSource("test.hcl", []byte(src))
	return expr
}

func TestCompile_StringLiteral(t *testing.T) {
	adapter := NewAdapter(nil)
	v := adapter.Compile(parseExpr(t, adapter, `"active"`))

	require.Equal(t, ir.ValueLiteral, v.Kind)
	require.True(t, v.Literal.RawEquals(cty.StringVal("active")))
}

func TestCompile_NumberLiteral(t *testing.T) {
	adapter := NewAdapter(nil)
	v := adapter.Compile(parseExpr(t, adapter, `42`))

	require.Equal(t, ir.ValueLiteral, v.Kind)
	require.True(t, v.Literal.RawEquals(cty.NumberIntVal(42)))
}

func TestCompile_TraversalIsDeferred(t *testing.T) {
	adapter := NewAdapter(nil)
	v := adapter.Compile(parseExpr(t, adapter, `record.sku`))

	require.Equal(t, ir.ValueDeferred, v.Kind)
	require.Equal(t, "record.sku", v.Source)
}

func TestCompile_FunctionCallIsDeferred(t *testing.T) {
	adapter := NewAdapter(nil)
	v := adapter.Compile(parseExpr(t, adapter, `upper(record.code)`))

	require.Equal(t, ir.ValueDeferred, v.Kind)
	require.Equal(t, "upper(record.code)", v.Source)
}

func TestCompile_NilIsAbsent(t *testing.T) {
	adapter := NewAdapter(nil)
	v := adapter.Compile(nil)

	require.Equal(t, ir.ValueAbsent, v.Kind)
	require.False(t, v.IsPresent())
}

func TestCompile_DeferredWithoutSourceFallsBackToTraversal(t *testing.T) {
	// Expression constructed without registering file bytes: the adapter
	// renders the traversal itself.
	expr, diags := hclsyntax.ParseExpression([]byte("step.first.output"), "unregistered.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors())

	v := NewAdapter(nil).Compile(expr)
	require.Equal(t, ir.ValueDeferred, v.Kind)
	require.Equal(t, "step.first.output", v.Source)
}
