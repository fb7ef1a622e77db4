package search

import (
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/expr"
	"github.com/vk/stepforge/internal/ir"
)

func literal(t *testing.T, src string) hcl.Expression {
	t.Helper()
	e, diags := hclsyntax.ParseExpression([]byte(src), "search_test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return e
}

func TestCompile_PreservesClauseOrder(t *testing.T) {
	clauses := []*config.Clause{
		{Field: literal(t, `"status"`), Operator: "=", Value: literal(t, `"active"`)},
		{Field: literal(t, `"family"`), Operator: "IN", Value: literal(t, `["shoes"]`)},
		{Field: literal(t, `"name"`), Operator: "NOT EMPTY"},
	}

	node, err := Compile(clauses, expr.NewAdapter(nil))
	require.NoError(t, err)
	require.Len(t, node.Clauses, 3)

	require.True(t, node.Clauses[0].Field.Literal.RawEquals(cty.StringVal("status")))
	require.True(t, node.Clauses[1].Field.Literal.RawEquals(cty.StringVal("family")))
	require.True(t, node.Clauses[2].Field.Literal.RawEquals(cty.StringVal("name")))
}

func TestCompile_BinaryOperatorsRequireValue(t *testing.T) {
	for op := range binaryOperators {
		clauses := []*config.Clause{
			{Field: literal(t, `"status"`), Operator: op},
		}
		_, err := Compile(clauses, expr.NewAdapter(nil))

		var clauseErr *InvalidFilterClauseError
		require.ErrorAs(t, err, &clauseErr, "operator %q", op)
		require.Equal(t, op, clauseErr.Operator)
	}
}

func TestCompile_UnaryOperatorsRejectValue(t *testing.T) {
	for op := range unaryOperators {
		clauses := []*config.Clause{
			{Field: literal(t, `"status"`), Operator: op, Value: literal(t, `"unexpected"`)},
		}
		_, err := Compile(clauses, expr.NewAdapter(nil))

		var clauseErr *InvalidFilterClauseError
		require.ErrorAs(t, err, &clauseErr, "operator %q", op)
		require.Equal(t, op, clauseErr.Operator)
	}
}

func TestCompile_ArityChecksArePositionIndependent(t *testing.T) {
	// A malformed clause fails regardless of how many valid clauses
	// precede it, and the error names the offending index.
	clauses := []*config.Clause{
		{Field: literal(t, `"status"`), Operator: "=", Value: literal(t, `"active"`)},
		{Field: literal(t, `"name"`), Operator: "EMPTY"},
		{Field: literal(t, `"family"`), Operator: ">"},
	}
	_, err := Compile(clauses, expr.NewAdapter(nil))

	var clauseErr *InvalidFilterClauseError
	require.ErrorAs(t, err, &clauseErr)
	require.Equal(t, 2, clauseErr.Index)
	require.Equal(t, ">", clauseErr.Operator)
}

func TestCompile_UnknownOperator(t *testing.T) {
	clauses := []*config.Clause{
		{Field: literal(t, `"status"`), Operator: "LIKE", Value: literal(t, `"act%"`)},
	}
	_, err := Compile(clauses, expr.NewAdapter(nil))

	var clauseErr *InvalidFilterClauseError
	require.True(t, errors.As(err, &clauseErr))
	require.Equal(t, "LIKE", clauseErr.Operator)
}

func TestCompile_ScopeAndLocalePassThroughAdapter(t *testing.T) {
	clauses := []*config.Clause{
		{
			Field:    literal(t, `"description"`),
			Operator: "CONTAINS",
			Value:    literal(t, `"wool"`),
			Scope:    literal(t, `"ecommerce"`),
			Locale:   literal(t, `"en_US"`),
		},
	}

	node, err := Compile(clauses, expr.NewAdapter(nil))
	require.NoError(t, err)
	require.Len(t, node.Clauses, 1)

	clause := node.Clauses[0]
	require.Equal(t, ir.ValueLiteral, clause.Scope.Kind)
	require.True(t, clause.Scope.Literal.RawEquals(cty.StringVal("ecommerce")))
	require.Equal(t, ir.ValueLiteral, clause.Locale.Kind)
	require.True(t, clause.Locale.Literal.RawEquals(cty.StringVal("en_US")))
}
