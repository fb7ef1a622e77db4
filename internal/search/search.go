// Package search compiles ordered filter clauses into their IR
// construction sequence. Clause order is semantically significant: the
// generated filter object is assembled by sequential add-clause calls, so
// the output preserves input order exactly.
package search

import (
	"fmt"

	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/expr"
	"github.com/vk/stepforge/internal/ir"
)

// unaryOperators take no comparison value.
var unaryOperators = map[string]struct{}{
	"EMPTY":     {},
	"NOT EMPTY": {},
}

// binaryOperators require a comparison value.
var binaryOperators = map[string]struct{}{
	"=":           {},
	"!=":          {},
	"<":           {},
	">":           {},
	"<=":          {},
	">=":          {},
	"IN":          {},
	"NOT IN":      {},
	"BETWEEN":     {},
	"CONTAINS":    {},
	"STARTS WITH": {},
}

// InvalidFilterClauseError reports a clause whose shape contradicts its
// operator's arity, or an operator outside both sets.
type InvalidFilterClauseError struct {
	Operator string
	Index    int
	Detail   string
}

func (e *InvalidFilterClauseError) Error() string {
	return fmt.Sprintf("invalid filter clause %d: operator %q %s", e.Index, e.Operator, e.Detail)
}

// Compile turns an ordered clause list into a FilterNode. The value
// invariant holds per clause, independent of position: a binary operator
// must carry a value, a unary operator must not.
func Compile(clauses []*config.Clause, adapter *expr.Adapter) (*ir.FilterNode, error) {
	node := &ir.FilterNode{Clauses: make([]*ir.ClauseNode, 0, len(clauses))}
	for i, clause := range clauses {
		compiled, err := compileClause(i, clause, adapter)
		if err != nil {
			return nil, err
		}
		node.Clauses = append(node.Clauses, compiled)
	}
	return node, nil
}

func compileClause(index int, clause *config.Clause, adapter *expr.Adapter) (*ir.ClauseNode, error) {
	_, unary := unaryOperators[clause.Operator]
	_, binary := binaryOperators[clause.Operator]

	switch {
	case !unary && !binary:
		return nil, &InvalidFilterClauseError{Operator: clause.Operator, Index: index, Detail: "is not a known filter operator"}
	case unary && clause.Value != nil:
		return nil, &InvalidFilterClauseError{Operator: clause.Operator, Index: index, Detail: "is unary and does not take a value"}
	case binary && clause.Value == nil:
		return nil, &InvalidFilterClauseError{Operator: clause.Operator, Index: index, Detail: "is binary and requires a value"}
	}

	return &ir.ClauseNode{
		Field:    adapter.Compile(clause.Field),
		Operator: clause.Operator,
		Value:    adapter.Compile(clause.Value),
		Scope:    adapter.Compile(clause.Scope),
		Locale:   adapter.Compile(clause.Locale),
	}, nil
}
