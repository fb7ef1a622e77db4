// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package ir

import (
	"github.com/zclconf/go-cty/cty"
)

// ValueKind discriminates the three states a configuration value can be in
// once it has passed through the expression adapter.
type ValueKind int

const (
	// ValueAbsent marks a value for an optional key that was not configured.
	ValueAbsent ValueKind = iota
	// ValueLiteral marks a value that was fully resolvable at compile time.
	ValueLiteral
	// ValueDeferred marks a value that must be evaluated when the generated
	// step runs; only its source text is carried.
	ValueDeferred
)

// Value is the literal-or-deferred tagged union every compiled configuration
// attribute becomes. Values are immutable after creation: builders consume
// them exactly once and never write them back.
type Value struct {
	Kind    ValueKind
	Literal cty.Value
	Source  string
}

// IsPresent reports whether the value was configured at all.
func (v Value) IsPresent() bool { return v.Kind != ValueAbsent }

// Absent is the zero Value for optional keys that were omitted.
var Absent = Value{Kind: ValueAbsent}

// Literal wraps a statically known cty value.
func Literal(val cty.Value) Value {
	return Value{Kind: ValueLiteral, Literal: val}
}

// Deferred wraps the source text of an expression that cannot be evaluated
// until the generated step runs.
func Deferred(source string) Value {
	return Value{Kind: ValueDeferred, Source: source}
}

// Node is the closed interface implemented by every IR variant. Backends
// dispatch on the concrete type; adding a variant means revisiting every
// type switch, which is intentional.
type Node interface {
	irNode()
}

// Fragment is the root of one compiled operation. Kind names the capacity
// that synthesized it, which backends use for diagnostics only.
type Fragment struct {
	Kind string
	Root Node
}

// ClientNode is the compiled client-setup expression: the connection
// parameters a generated step uses to construct its API client.
type ClientNode struct {
	BaseURL  Value
	ClientID Value
	Secret   Value
	Username Value
	Password Value
}

// LoopNode is the unbounded per-record loop of a mutating or lookup
// capacity. The consumer halts it by ceasing to pull.
type LoopNode struct {
	Body *ClassifyNode
}

// ClassifyNode couples one remote call with its outcome classification:
// success becomes an Acceptance, failure walks Handlers in order. Handler
// order is load-bearing; a narrow exception type must precede the broad
// category type it specializes, or it becomes unreachable.
type ClassifyNode struct {
	Call     *CallNode
	Handlers []*HandlerNode
}

// CallNode is a single remote operation performed per record.
type CallNode struct {
	Endpoint   string
	Method     string
	Qualifiers []Value
	Identifier Value
	Payload    Value

	// Client is nil until the orchestrator attaches a compiled client.
	Client *ClientNode
}

// Exception type names a handler can match. The narrow type must always be
// listed before the broad one in a handler chain.
const (
	// ExceptionUnprocessable is the narrow, operation-specific failure: the
	// remote understood the call but rejected the record itself.
	ExceptionUnprocessable = "unprocessable_entity"
	// ExceptionAPI is the broad category failure covering every other error
	// the remote client surfaces. It also matches unprocessable failures,
	// which is why handler order is significant.
	ExceptionAPI = "api_error"
)

// HandlerNode maps one exception type to a rejection. Message and Reason
// are baked into the generated classification logic.
type HandlerNode struct {
	Exception string
	Message   string
	Reason    string
}

// ExtractNode is the fetch-all shape of a read/bulk capacity. Filter and
// Code are nil/absent when the corresponding configuration key was omitted;
// absence means the construction call is never emitted, not that a null
// placeholder is passed.
type ExtractNode struct {
	Endpoint string
	Method   string
	Filter   *FilterNode
	Code     Value

	Client *ClientNode
}

// FilterNode is an ordered sequence of filter clauses. Order mirrors the
// input configuration exactly; the target filter object is assembled by
// sequential add-clause calls.
type FilterNode struct {
	Clauses []*ClauseNode
}

// ClauseNode is one compiled search clause. Value, Scope and Locale are
// absent for clauses that did not configure them.
type ClauseNode struct {
	Field    Value
	Operator string
	Value    Value
	Scope    Value
	Locale   Value
}

func (*ClientNode) irNode()   {}
func (*LoopNode) irNode()     {}
func (*ClassifyNode) irNode() {}
func (*CallNode) irNode()     {}
func (*HandlerNode) irNode()  {}
func (*ExtractNode) irNode()  {}
func (*FilterNode) irNode()   {}
func (*ClauseNode) irNode()   {}
