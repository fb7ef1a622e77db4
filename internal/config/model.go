package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stepforge/internal/expr"
	"github.com/vk/stepforge/internal/ir"
)

// Model is the unified, format-agnostic representation of an entire
// pipeline configuration file set.
type Model struct {
	Pipeline *Pipeline
}

// Pipeline represents the user's pipeline definition: the ordered list of
// steps to compile.
type Pipeline struct {
	Steps []*Step
}

// Step is the format-agnostic representation of a `step` block. Exactly one
// of Extractor, Loader and Lookup must be present for the step to compile;
// the orchestrator enforces this before any capacity resolution happens.
type Step struct {
	Name string

	Extractor *Section
	Loader    *Section
	Lookup    *Section
	Client    *Section

	// SourceFile links the step back to the file it was parsed from, for
	// attributable compile errors.
	SourceFile string
}

// Section is one validated configuration section: a mapping of attribute
// names to raw, unevaluated expressions, plus an optional ordered list of
// search clauses. The shape of the mapping is constrained per capacity.
type Section struct {
	Attrs  map[string]hcl.Expression
	Search []*Clause

	// Exprs is the expression adapter bound to the files this section was
	// parsed from. Builders compile every attribute through it.
	Exprs *expr.Adapter
}

// Clause is the format-agnostic representation of one `clause` block in a
// `search` block. Operator is a plain keyword; every other part stays an
// expression until the clause compiler normalizes it.
type Clause struct {
	Field    hcl.Expression
	Operator string
	Value    hcl.Expression
	Scope    hcl.Expression
	Locale   hcl.Expression
}

// Attr returns the raw expression for a key, or nil when the key was not
// configured.
func (s *Section) Attr(name string) hcl.Expression {
	if s == nil {
		return nil
	}
	return s.Attrs[name]
}

// Has reports whether a key was configured at all.
func (s *Section) Has(name string) bool {
	return s.Attr(name) != nil
}

// Adapter returns the section's expression adapter, falling back to an
// empty one for sections assembled outside the loader (tests, mostly).
func (s *Section) Adapter() *expr.Adapter {
	if s != nil && s.Exprs != nil {
		return s.Exprs
	}
	return expr.NewAdapter(nil)
}

// Compile normalizes one attribute into its literal-or-deferred value.
// Absent keys compile to the absent value.
func (s *Section) Compile(name string) ir.Value {
	return s.Adapter().Compile(s.Attr(name))
}

// StaticString evaluates a key without any context and returns its string
// value. The second result is false when the key is absent, deferred, or
// not a string. Capacity predicates depend on this: resource type and
// method must be fixed at compile time to select a strategy.
func (s *Section) StaticString(name string) (string, bool) {
	e := s.Attr(name)
	if e == nil {
		return "", false
	}
	val, diags := e.Value(nil)
	if diags.HasErrors() || val.IsNull() || !val.IsWhollyKnown() {
		return "", false
	}
	if val.Type() != cty.String {
		return "", false
	}
	return val.AsString(), true
}
