// Package expr classifies raw configuration expressions as literal or
// deferred and emits the corresponding IR value node. Every other compiler
// component consumes configuration values exclusively through this adapter.
package expr

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/vk/stepforge/internal/ir"
)

// Adapter compiles hcl.Expression values into ir.Value nodes. It holds the
// raw bytes of every parsed file so that deferred expressions can carry
// their exact source text into the generated unit.
type Adapter struct {
	sources map[string][]byte
}

// NewAdapter creates an adapter over the given file contents, keyed by the
// filename recorded in expression ranges.
func NewAdapter(sources map[string][]byte) *Adapter {
	if sources == nil {
		sources = make(map[string][]byte)
	}
	return &Adapter{sources: sources}
}

// AddSource registers the raw bytes of one parsed file.
func (a *Adapter) AddSource(filename string, src []byte) {
	a.sources[filename] = src
}

// Compile turns a raw expression into the literal-or-deferred tagged union.
//
// An expression that evaluates without an evaluation context to a wholly
// known, non-null value is a literal: its value is fixed at compile time.
// Everything else is deferred and carries only its source text, to be
// evaluated when the generated step runs. A nil expression compiles to the
// absent value so optional keys can be distinguished from configured ones.
func (a *Adapter) Compile(e hcl.Expression) ir.Value {
	if e == nil {
		return ir.Absent
	}
	val, diags := e.Value(nil)
	if !diags.HasErrors() && val.IsWhollyKnown() && !val.IsNull() {
		return ir.Literal(val)
	}
	return ir.Deferred(a.sourceText(e))
}

// sourceText recovers the canonical text of an expression. The byte range
// against the original file is authoritative; a traversal rendered through
// hclwrite is the fallback for expressions constructed outside a file.
func (a *Adapter) sourceText(e hcl.Expression) string {
	rng := e.Range()
	if src, ok := a.sources[rng.Filename]; ok {
		if rng.Start.Byte >= 0 && rng.End.Byte <= len(src) && rng.Start.Byte <= rng.End.Byte {
			return string(src[rng.Start.Byte:rng.End.Byte])
		}
	}
	if traversal, diags := hcl.AbsTraversalForExpr(e); !diags.HasErrors() {
		return string(hclwrite.TokensForTraversal(traversal).Bytes())
	}
	return ""
}
