package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/schema"
)

// translateStep converts the HCL-specific step schema into the agnostic model.
func (l *Loader) translateStep(s *schema.Step, filename string) (*config.Step, error) {
	step := &config.Step{
		Name:       s.Name,
		SourceFile: filename,
	}

	var err error
	if s.Extractor != nil {
		if step.Extractor, err = l.translateOperation(s.Extractor); err != nil {
			return nil, err
		}
	}
	if s.Loader != nil {
		if step.Loader, err = l.translateOperation(s.Loader); err != nil {
			return nil, err
		}
	}
	if s.Lookup != nil {
		if step.Lookup, err = l.translateOperation(s.Lookup); err != nil {
			return nil, err
		}
	}
	if s.Client != nil {
		attrs, err := l.extractBodyAttributes(s.Client.Body)
		if err != nil {
			return nil, err
		}
		step.Client = &config.Section{Attrs: attrs, Exprs: l.adapter}
	}
	return step, nil
}

// translateOperation converts one extractor/loader/lookup block, carrying
// the search clauses over in file order.
func (l *Loader) translateOperation(b *schema.OperationBlock) (*config.Section, error) {
	attrs, err := l.extractBodyAttributes(b.Body)
	if err != nil {
		return nil, err
	}
	section := &config.Section{Attrs: attrs, Exprs: l.adapter}
	if b.Search != nil {
		for _, clause := range b.Search.Clauses {
			section.Search = append(section.Search, l.translateClause(clause))
		}
	}
	return section, nil
}

// translateClause converts one clause block into the agnostic model.
func (l *Loader) translateClause(c *schema.ClauseBlock) *config.Clause {
	return &config.Clause{
		Field:    c.Field,
		Operator: c.Operator,
		Value:    nonNilExpr(c.Value),
		Scope:    nonNilExpr(c.Scope),
		Locale:   nonNilExpr(c.Locale),
	}
}

// extractBodyAttributes collects the free-form attributes of a section
// body without evaluating them.
func (l *Loader) extractBodyAttributes(body hcl.Body) (map[string]hcl.Expression, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("unexpected section content: %w", diags)
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}

// nonNilExpr normalizes gohcl's decoding of omitted optional attributes,
// which can surface as a non-nil expression yielding null. The model wants
// plain nil for absent parts so presence checks stay trivial.
func nonNilExpr(e hcl.Expression) hcl.Expression {
	if e == nil {
		return nil
	}
	if val, diags := e.Value(nil); !diags.HasErrors() && val.IsNull() {
		return nil
	}
	return e
}
