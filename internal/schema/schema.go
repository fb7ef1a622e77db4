package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Primary Pipeline Structures ---

// ClauseBlock represents one `clause` block inside a `search` block. Only
// the operator is decoded to a plain keyword; every other part stays an
// expression so it can be literal or deferred.
type ClauseBlock struct {
	Field    hcl.Expression `hcl:"field"`
	Operator string         `hcl:"operator"`
	Value    hcl.Expression `hcl:"value,optional"`
	Scope    hcl.Expression `hcl:"scope,optional"`
	Locale   hcl.Expression `hcl:"locale,optional"`
}

// SearchBlock represents the ordered `search` block of an operation
// section. Clause order in the file is preserved through compilation.
type SearchBlock struct {
	Clauses []*ClauseBlock `hcl:"clause,block"`
}

// OperationBlock represents one of the extractor/loader/lookup sections.
// Apart from the optional search block its attributes are free-form; each
// capacity constrains the shape it accepts at build time.
type OperationBlock struct {
	Search *SearchBlock `hcl:"search,block"`
	Body   hcl.Body     `hcl:",remain"`
}

// ClientBlock represents the `client` section of a step.
type ClientBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Step represents a `step` block from a user's pipeline file.
type Step struct {
	Name      string          `hcl:"name,label"`
	Extractor *OperationBlock `hcl:"extractor,block"`
	Loader    *OperationBlock `hcl:"loader,block"`
	Lookup    *OperationBlock `hcl:"lookup,block"`
	Client    *ClientBlock    `hcl:"client,block"`
}

// PipelineConfig represents the top-level structure of a pipeline file,
// containing all defined steps.
type PipelineConfig struct {
	Steps []*Step  `hcl:"step,block"`
	Body  hcl.Body `hcl:",remain"`
}
