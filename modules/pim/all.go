package pim

import (
	"github.com/vk/stepforge/internal/capacity"
	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ir"
	"github.com/vk/stepforge/internal/search"
)

// allTypes is the allow-list of resources the bulk extraction capacity
// knows how to fetch.
var allTypes = []string{
	"product",
	"product_model",
	"category",
	"family",
	"attribute",
	"attribute_option",
}

// allApplies is built once; predicates are pure and never error.
var allApplies = capacity.TypeMethodPredicate(allTypes, "all")

// allCapacity is the read/bulk strategy: fetch every record of a resource,
// optionally narrowed by a search filter and a single code qualifier.
type allCapacity struct{}

func (c *allCapacity) Name() string { return "all" }

func (c *allCapacity) Applies(section *config.Section) bool {
	return allApplies(section)
}

// Build synthesizes the fetch-all fragment. The filter and the code
// qualifier are attached only when the corresponding key is configured;
// absence omits the construction call entirely rather than passing a null
// placeholder.
func (c *allCapacity) Build(section *config.Section) (*ir.Fragment, error) {
	endpoint, ok := section.StaticString("endpoint")
	if !ok {
		return nil, &capacity.MissingEndpointError{Capacity: c.Name()}
	}

	node := &ir.ExtractNode{
		Endpoint: endpoint,
		Method:   "all",
	}

	if section.Search != nil {
		filter, err := search.Compile(section.Search, section.Adapter())
		if err != nil {
			return nil, err
		}
		node.Filter = filter
	}

	if section.Has("code") {
		node.Code = section.Compile("code")
	}

	return &ir.Fragment{Kind: c.Name(), Root: node}, nil
}
