package pim

import (
	"github.com/vk/stepforge/internal/capacity"
	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ir"
)

// getTypes is the allow-list of resources the lookup capacity can resolve
// record by record.
var getTypes = []string{
	"product",
	"product_model",
	"category",
	"attribute_option",
}

var getApplies = capacity.TypeMethodPredicate(getTypes, "get")

// getCapacity is the per-record enrichment strategy: for every incoming
// record, fetch the referenced resource and classify the outcome with the
// same precedence discipline as the mutating capacities.
type getCapacity struct{}

func (c *getCapacity) Name() string { return "get" }

func (c *getCapacity) Applies(section *config.Section) bool {
	return getApplies(section)
}

func (c *getCapacity) Build(section *config.Section) (*ir.Fragment, error) {
	endpoint, ok := section.StaticString("endpoint")
	if !ok {
		return nil, &capacity.MissingEndpointError{Capacity: c.Name()}
	}

	identifier := section.Compile("identifier")
	if !identifier.IsPresent() {
		return nil, &capacity.MissingFieldError{Capacity: c.Name(), Field: "identifier"}
	}

	call := &ir.CallNode{
		Endpoint:   endpoint,
		Method:     "get",
		Identifier: identifier,
	}
	if section.Has("parent") {
		call.Qualifiers = append(call.Qualifiers, section.Compile("parent"))
	}

	return &ir.Fragment{
		Kind: c.Name(),
		Root: &ir.LoopNode{
			Body: &ir.ClassifyNode{
				Call:     call,
				Handlers: rejectionHandlers(c.Name()),
			},
		},
	}, nil
}
