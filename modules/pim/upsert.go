package pim

import (
	"github.com/vk/stepforge/internal/capacity"
	"github.com/vk/stepforge/internal/config"
	"github.com/vk/stepforge/internal/ir"
)

// upsertTypes is the allow-list of resources the upsert capacity can write.
var upsertTypes = []string{
	"product",
	"product_model",
	"category",
	"family",
	"attribute",
	"attribute_option",
}

var upsertApplies = capacity.TypeMethodPredicate(upsertTypes, "upsert")

// upsertCapacity is the mutating strategy: per incoming record, send one
// upsert to the remote endpoint and classify the outcome.
type upsertCapacity struct{}

func (c *upsertCapacity) Name() string { return "upsert" }

func (c *upsertCapacity) Applies(section *config.Section) bool {
	return upsertApplies(section)
}

// Build synthesizes the upsert loop. Required inputs are enforced before
// any IR is emitted; a missing endpoint or field is a compile-time
// configuration error, never retried.
func (c *upsertCapacity) Build(section *config.Section) (*ir.Fragment, error) {
	endpoint, ok := section.StaticString("endpoint")
	if !ok {
		return nil, &capacity.MissingEndpointError{Capacity: c.Name()}
	}

	identifier := section.Compile("identifier")
	if !identifier.IsPresent() {
		return nil, &capacity.MissingFieldError{Capacity: c.Name(), Field: "identifier"}
	}
	payload := section.Compile("payload")
	if !payload.IsPresent() {
		return nil, &capacity.MissingFieldError{Capacity: c.Name(), Field: "payload"}
	}

	call := &ir.CallNode{
		Endpoint:   endpoint,
		Method:     "upsert",
		Identifier: identifier,
		Payload:    payload,
	}
	// A parent qualifier scopes sub-resources, e.g. the attribute owning an
	// attribute option. Omitted entirely when not configured.
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

// rejectionHandlers is the fixed classification precedence every mutating
// pim capacity bakes into its fragment. The narrow unprocessable-entity
// type is checked strictly before the broad API category type: the broad
// type matches everything the narrow one does, so reversing the order
// would make the narrow handler unreachable.
func rejectionHandlers(capacityName string) []*ir.HandlerNode {
	return []*ir.HandlerNode{
		{
			Exception: ir.ExceptionUnprocessable,
			Message:   "remote rejected the " + capacityName + " payload",
			Reason:    "unprocessable",
		},
		{
			Exception: ir.ExceptionAPI,
			Message:   "remote call failed during " + capacityName,
			Reason:    "api_failure",
		},
	}
}
