// Package interp executes a compiled fragment directly, without going
// through source emission. It implements the concurrency model the
// generated fragments describe: single-threaded cooperative pull-based
// iteration with exactly one suspension point per record, in strict
// program order. The remote API is injected, so the interpreter performs
// no I/O of its own.
package interp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/stepforge/internal/ctxlog"
	"github.com/vk/stepforge/internal/ir"
)

// RemoteOperation is the remote resource API a fragment operates against.
// Implementations are supplied by the embedder; tests supply fakes.
type RemoteOperation interface {
	// Execute performs one per-record call described by the call node.
	Execute(ctx context.Context, call *ir.CallNode, record any) error
	// Fetch performs a bulk read described by the extract node.
	Fetch(ctx context.Context, node *ir.ExtractNode) ([]any, error)
}

// Pull produces the next upstream record. The second result is false once
// the upstream is drained; the loop halts when the consumer stops pulling.
type Pull func() (any, bool)

// Emit is the single suspension point per record. Returning false tells
// the loop the consumer stopped consuming, which halts iteration.
type Emit func(Classification) bool

// Run interprets a fragment. Each record is classified exactly once and
// emitted downstream before the next record is pulled; there is no
// interleaving, no parallel dispatch and no cancellation primitive beyond
// the consumer ceasing to pull.
func Run(ctx context.Context, frag *ir.Fragment, ops RemoteOperation, pull Pull, emit Emit) error {
	if frag == nil || frag.Root == nil {
		return errors.New("interp: nil fragment")
	}
	switch root := frag.Root.(type) {
	case *ir.LoopNode:
		return runLoop(ctx, root, ops, pull, emit)
	case *ir.ExtractNode:
		return runExtract(ctx, root, ops, emit)
	default:
		return fmt.Errorf("interp: fragment kind %q has no executable root", frag.Kind)
	}
}

// runLoop drives the unbounded per-record loop of a mutating or lookup
// fragment.
func runLoop(ctx context.Context, loop *ir.LoopNode, ops RemoteOperation, pull Pull, emit Emit) error {
	if loop.Body == nil || loop.Body.Call == nil {
		return errors.New("interp: loop fragment has no call body")
	}
	logger := ctxlog.FromContext(ctx)

	for {
		record, ok := pull()
		if !ok {
			return nil
		}

		err := ops.Execute(ctx, loop.Body.Call, record)
		if err == nil {
			if !emit(Acceptance{Record: record}) {
				return nil
			}
			continue
		}

		if !emit(classify(logger, loop.Body.Handlers, err, record)) {
			return nil
		}
	}
}

// classify walks the ordered handler chain and produces the rejection for
// the first matching handler. Narrow exception types sit before broad ones,
// so the chain must be walked front to back. A failure no handler matches
// still terminates in a rejection: records are never silently dropped.
func classify(logger *slog.Logger, handlers []*ir.HandlerNode, err error, record any) Rejection {
	for _, handler := range handlers {
		if !matches(handler.Exception, err) {
			continue
		}
		logger.Warn(handler.Message, "cause", err.Error(), "record", record)
		return Rejection{Reason: handler.Reason, Cause: err, Record: record}
	}
	logger.Warn("unclassified remote failure", "cause", err.Error(), "record", record)
	return Rejection{Reason: "unclassified", Cause: err, Record: record}
}

// matches maps an IR exception type name onto the concrete error taxonomy.
func matches(exception string, err error) bool {
	switch exception {
	case ir.ExceptionUnprocessable:
		var narrow *UnprocessableError
		return errors.As(err, &narrow)
	case ir.ExceptionAPI:
		var broad *APIError
		return errors.As(err, &broad)
	default:
		return false
	}
}

// runExtract drives a bulk read fragment: one fetch, then every record is
// emitted as an acceptance until the consumer stops.
func runExtract(ctx context.Context, node *ir.ExtractNode, ops RemoteOperation, emit Emit) error {
	logger := ctxlog.FromContext(ctx)

	records, err := ops.Fetch(ctx, node)
	if err != nil {
		logger.Warn("bulk fetch failed", "endpoint", node.Endpoint, "cause", err.Error())
		emit(Rejection{Reason: "fetch_failure", Cause: err})
		return nil
	}
	for _, record := range records {
		if !emit(Acceptance{Record: record}) {
			return nil
		}
	}
	return nil
}
