package interp_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/stepforge/internal/capacity"
	"github.com/vk/stepforge/internal/ctxlog"
	"github.com/vk/stepforge/internal/interp"
	"github.com/vk/stepforge/internal/ir"
	"github.com/vk/stepforge/internal/registry"
	"github.com/vk/stepforge/internal/testutil"
	"github.com/vk/stepforge/modules/pim"
)

// fakeRemote scripts one error (or nil) per record, keyed by the record
// value itself.
type fakeRemote struct {
	errs       map[any]error
	fetched    []any
	fetchedErr error
	calls      []any
}

func (f *fakeRemote) Execute(ctx context.Context, call *ir.CallNode, record any) error {
	f.calls = append(f.calls, record)
	return f.errs[record]
}

func (f *fakeRemote) Fetch(ctx context.Context, node *ir.ExtractNode) ([]any, error) {
	return f.fetched, f.fetchedErr
}

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func upsertFragment(t *testing.T) *ir.Fragment {
	t.Helper()
	section := testutil.LoaderSection(t, `
		type       = "product"
		method     = "upsert"
		endpoint   = "products"
		identifier = record.sku
		payload    = record
	`)
	entry, err := capacity.Resolve(section, registry.New(&pim.Module{}).Loaders())
	require.NoError(t, err)
	frag, err := entry.Build(section)
	require.NoError(t, err)
	return frag
}

func pullFrom(records []any) interp.Pull {
	i := 0
	return func() (any, bool) {
		if i >= len(records) {
			return nil, false
		}
		record := records[i]
		i++
		return record, true
	}
}

func collect(out *[]interp.Classification) interp.Emit {
	return func(c interp.Classification) bool {
		*out = append(*out, c)
		return true
	}
}

func TestRun_ClassifiesInStrictProgramOrder(t *testing.T) {
	// Record 1 succeeds, record 2 raises the narrow type, record 3 the
	// broad type: the classification sequence mirrors the input order.
	narrow := &interp.UnprocessableError{
		APIError:   interp.APIError{StatusCode: 422, Message: "invalid sku"},
		Violations: []string{"sku: must be unique"},
	}
	broad := &interp.APIError{StatusCode: 500, Message: "server error"}

	remote := &fakeRemote{errs: map[any]error{
		"record-2": narrow,
		"record-3": broad,
	}}

	var got []interp.Classification
	err := interp.Run(testContext(), upsertFragment(t), remote,
		pullFrom([]any{"record-1", "record-2", "record-3"}), collect(&got))
	require.NoError(t, err)

	require.Len(t, got, 3)

	accept, ok := got[0].(interp.Acceptance)
	require.True(t, ok)
	require.Equal(t, "record-1", accept.Record)

	rejectNarrow, ok := got[1].(interp.Rejection)
	require.True(t, ok)
	require.Equal(t, "unprocessable", rejectNarrow.Reason)
	require.Equal(t, "record-2", rejectNarrow.Record)
	require.ErrorIs(t, rejectNarrow.Cause, narrow)

	rejectBroad, ok := got[2].(interp.Rejection)
	require.True(t, ok)
	require.Equal(t, "api_failure", rejectBroad.Reason)
	require.Equal(t, "record-3", rejectBroad.Record)
}

func TestRun_NarrowHandlerIsReachable(t *testing.T) {
	// The narrow error also satisfies the broad matcher via unwrapping.
	// Only its position ahead of the broad handler makes the narrow
	// rejection reason observable at all.
	narrow := &interp.UnprocessableError{
		APIError: interp.APIError{StatusCode: 422, Message: "nope"},
	}
	remote := &fakeRemote{errs: map[any]error{"r": narrow}}

	var got []interp.Classification
	err := interp.Run(testContext(), upsertFragment(t), remote,
		pullFrom([]any{"r"}), collect(&got))
	require.NoError(t, err)

	reject := got[0].(interp.Rejection)
	require.Equal(t, "unprocessable", reject.Reason)
}

func TestRun_UnclassifiedFailureStillRejects(t *testing.T) {
	// An error outside the handler taxonomy must not drop the record.
	remote := &fakeRemote{errs: map[any]error{"r": io.ErrUnexpectedEOF}}

	var got []interp.Classification
	err := interp.Run(testContext(), upsertFragment(t), remote,
		pullFrom([]any{"r"}), collect(&got))
	require.NoError(t, err)

	require.Len(t, got, 1)
	reject := got[0].(interp.Rejection)
	require.Equal(t, "unclassified", reject.Reason)
	require.ErrorIs(t, reject.Cause, io.ErrUnexpectedEOF)
}

func TestRun_ConsumerStopsPullingHaltsLoop(t *testing.T) {
	remote := &fakeRemote{}

	var got []interp.Classification
	emit := func(c interp.Classification) bool {
		got = append(got, c)
		return len(got) < 2
	}
	err := interp.Run(testContext(), upsertFragment(t), remote,
		pullFrom([]any{"a", "b", "c", "d"}), emit)
	require.NoError(t, err)

	// Two emits, then the loop halts; the third record is never called.
	require.Len(t, got, 2)
	require.Len(t, remote.calls, 2)
}

func TestRun_WorksWithoutSeededLogger(t *testing.T) {
	// Embedders may pass a plain context; classification then logs through
	// the default logger instead of crashing.
	remote := &fakeRemote{errs: map[any]error{
		"r": &interp.APIError{StatusCode: 500, Message: "server error"},
	}}

	var got []interp.Classification
	require.NotPanics(t, func() {
		err := interp.Run(context.Background(), upsertFragment(t), remote,
			pullFrom([]any{"r"}), collect(&got))
		require.NoError(t, err)
	})

	require.Len(t, got, 1)
	require.Equal(t, "api_failure", got[0].(interp.Rejection).Reason)
}

func TestRun_ExtractEmitsEveryFetchedRecord(t *testing.T) {
	section := testutil.ExtractorSection(t, `
		type     = "product"
		method   = "all"
		endpoint = "products"
	`)
	entry, err := capacity.Resolve(section, registry.New(&pim.Module{}).Extractors())
	require.NoError(t, err)
	frag, err := entry.Build(section)
	require.NoError(t, err)

	remote := &fakeRemote{fetched: []any{"p1", "p2"}}

	var got []interp.Classification
	err = interp.Run(testContext(), frag, remote, nil, collect(&got))
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.Equal(t, "p1", got[0].(interp.Acceptance).Record)
	require.Equal(t, "p2", got[1].(interp.Acceptance).Record)
}
