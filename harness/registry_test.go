package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openharness/harness-go/event"
)

// fakeAdapter is a minimal in-memory adapter for registry and manifest tests.
type fakeAdapter struct {
	Base
	id     string
	caps   Capabilities
	closed int
}

func (a *fakeAdapter) ID() string                 { return a.id }
func (a *fakeAdapter) Name() string               { return "Fake " + a.id }
func (a *fakeAdapter) Version() string            { return "0.1.0" }
func (a *fakeAdapter) Capabilities() Capabilities { return a.caps }

func (a *fakeAdapter) Execute(ctx context.Context, req *ExecuteRequest) (*ExecutionResult, error) {
	if !a.caps.Execution {
		return nil, &NotSupportedError{Adapter: a.id, Op: "execution"}
	}
	return &ExecutionResult{Output: "hello from " + a.id}, nil
}

func (a *fakeAdapter) ExecuteStream(ctx context.Context, req *ExecuteRequest) (<-chan event.Event, error) {
	if !a.caps.Streaming {
		return nil, &NotSupportedError{Adapter: a.id, Op: "streaming"}
	}
	res, err := a.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return StreamFromResult(res), nil
}

func (a *fakeAdapter) Close() error {
	a.closed++
	return nil
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry()
	a := &fakeAdapter{id: "fake", caps: Capabilities{Execution: true}}

	r.Register(a)
	assert.True(t, r.Has("fake"))

	got, err := r.Get("fake")
	require.NoError(t, err)
	assert.Same(t, Adapter(a), got)

	require.NoError(t, r.Unregister("fake"))
	assert.False(t, r.Has("fake"))

	_, err = r.Get("fake")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "fake", notFound.ID)
}

func TestRegistry_UnregisterUnknown(t *testing.T) {
	r := NewRegistry()
	err := r.Unregister("missing")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRegistry_ListReflectsRegistrations(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.List())

	first := &fakeAdapter{id: "first"}
	second := &fakeAdapter{id: "second"}
	r.Register(first)
	r.Register(second)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].ID())
	assert.Equal(t, "second", list[1].ID())

	require.NoError(t, r.Unregister("first"))
	list = r.List()
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].ID())
}

func TestRegistry_RegisterReplacesSameID(t *testing.T) {
	r := NewRegistry()
	old := &fakeAdapter{id: "dup"}
	replacement := &fakeAdapter{id: "dup"}
	r.Register(old)
	r.Register(replacement)

	got, err := r.Get("dup")
	require.NoError(t, err)
	assert.Same(t, Adapter(replacement), got)
	assert.Len(t, r.List(), 1)
}

func TestRegistry_CloseClosesAdapters(t *testing.T) {
	r := NewRegistry()
	a := &fakeAdapter{id: "a"}
	b := &fakeAdapter{id: "b"}
	r.Register(a)
	r.Register(b)

	require.NoError(t, r.Close())
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
	assert.Empty(t, r.List())
}
