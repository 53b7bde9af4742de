package eventtree

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/casualjim/eventtree/node"
	"github.com/casualjim/eventtree/types"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// spy counts calls. Each spy is its own function literal so Unon can tell them
// apart.
type spy struct {
	calls  int
	events []node.Event
}

func (s *spy) record(ev node.Event) {
	s.calls++
	s.events = append(s.events, ev)
}

func spies() (*spy, node.Handler, *spy, node.Handler) {
	s1, s2 := &spy{}, &spy{}
	h1 := func(ev node.Event) (node.Propagation, error) { s1.record(ev); return node.Continue, nil }
	h2 := func(ev node.Event) (node.Propagation, error) { s2.record(ev); return node.Continue, nil }
	return s1, h1, s2, h2
}

func captureLogger(buf *bytes.Buffer) *slog.Logger {
	output := zerolog.ConsoleWriter{Out: buf, NoColor: true, TimeFormat: time.Stamp}
	log := zerolog.New(output).With().Timestamp().Logger()
	return slog.New(zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestTree(t *testing.T) {
	options1 := types.Values{"optionOne": 1}
	options2 := types.Values{"optionTwo": 2}

	t.Run("on registers an event listener", func(t *testing.T) {
		tree := New()
		s1, h1, _, _ := spies()
		_, err := tree.On("event1", options1, h1)
		require.NoError(t, err)
		require.NoError(t, tree.Trigger("event1", nil))

		assert.Equal(t, 1, s1.calls)
		assert.Equal(t, options1, s1.events[0].Options)
		assert.Equal(t, types.Values{}, s1.events[0].Context)
	})

	t.Run("unon unregisters an event listener", func(t *testing.T) {
		tree := New()
		s1, h1, _, _ := spies()
		_, err := tree.On("event1", options1, h1)
		require.NoError(t, err)

		removed, err := tree.Unon("event1", h1)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		require.NoError(t, tree.Trigger("event1", nil))
		assert.Zero(t, s1.calls)
	})

	t.Run("trigger calls hierarchical listeners", func(t *testing.T) {
		tree := New()
		s1, h1, s2, h2 := spies()
		_, err := tree.On("event1.subevent", options1, h1)
		require.NoError(t, err)
		_, err = tree.On("event1", options2, h2)
		require.NoError(t, err)

		ctx := types.Values{"x": 1}
		require.NoError(t, tree.Trigger("event1.subevent", ctx))

		assert.Equal(t, 1, s1.calls)
		assert.Equal(t, 1, s2.calls)
		assert.Equal(t, node.Event{Path: "event1.subevent", Context: ctx, Options: options2}, s2.events[0])
		assert.Equal(t, node.Event{Path: "event1.subevent", Context: ctx, Options: options1}, s1.events[0])
	})

	t.Run("aliases", func(t *testing.T) {
		tree := New()
		s1, h1, s2, h2 := spies()
		_, err := tree.AddEventListener("event1.subevent", options1, h1)
		require.NoError(t, err)
		_, err = tree.AddEventListener("event1", options2, h2)
		require.NoError(t, err)

		require.NoError(t, tree.Dispatch("event1.subevent", nil))
		assert.Equal(t, 1, s1.calls)
		assert.Equal(t, 1, s2.calls)

		removed, err := tree.RemoveEventListener("event1", h2)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		require.NoError(t, tree.Dispatch("event1.subevent", nil))
		assert.Equal(t, 2, s1.calls)
		assert.Equal(t, 1, s2.calls)
	})

	t.Run("prune after unon", func(t *testing.T) {
		tree := New()
		s1, h1, _, _ := spies()
		_, err := tree.On("a.b", options1, h1)
		require.NoError(t, err)
		_, err = tree.Unon("a.b", h1)
		require.NoError(t, err)

		a, ok := tree.Root().Child("a")
		require.True(t, ok)
		_, ok = a.Child("b")
		assert.False(t, ok)

		tree.Prune()
		assert.Empty(t, tree.Root().Children())
		assert.Zero(t, s1.calls)
	})

	t.Run("off removes one registration", func(t *testing.T) {
		tree := New()
		s1, h1, _, _ := spies()
		first, err := tree.On("a", nil, h1)
		require.NoError(t, err)
		_, err = tree.On("a", nil, h1)
		require.NoError(t, err)

		assert.True(t, tree.Off(first))
		assert.False(t, tree.Off(first))
		require.NoError(t, tree.Trigger("a", nil))
		assert.Equal(t, 1, s1.calls)
	})

	t.Run("listeners", func(t *testing.T) {
		tree := New()
		_, h1, _, h2 := spies()
		_, err := tree.On("event1.subevent", nil, h1)
		require.NoError(t, err)
		_, err = tree.On("", nil, h2)
		require.NoError(t, err)

		got, err := tree.Listeners("event1.subevent")
		require.NoError(t, err)
		require.Len(t, got, 2)

		got, err = tree.Listeners("nothing.here")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("root listener sees every trigger", func(t *testing.T) {
		tree := New()
		s1, h1, _, _ := spies()
		_, err := tree.On("", nil, h1)
		require.NoError(t, err)

		require.NoError(t, tree.Trigger("x", types.Values{"n": 1}))
		require.NoError(t, tree.Trigger("y.z", types.Values{"n": 2}))

		require.Equal(t, 2, s1.calls)
		assert.Equal(t, "y.z", s1.events[1].Path)
		assert.Equal(t, types.Values{"n": 2}, s1.events[1].Context)
	})

	t.Run("handler errors reach the caller", func(t *testing.T) {
		tree := New()
		boom := errors.New("boom")
		_, err := tree.On("a", nil, func(node.Event) (node.Propagation, error) { return node.Continue, boom })
		require.NoError(t, err)

		err = tree.Trigger("a", nil)
		require.ErrorIs(t, err, boom)
		var herr *node.HandlerError
		assert.ErrorAs(t, err, &herr)
	})

	t.Run("nil handler is rejected", func(t *testing.T) {
		tree := New()
		_, err := tree.On("a", nil, nil)
		assert.ErrorIs(t, err, node.ErrHandlerRequired)
	})
}

func TestTreePathPolicy(t *testing.T) {
	_, h1, _, _ := spies()
	malformed := []string{"a..b", ".a", "a."}

	t.Run("strict rejects empty segments", func(t *testing.T) {
		tree := New()
		assert.Equal(t, Strict, tree.policy)
		for _, p := range malformed {
			_, err := tree.On(p, nil, h1)
			assert.ErrorIs(t, err, node.ErrInvalidPath, p)
			_, err = tree.Unon(p, h1)
			assert.ErrorIs(t, err, node.ErrInvalidPath, p)
			assert.ErrorIs(t, tree.Trigger(p, nil), node.ErrInvalidPath, p)
			_, err = tree.Listeners(p)
			assert.ErrorIs(t, err, node.ErrInvalidPath, p)
		}
		assert.Empty(t, tree.Root().Children())
	})

	t.Run("literal keeps empty segments", func(t *testing.T) {
		tree := New(WithPathPolicy(Literal))
		s := &spy{}
		_, err := tree.On("a..b", nil, func(ev node.Event) (node.Propagation, error) { s.record(ev); return node.Continue, nil })
		require.NoError(t, err)

		require.NoError(t, tree.Trigger("a..b", nil))
		require.NoError(t, tree.Trigger("a.b", nil))
		assert.Equal(t, 1, s.calls)

		a, ok := tree.Root().Child("a")
		require.True(t, ok)
		assert.Equal(t, []string{""}, a.Children())
	})

	t.Run("policy names", func(t *testing.T) {
		assert.Equal(t, "strict", Strict.String())
		assert.Equal(t, "literal", Literal.String())
		assert.Equal(t, "unknown", PathPolicy(7).String())
	})
}

func TestTreeOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		tree := New()
		assert.Equal(t, DefaultName, tree.Name())
		assert.NotNil(t, tree.logger)
		assert.NotNil(t, tree.Root())
		assert.True(t, tree.Root().IsRoot())
	})

	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "orders", New(WithName("orders")).Name())
	})

	t.Run("nil logger falls back to the default", func(t *testing.T) {
		assert.NotNil(t, New(WithLogger(nil)).logger)
	})

	t.Run("logs through the configured logger", func(t *testing.T) {
		var buf bytes.Buffer
		tree := New(WithName("orders"), WithLogger(captureLogger(&buf)))
		_, h1, _, _ := spies()

		_, err := tree.On("order.created", nil, h1)
		require.NoError(t, err)
		_, err = tree.Unon("order.created", h1)
		require.NoError(t, err)
		tree.Prune()

		out := buf.String()
		assert.Contains(t, out, "registered handler")
		assert.Contains(t, out, "removed handler")
		assert.Contains(t, out, "pruned tree")
		assert.Contains(t, out, "order.created")
		assert.Contains(t, out, "orders")
	})
}

func TestTreeString(t *testing.T) {
	tree := New()
	_, h1, _, h2 := spies()
	_, err := tree.On("order.created", nil, h1)
	require.NoError(t, err)
	_, err = tree.On("order", nil, h2)
	require.NoError(t, err)

	out := tree.String()
	require.True(t, gjson.Valid(out))
	assert.Equal(t, "order", gjson.Get(out, "children.0.segment").String())
	assert.Equal(t, "order.created", gjson.Get(out, "children.0.children.0.path").String())
	assert.Equal(t, int64(1), gjson.Get(out, "children.0.handlers.#").Int())
	assert.Equal(t, 2, tree.Snapshot().Count())
}
