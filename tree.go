package eventtree

import (
	"log/slog"

	"github.com/casualjim/eventtree/node"
	"github.com/casualjim/eventtree/pkg/reflectx"
	"github.com/casualjim/eventtree/pkg/slogx"
	"github.com/casualjim/eventtree/types"
	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
)

// PathPolicy decides how a Tree treats paths with empty segments such as
// "a..b", ".a" or "a.".
type PathPolicy uint8

const (
	// Strict rejects paths with empty segments with node.ErrInvalidPath.
	Strict PathPolicy = iota
	// Literal passes paths through unchanged; an empty segment becomes a child
	// named "".
	Literal
)

func (p PathPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Literal:
		return "literal"
	default:
		return "unknown"
	}
}

// Tree owns a single root node and forwards every operation to it.
// A Tree is not safe for concurrent use, see the node package.
type Tree struct {
	name   string
	logger *slog.Logger
	policy PathPolicy
	root   *node.Node
}

// New creates an empty tree. It panics when an option returns an error; the
// options in this package never do.
func New(options ...opts.Option[Tree]) *Tree {
	tree := &Tree{
		name:   DefaultName,
		policy: Strict,
	}
	if err := opts.Apply(tree, options); err != nil {
		panic(err)
	}
	if tree.logger == nil {
		tree.logger = slog.Default().With(slogx.LoggerName("eventtree"))
	}
	tree.logger = tree.logger.With(slog.String("tree", tree.name))
	tree.root = node.New()
	return tree
}

// Name returns the name the tree was created with.
func (t *Tree) Name() string {
	return t.name
}

// Root returns the root node.
func (t *Tree) Root() *node.Node {
	return t.root
}

func (t *Tree) validate(path string) error {
	if t.policy == Literal {
		return nil
	}
	return node.ValidatePath(path)
}

// On registers handler on path. An empty path registers on the root, so the
// handler receives every event triggered on the tree. A nil options value
// defaults to an empty one.
func (t *Tree) On(path string, options types.Values, handler node.Handler) (node.Registration, error) {
	if err := t.validate(path); err != nil {
		return node.Registration{}, err
	}
	reg, err := t.root.On(path, options, handler)
	if err != nil {
		return reg, err
	}
	t.logger.Debug("registered handler",
		slogx.Path(path),
		slogx.Handler(reflectx.FunctionName(handler)),
		slog.String("id", reg.ID.String()),
	)
	return reg, nil
}

// AddEventListener is an alias for On.
func (t *Tree) AddEventListener(path string, options types.Values, handler node.Handler) (node.Registration, error) {
	return t.On(path, options, handler)
}

// Unon removes every registration of handler on path and prunes what is left
// empty. It returns the number of registrations removed; an unknown path removes
// nothing and is not an error.
func (t *Tree) Unon(path string, handler node.Handler) (int, error) {
	if err := t.validate(path); err != nil {
		return 0, err
	}
	removed := t.root.Unon(path, handler)
	if removed > 0 {
		t.logger.Debug("removed handler",
			slogx.Path(path),
			slogx.Handler(reflectx.FunctionName(handler)),
			slog.Int("count", removed),
		)
	}
	return removed, nil
}

// RemoveEventListener is an alias for Unon.
func (t *Tree) RemoveEventListener(path string, handler node.Handler) (int, error) {
	return t.Unon(path, handler)
}

// Off removes exactly the registration returned by On.
func (t *Tree) Off(reg node.Registration) bool {
	removed := t.root.RemoveID(reg.Path, reg.ID)
	if removed {
		t.logger.Debug("removed registration", slogx.Path(reg.Path), slog.String("id", reg.ID.String()))
	}
	return removed
}

// Trigger dispatches path with context (an empty value when nil) from the root
// down. The first handler error aborts dispatch and is returned as a
// *node.HandlerError.
func (t *Tree) Trigger(path string, context types.Values) error {
	if err := t.validate(path); err != nil {
		return err
	}
	p, err := t.root.Trigger(path, context)
	if err != nil {
		t.logger.Debug("dispatch aborted", slogx.Path(path), slogx.Error(err))
		return err
	}
	if p == node.Stop {
		t.logger.Debug("propagation stopped", slogx.Path(path))
	}
	return nil
}

// Dispatch is an alias for Trigger.
func (t *Tree) Dispatch(path string, context types.Values) error {
	return t.Trigger(path, context)
}

// Prune sweeps the whole tree and removes every node without registrations and
// without children. The root always stays.
func (t *Tree) Prune() {
	t.root.Prune()
	t.logger.Debug("pruned tree")
}

// Listeners returns the handlers a trigger on path would invoke, in order.
func (t *Tree) Listeners(path string) ([]node.Handler, error) {
	if err := t.validate(path); err != nil {
		return nil, err
	}
	return t.root.Listeners(path), nil
}

// Snapshot captures the current shape of the tree.
func (t *Tree) Snapshot() node.Snapshot {
	return t.root.Snapshot()
}

// String renders the snapshot as JSON.
func (t *Tree) String() string {
	b, err := json.Marshal(t.Snapshot())
	if err != nil {
		return ""
	}
	return string(b)
}
