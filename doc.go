/*
Package eventtree provides an in-process, hierarchical event dispatcher meant to be
embedded in larger libraries and services.

Handlers are registered on dot-separated paths such as "order.created". Triggering a
path invokes the handlers on that path and on every ancestor of it, from the root
toward the leaf, each node in registration order. The hierarchy is structural:
there are no wildcards, a path only reaches the nodes spelled out by its segments.

# Basic Usage

	tree := eventtree.New(eventtree.WithName("orders"))

	// fires for every "order.*" event
	tree.On("order", nil, func(ev node.Event) (node.Propagation, error) {
		slog.Info("order event", "path", ev.Path)
		return node.Continue, nil
	})

	// fires for "order.created" and anything below it
	tree.On("order.created", types.Values{"channel": "email"}, notify)

	if err := tree.Trigger("order.created", types.Values{"order_id": 42}); err != nil {
		// a handler failed
	}

A handler receives a node.Event holding the path that was triggered (the same on
every node of the walk), the context passed to Trigger and the options that were
supplied when that particular handler was registered.

Registering on the empty path attaches the handler to the root, where it sees every
event triggered on the tree.

# Propagation

A handler that returns node.Stop prevents dispatch from descending further; the
remaining handlers on its own node still run. A handler that returns an error
aborts dispatch immediately and Trigger returns the error wrapped in a
*node.HandlerError. Panics are not recovered.

# Removal and Pruning

Unon removes every registration of a handler on a path, Off removes a single
registration by the value On returned. Branches left without registrations and
without children are pruned automatically below the parent of the changed node;
Prune sweeps the whole tree. The root is never removed.

# Aliases

The DOM-style names AddEventListener, RemoveEventListener and Dispatch are aliases
for On, Unon and Trigger.

# Paths

By default a Tree is Strict and rejects paths with empty segments ("a..b", ".a",
"a.") with node.ErrInvalidPath. WithPathPolicy(Literal) passes them through, where
an empty segment is an ordinary child named "".

# Thread Safety

A Tree is meant for a single goroutine. All operations, including handler calls,
run synchronously on the caller's goroutine, and handlers may re-enter the tree.
Use a Registry to keep one tree per component or worker, or serialize access
externally. The broker package bridges trees to NATS without breaking this rule.
*/
package eventtree
