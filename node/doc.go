// Package node implements the hierarchical event-dispatch tree at the heart of
// eventtree.
//
// A Node owns a set of named children and an ordered list of registrations.
// Paths are dot-separated ("order.created"); every segment names one child, and
// children are created lazily the first time a registration walks through them.
//
// Dispatch is hierarchical: triggering "a.b.c" invokes the handlers registered on
// the node it is called on, then those on "a", "a.b" and finally "a.b.c", each
// node in registration order. Every handler receives the originally triggered
// path, the trigger context and the options of its own registration:
//
//	root := node.New()
//	root.On("order", nil, audit)
//	root.On("order.created", types.Values{"channel": "email"}, notify)
//
//	// audit runs first, then notify; both see Path == "order.created"
//	root.Trigger("order.created", types.Values{"order_id": 42})
//
// A handler that returns Stop ends the walk after the remaining handlers of its
// own node have run. A handler that returns an error aborts the walk at once and
// the error is returned from Trigger wrapped in a *HandlerError.
//
// Removing handlers (Unon, RemoveID) prunes the branches left empty: after the
// removal the parent of the changed node sweeps its subtree and detaches every
// child without registrations and without children. The node a sweep starts on
// is never detached by that sweep, and the root is never detached at all.
//
// # Handler identity
//
// Go functions are not comparable, so Unon matches handlers by the closure a
// handler value points at. Passing the value that was registered, or any copy of
// it, removes it; two closures built by the same factory are different handlers.
// Top-level functions are the same handler wherever they are referenced. A method
// value is a new closure every time it is evaluated, so keep the value to remove
// it. The Registration returned by On together with RemoveID removes exactly one
// registration.
//
// # Concurrency
//
// A Node is not safe for concurrent use. All operations run to completion on the
// calling goroutine and handlers run inline. Handlers may trigger, register or
// unregister on the same tree re-entrantly: each node iterates over a copy of its
// registrations taken when its dispatch step begins, so handlers added to that node
// during the step are not called and handlers removed from it still are. Children
// are looked up when the walk descends, after the node's handlers have run.
// Callers that share a tree between goroutines must serialize access themselves.
package node
