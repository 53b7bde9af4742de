package node

import (
	"slices"

	"github.com/casualjim/eventtree/pkg/reflectx"
	"github.com/casualjim/eventtree/types"
)

// Trigger dispatches an event for path, starting at n and descending one segment
// at a time. On every visited node all registrations run in order with the
// originally triggered path, the context (an empty value when nil) and the
// registration's own options.
//
// The result is Stop when a handler stopped propagation. Descent ends silently
// where the path leaves the tree. The first handler error aborts the walk and is
// returned as a *HandlerError.
func (n *Node) Trigger(path string, context types.Values) (Propagation, error) {
	return n.trigger(path, path, "", context.OrEmpty())
}

func (n *Node) trigger(path, original, at string, context types.Values) (Propagation, error) {
	result := Continue

	// Handlers may change this node's registrations; iterate a copy.
	for _, reg := range slices.Clone(n.registrations) {
		p, err := reg.Handler(Event{Path: original, Context: context, Options: reg.Options})
		if err != nil {
			return result, &HandlerError{
				Path:    original,
				Node:    at,
				Handler: reflectx.FunctionName(reg.Handler),
				Err:     err,
			}
		}
		if p == Stop {
			result = Stop
		}
	}

	if result == Stop || path == "" {
		return result, nil
	}

	head, rest, _ := Split(path)
	child, ok := n.child(head, false)
	if !ok {
		return Continue, nil
	}
	return child.trigger(rest, original, Join(at, head), context)
}
