package node

import (
	"slices"

	"github.com/casualjim/eventtree/pkg/reflectx"
	"github.com/google/uuid"
)

// Unon removes every registration of handler on path relative to n and returns
// how many were removed. Removing from a path that does not exist is a no-op.
// Handlers are matched by identity, see the package documentation.
//
// When the target node has a parent, the parent's subtree is pruned afterwards.
func (n *Node) Unon(path string, handler Handler) int {
	if handler == nil {
		return 0
	}
	fn := reflectx.FuncID(handler)
	return n.remove(path, func(r Registration) bool { return r.fn == fn })
}

// RemoveID removes the registration with the given ID from path relative to n.
// It prunes exactly like Unon and reports whether a registration was removed.
func (n *Node) RemoveID(path string, id uuid.UUID) bool {
	return n.remove(path, func(r Registration) bool { return r.ID == id }) > 0
}

func (n *Node) remove(path string, match func(Registration) bool) int {
	if path == "" {
		before := len(n.registrations)
		n.registrations = slices.DeleteFunc(n.registrations, match)
		if n.parent != nil {
			n.parent.Prune()
		}
		return before - len(n.registrations)
	}

	head, rest, _ := Split(path)
	child, ok := n.child(head, false)
	if !ok {
		return 0
	}
	return child.remove(rest, match)
}

// Prune sweeps the subtree below n bottom-up and detaches every child that ends up
// with no registrations and no children. n itself is never detached; the result
// reports whether n is now empty so a caller one level up can decide.
func (n *Node) Prune() bool {
	if n.children != nil {
		var empty []string
		for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value.Prune() {
				empty = append(empty, pair.Key)
			}
		}
		for _, segment := range empty {
			n.children.Delete(segment)
		}
	}
	return n.Prunable()
}
