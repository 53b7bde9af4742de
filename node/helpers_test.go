package node

import (
	"github.com/casualjim/eventtree/types"
)

// recorder collects calls in order. Every handler it hands out is a new closure
// and a distinct handler for Unon.
type recorder struct {
	calls  []string
	events []Event
}

func (r *recorder) handler(name string) Handler {
	return r.returning(name, Continue)
}

func (r *recorder) returning(name string, p Propagation) Handler {
	return func(ev Event) (Propagation, error) {
		r.calls = append(r.calls, name)
		r.events = append(r.events, ev)
		return p, nil
	}
}

// mustOn registers and fails the test on error.
func mustOn(t interface {
	Helper()
	Fatalf(string, ...any)
}, n *Node, path string, options types.Values, h Handler,
) Registration {
	t.Helper()
	reg, err := n.On(path, options, h)
	if err != nil {
		t.Fatalf("On(%q): %v", path, err)
	}
	return reg
}

// walk returns the node at path without creating anything.
func walk(n *Node, path string) (*Node, bool) {
	cur := n
	for path != "" {
		var head string
		head, path, _ = Split(path)
		next, ok := cur.Child(head)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
