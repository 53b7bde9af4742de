package node

import (
	"slices"

	"github.com/casualjim/eventtree/types"
	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Propagation is the result of a handler: whether dispatch continues to descend.
type Propagation uint8

const (
	// Continue lets dispatch descend to the next node on the path.
	Continue Propagation = iota
	// Stop ends dispatch once the remaining handlers on the current node have run.
	Stop
)

func (p Propagation) String() string {
	switch p {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Event is the single argument a handler receives.
type Event struct {
	// Path is the path passed to Trigger, identical for every node on the walk.
	Path string
	// Context is the value passed to Trigger.
	Context types.Values
	// Options is the value supplied when this handler was registered.
	Options types.Values
}

// Handler handles events dispatched through a node.
type Handler func(Event) (Propagation, error)

// Registration is a handler attached to a node together with its options.
// Registering the same handler twice yields two registrations with distinct IDs.
type Registration struct {
	ID      uuid.UUID
	Path    string
	Options types.Values
	Handler Handler

	fn uintptr
}

// Node is a position in the event tree. The zero value is an empty root node.
type Node struct {
	parent        *Node
	children      *orderedmap.OrderedMap[string, *Node]
	registrations []Registration
}

// New creates an empty root node.
func New() *Node {
	return &Node{
		children: orderedmap.New[string, *Node](),
	}
}

func newChild(parent *Node) *Node {
	n := New()
	n.parent = parent
	return n
}

// Parent returns the node that owns n, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Child returns the direct child named segment.
func (n *Node) Child(segment string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	return n.children.Get(segment)
}

// Children returns the segment names of the direct children in creation order.
func (n *Node) Children() []string {
	if n.children == nil {
		return nil
	}
	segments := make([]string, 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		segments = append(segments, pair.Key)
	}
	return segments
}

// Registrations returns a copy of the registrations on n in registration order.
func (n *Node) Registrations() []Registration {
	return slices.Clone(n.registrations)
}

// Prunable reports whether n holds no registrations and has no children.
func (n *Node) Prunable() bool {
	return len(n.registrations) == 0 && n.childCount() == 0
}

func (n *Node) childCount() int {
	if n.children == nil {
		return 0
	}
	return n.children.Len()
}

// child returns the child named segment, creating it when create is set.
func (n *Node) child(segment string, create bool) (*Node, bool) {
	if c, ok := n.Child(segment); ok {
		return c, true
	}
	if !create {
		return nil, false
	}
	if n.children == nil {
		n.children = orderedmap.New[string, *Node]()
	}
	c := newChild(n)
	n.children.Set(segment, c)
	return c, true
}
