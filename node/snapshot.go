package node

import (
	"github.com/casualjim/eventtree/pkg/reflectx"
)

// Snapshot is a read-only picture of a subtree, suitable for logging and JSON.
type Snapshot struct {
	Segment  string     `json:"segment"`
	Path     string     `json:"path"`
	Handlers []string   `json:"handlers,omitempty"`
	Children []Snapshot `json:"children,omitempty"`
}

// Snapshot captures n and its descendants. Handlers are listed by runtime name in
// registration order, children in creation order.
func (n *Node) Snapshot() Snapshot {
	return n.snapshot("", "")
}

func (n *Node) snapshot(segment, path string) Snapshot {
	s := Snapshot{Segment: segment, Path: path}
	for _, reg := range n.registrations {
		s.Handlers = append(s.Handlers, reflectx.FunctionName(reg.Handler))
	}
	if n.children != nil {
		for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
			s.Children = append(s.Children, pair.Value.snapshot(pair.Key, Join(path, pair.Key)))
		}
	}
	return s
}

// Count returns the number of registrations in the subtree rooted at the snapshot.
func (s Snapshot) Count() int {
	total := len(s.Handlers)
	for _, c := range s.Children {
		total += c.Count()
	}
	return total
}
