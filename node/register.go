package node

import (
	"github.com/casualjim/eventtree/pkg/reflectx"
	"github.com/casualjim/eventtree/pkg/uuidx"
	"github.com/casualjim/eventtree/types"
)

// On registers handler on path relative to n, creating every missing node along
// the way. An empty path registers on n itself. A nil options value is replaced
// by an empty one.
//
// The same handler may be registered any number of times; each registration is
// called and removed independently of the others.
func (n *Node) On(path string, options types.Values, handler Handler) (Registration, error) {
	if handler == nil {
		return Registration{}, ErrHandlerRequired
	}

	reg := Registration{
		ID:      uuidx.New(),
		Path:    path,
		Options: options.OrEmpty(),
		Handler: handler,
		fn:      reflectx.FuncID(handler),
	}
	n.on(path, reg)
	return reg, nil
}

func (n *Node) on(path string, reg Registration) {
	if path == "" {
		n.registrations = append(n.registrations, reg)
		return
	}

	head, rest, _ := Split(path)
	child, _ := n.child(head, true)
	child.on(rest, reg)
}
