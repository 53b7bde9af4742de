package eventtree

import (
	"github.com/casualjim/eventtree/internal/registry"
	"github.com/fogfish/opts"
)

// Registry hands out named trees. Looking trees up is safe for concurrent use;
// the trees themselves are not, so a tree should stay with one goroutine.
type Registry struct {
	trees    registry.Registry[*Tree]
	defaults []opts.Option[Tree]
}

// NewRegistry creates an empty registry. The defaults are applied to every tree it
// creates, before the tree's name.
func NewRegistry(defaults ...opts.Option[Tree]) *Registry {
	return &Registry{
		trees:    registry.New[*Tree](),
		defaults: defaults,
	}
}

// Tree returns the tree called name, creating it on first use.
func (r *Registry) Tree(name string) *Tree {
	tree, _ := r.trees.GetOrAdd(name, func() *Tree {
		options := append([]opts.Option[Tree]{}, r.defaults...)
		return New(append(options, WithName(name))...)
	})
	return tree
}

// Get returns the tree called name if it exists.
func (r *Registry) Get(name string) (*Tree, bool) {
	return r.trees.Get(name)
}

// Delete forgets the tree called name.
func (r *Registry) Delete(name string) {
	r.trees.Del(name)
}

// Names returns the names of all trees in sorted order.
func (r *Registry) Names() []string {
	return r.trees.Names()
}
