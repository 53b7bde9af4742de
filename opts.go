package eventtree

import (
	"log/slog"

	"github.com/fogfish/opts"
)

// DefaultName is the name of a tree created without WithName.
const DefaultName = "default"

// WithName sets the name of the tree. The name is attached to every log record
// the tree writes and is the key trees are stored under in a Registry.
var WithName = opts.ForName[Tree, string]("name")

// WithPathPolicy selects how paths with empty segments are treated.
// The default is Strict.
var WithPathPolicy = opts.ForName[Tree, PathPolicy]("policy")

// WithLogger sets the logger used by the tree. When unset, or set to nil, the
// tree logs through slog.Default.
func WithLogger(logger *slog.Logger) opts.Option[Tree] {
	return opts.Type[Tree](func(t *Tree) error {
		t.logger = logger
		return nil
	})
}
