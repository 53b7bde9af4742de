package node

import (
	"errors"
	"fmt"
)

var (
	// ErrHandlerRequired is returned when registering a nil handler.
	ErrHandlerRequired = errors.New("handler is required")

	// ErrInvalidPath is returned by ValidatePath for paths with empty segments.
	ErrInvalidPath = errors.New("invalid event path")
)

// HandlerError wraps an error returned by a handler during Trigger.
type HandlerError struct {
	// Path is the path that was triggered.
	Path string
	// Node is the path of the node the failing handler was registered on.
	Node string
	// Handler is the runtime name of the failing handler.
	Handler string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s on %q failed while dispatching %q: %v", e.Handler, e.Node, e.Path, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
