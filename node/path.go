package node

import (
	"fmt"
	"strings"
)

// Separator splits a path into segments.
const Separator = "."

// Split cuts path at the first separator. more reports whether a separator was
// found; rest holds everything after it, unevaluated.
//
//	Split("a.b.c") // "a", "b.c", true
//	Split("a")     // "a", "", false
func Split(path string) (head, rest string, more bool) {
	return strings.Cut(path, Separator)
}

// Join appends a segment to a path.
func Join(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + Separator + segment
}

// ValidatePath rejects paths that contain empty segments: a leading or trailing
// separator, or two separators in a row. The empty path is valid and addresses the
// node an operation is called on.
//
// Nodes do not call ValidatePath themselves; they treat an empty segment as an
// ordinary child key. Callers that want strict paths validate first.
func ValidatePath(path string) error {
	if path == "" {
		return nil
	}
	for i, seg := range strings.Split(path, Separator) {
		if seg == "" {
			return fmt.Errorf("%w: %q has an empty segment at position %d", ErrInvalidPath, path, i)
		}
	}
	return nil
}
