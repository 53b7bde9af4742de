package node

// Listeners returns the handlers Trigger would invoke for path, in the same
// order, ignoring propagation stops. Collection ends where the path leaves the
// tree. It has no side effects.
func (n *Node) Listeners(path string) []Handler {
	var handlers []Handler
	for cur := n; cur != nil; {
		for _, reg := range cur.registrations {
			handlers = append(handlers, reg.Handler)
		}
		if path == "" {
			break
		}

		var head string
		head, path, _ = Split(path)
		cur, _ = cur.child(head, false)
	}
	return handlers
}
