package broker

import (
	"fmt"
	"time"

	"github.com/casualjim/eventtree/node"
)

// Publisher publishes raw messages. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Subject returns the subject an event for path is published on below prefix.
func Subject(prefix, path string) string {
	return node.Join(prefix, path)
}

// Forward returns a handler that publishes every event it receives to
// Subject(prefix, event.Path). It never stops propagation; a failed publish is
// returned as a handler error and aborts the dispatch.
func Forward(pub Publisher, prefix string) node.Handler {
	return func(ev node.Event) (node.Propagation, error) {
		data, err := EncodeEvent(ev, time.Now())
		if err != nil {
			return node.Continue, err
		}
		subject := Subject(prefix, ev.Path)
		if err := pub.Publish(subject, data); err != nil {
			return node.Continue, fmt.Errorf("failed to publish to %s: %w", subject, err)
		}
		return node.Continue, nil
	}
}
