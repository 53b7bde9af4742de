package broker

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/casualjim/eventtree/pkg/slogx"
	"github.com/casualjim/eventtree/types"
	"github.com/nats-io/nats.go"
)

// DefaultBufferSize is the capacity of the channel inbound messages queue on.
const DefaultBufferSize = 64

// Subscriber delivers messages for a subject onto a channel. *nats.Conn
// satisfies it.
type Subscriber interface {
	ChanSubscribe(subject string, ch chan *nats.Msg) (*nats.Subscription, error)
}

// Target is what inbound messages are dispatched into. *eventtree.Tree
// satisfies it.
type Target interface {
	Trigger(path string, values types.Values) error
}

// Inbound triggers a tree for every message published below a prefix.
type Inbound struct {
	prefix string
	target Target
	msgs   chan *nats.Msg
	sub    *nats.Subscription
	logger *slog.Logger
}

// NewInbound subscribes to every subject below prefix. An empty prefix
// subscribes to all subjects and uses them as paths unchanged.
func NewInbound(sub Subscriber, prefix string, target Target) (*Inbound, error) {
	if sub == nil {
		return nil, errors.New("subscriber is required")
	}
	if target == nil {
		return nil, errors.New("target is required")
	}

	in := &Inbound{
		prefix: prefix,
		target: target,
		msgs:   make(chan *nats.Msg, DefaultBufferSize),
		logger: slog.Default().With(slogx.LoggerName("broker"), slog.String("prefix", prefix)),
	}
	nsub, err := sub.ChanSubscribe(Subject(prefix, ">"), in.msgs)
	if err != nil {
		return nil, err
	}
	in.sub = nsub
	return in, nil
}

// Run dispatches messages until ctx is done. It returns ctx.Err() on
// cancellation and nil once the message channel is closed.
func (i *Inbound) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-i.msgs:
			if !ok {
				return nil
			}
			i.handle(msg)
		}
	}
}

func (i *Inbound) handle(msg *nats.Msg) {
	path, ok := pathFromSubject(i.prefix, msg.Subject)
	if !ok {
		i.logger.Warn("message outside prefix", slog.String("subject", msg.Subject))
		return
	}

	env, err := DecodeEnvelope(msg.Data)
	if err != nil {
		i.logger.Error("failed to decode event", slogx.Error(err), slog.String("subject", msg.Subject))
		return
	}

	if err := i.target.Trigger(path, env.Context); err != nil {
		i.logger.Error("failed to dispatch event", slogx.Error(err), slogx.Path(path))
	}
}

// Close stops the subscription. Messages already queued are dropped.
func (i *Inbound) Close() error {
	if i.sub == nil {
		return nil
	}
	return i.sub.Unsubscribe()
}

func pathFromSubject(prefix, subject string) (string, bool) {
	if prefix == "" {
		return subject, true
	}
	return strings.CutPrefix(subject, prefix+".")
}
