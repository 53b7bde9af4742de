// Package broker bridges an event tree and NATS. NATS subjects are dot-separated
// just like tree paths, so a subject below a prefix maps directly onto a path.
//
// Outbound, Forward builds a handler that republishes every event it sees:
//
//	nc, _ := natsx.NewClient()
//	tree := eventtree.New()
//	tree.On("order", nil, broker.Forward(nc, "shop"))
//	tree.Trigger("order.created", ctx) // published on "shop.order.created"
//
// Inbound, an Inbound subscribes to everything below a prefix and triggers the
// tree for each message:
//
//	in, err := broker.NewInbound(nc, "shop", tree)
//	if err != nil {
//	    return err
//	}
//	defer in.Close()
//	return in.Run(ctx)
//
// Messages are delivered over a channel and Run drains it on the calling
// goroutine, so the tree is only ever touched from that goroutine.
//
// Wire format:
//
//	{"type":"event","path":"order.created","context":{...},"options":{...},"timestamp":"..."}
//
// The options are those of the forwarding registration. Inbound ignores them;
// the receiving tree applies its own.
package broker
