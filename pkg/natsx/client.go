package natsx

import (
	"os"

	"github.com/nats-io/nats.go"
)

// DefaultClientName is the connection name reported to the NATS server.
const DefaultClientName = "eventtree"

// URL returns the NATS server URL from the NATS_URL environment variable,
// falling back to nats.DefaultURL.
func URL() string {
	if u := os.Getenv("NATS_URL"); u != "" {
		return u
	}
	return nats.DefaultURL
}

// NewClient creates a new connection to the NATS server returned by URL.
// Without options the connection is named DefaultClientName and compression is enabled.
func NewClient(opts ...nats.Option) (*nats.Conn, error) {
	if len(opts) == 0 {
		opts = append(opts, nats.Name(DefaultClientName), nats.Compression(true))
	}
	return nats.Connect(URL(), opts...)
}
