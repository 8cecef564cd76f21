// Package relay implements the ILP-over-HTTP forwarding pipeline: the
// method and auth-token filters, the Receiver (HTTP⇄Packet boundary),
// the routing Relay, and the outgoing Client (spec §2, §4).
package relay

import (
	"context"

	"github.com/ilp-connector/relay/ilp"
)

// Service is the core abstraction the pipeline is built from: something
// that takes a Prepare and eventually produces a Fulfill or a Reject.
// The Relay (router) implements it, delegating to Client.Forward, and
// Receiver adapts an arbitrary Service onto an http.Handler.
type Service interface {
	Send(ctx context.Context, prepare *ilp.Prepare) (*ilp.Fulfill, *ilp.Reject)
}

// ServiceFunc adapts a plain function to a Service, mirroring
// http.HandlerFunc.
type ServiceFunc func(ctx context.Context, prepare *ilp.Prepare) (*ilp.Fulfill, *ilp.Reject)

func (f ServiceFunc) Send(ctx context.Context, prepare *ilp.Prepare) (*ilp.Fulfill, *ilp.Reject) {
	return f(ctx, prepare)
}
