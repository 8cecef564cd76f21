package relay

import (
	"context"

	"github.com/ilp-connector/relay/ilp"
	"github.com/ilp-connector/relay/routing"
)

// Relay resolves a Prepare's destination against a routing.Table and
// forwards it via a Client (spec §4.5). It implements Service, so it can
// sit directly behind a Receiver.
type Relay struct {
	Address string
	Table   *routing.Table
	Client  Client

	// OnRouteMiss and OnForward are optional hooks used for metrics;
	// either may be nil.
	OnRouteMiss func()
	OnForward   func(outcome string)
}

func NewRelay(address string, table *routing.Table, client Client) *Relay {
	return &Relay{Address: address, Table: table, Client: client}
}

func (rl *Relay) Send(ctx context.Context, prepare *ilp.Prepare) (*ilp.Fulfill, *ilp.Reject) {
	route, ok := rl.Table.Resolve(prepare.Destination)
	if !ok {
		if rl.OnRouteMiss != nil {
			rl.OnRouteMiss()
		}
		reject := ilp.RejectBuilder{
			Code:        ilp.CodeUnreachable,
			Message:     []byte("no route found"),
			TriggeredBy: []byte(rl.Address),
			Data:        []byte{},
		}.Build()
		rl.record(false)
		return nil, reject
	}

	fulfill, reject := rl.Client.Forward(ctx, route.NextHop, prepare)
	rl.record(reject == nil)
	return fulfill, reject
}

func (rl *Relay) record(fulfilled bool) {
	if rl.OnForward == nil {
		return
	}
	if fulfilled {
		rl.OnForward("fulfill")
	} else {
		rl.OnForward("reject")
	}
}

// SetRoutes atomically replaces the routing table (spec §4.5). In-flight
// forwards that already resolved a route are unaffected.
func (rl *Relay) SetRoutes(routes []routing.Route) {
	rl.Table.SetRoutes(routes)
}
