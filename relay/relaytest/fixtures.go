// Package relaytest provides packet fixtures and a mock peer HTTP server
// for exercising the relay pipeline end-to-end.
package relaytest

import (
	"time"

	"github.com/ilp-connector/relay/ilp"
)

// ExpiresIn is the fixture Prepare's default time-to-expiry.
const ExpiresIn = 20 * time.Second

var condition = [32]byte{
	0x11, 0x7b, 0x43, 0x4f, 0x1a, 0x54, 0xe9, 0x04,
	0x4f, 0x4f, 0x54, 0x92, 0x3b, 0x2c, 0xff, 0x9e,
	0x4a, 0x6d, 0x42, 0x0a, 0xe2, 0x81, 0xd5, 0x02,
	0x5d, 0x7b, 0xb0, 0x40, 0xc4, 0xb4, 0xc0, 0x4a,
}

// Prepare returns a fresh fixture Prepare, expiring ExpiresIn from now.
func Prepare() *ilp.Prepare {
	return &ilp.Prepare{
		Amount:             123,
		ExpiresAt:          time.Now().Add(ExpiresIn),
		ExecutionCondition: condition,
		Destination:        []byte("test.bob.1234"),
		Data:               []byte("prepare data"),
	}
}

// Fulfill returns a fresh fixture Fulfill matching Prepare's condition.
func Fulfill() *ilp.Fulfill {
	return &ilp.Fulfill{
		Fulfillment: condition,
		Data:        []byte("fulfill data"),
	}
}

// Reject returns a fresh fixture Reject, as if minted by a downstream peer.
func Reject() *ilp.Reject {
	return ilp.RejectBuilder{
		Code:        ilp.ErrorCode{'F', '9', '9'},
		Message:     []byte("Some error"),
		TriggeredBy: []byte("example.connector"),
		Data:        []byte("reject data"),
	}.Build()
}
