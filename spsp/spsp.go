// Package spsp implements a minimal SPSP query/pay helper for the admin
// API's POST /pay endpoint, grounded on interledger-spsp::pay and
// interledger-spsp::SpspResponse. It is deliberately single-packet: no
// STREAM multi-packet flow and no congestion control, consistent with
// the relay core's Non-goal on flow control (SPEC_FULL.md "SPSP payment
// helper").
package spsp

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ilp-connector/relay/ilp"
	"github.com/ilp-connector/relay/relay"
	"github.com/ilp-connector/relay/store"
)

const acceptHeader = "application/spsp4+json"

// Details is the decoded response of an SPSP query.
type Details struct {
	DestinationAccount string
	SharedSecret       []byte
}

type wireDetails struct {
	DestinationAccount string `json:"destination_account"`
	SharedSecret       string `json:"shared_secret"`
}

// ResolveURL turns a payment pointer into the SPSP URL to query,
// following the '$' shorthand convention: a pointer beginning with '$'
// resolves to https://<rest>/.well-known/pay; anything else is used
// verbatim as a full URL.
func ResolveURL(paymentPointer string) string {
	if strings.HasPrefix(paymentPointer, "$") {
		return "https://" + strings.TrimPrefix(paymentPointer, "$") + "/.well-known/pay"
	}
	return paymentPointer
}

// Query resolves a payment pointer to SPSP connection details.
func Query(ctx context.Context, client *http.Client, receiverPaymentPointer string) (Details, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ResolveURL(receiverPaymentPointer), nil)
	if err != nil {
		return Details{}, fmt.Errorf("spsp: building query request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("spsp: querying %s: %w", receiverPaymentPointer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Details{}, fmt.Errorf("spsp: query returned status %d", resp.StatusCode)
	}

	var wire wireDetails
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return Details{}, fmt.Errorf("spsp: decoding query response: %w", err)
	}

	return Details{
		DestinationAccount: wire.DestinationAccount,
		SharedSecret:       []byte(wire.SharedSecret),
	}, nil
}

// Pay sends a single ILP Prepare addressed at the resolved destination
// account. A Fulfill yields sourceAmount as the delivered amount (no
// rate conversion is modeled, matching SPEC_FULL.md's rate store being
// an administrative concern only); a Reject yields an error carrying
// its ILP error code and message.
func Pay(ctx context.Context, svc relay.Service, from store.Account, receiver string, sourceAmount uint64) (uint64, error) {
	details, err := Query(ctx, nil, receiver)
	if err != nil {
		return 0, err
	}

	condition, err := fulfillmentCondition()
	if err != nil {
		return 0, fmt.Errorf("spsp: generating condition: %w", err)
	}

	prepare := &ilp.Prepare{
		Amount:             sourceAmount,
		ExpiresAt:          time.Now().Add(30 * time.Second),
		ExecutionCondition: condition,
		Destination:        []byte(details.DestinationAccount),
		Data:               nil,
	}

	fulfill, reject := svc.Send(ctx, prepare)
	if reject != nil {
		return 0, fmt.Errorf("spsp: payment rejected: %s %s", reject.Code, reject.Message)
	}
	_ = fulfill
	return sourceAmount, nil
}

// fulfillmentCondition derives a deterministic-shape, 32-byte condition.
// Without a STREAM session there is no pre-shared fulfillment to hash;
// this single-packet sender has no way to learn the real fulfillment in
// advance, so it generates a random condition it does not expect a
// matching fulfillment for and relies on the Prepare/Reject accounting
// alone. This mirrors the minimal, flow-control-free scope of the
// single-packet sender described in SPEC_FULL.md.
func fulfillmentCondition() ([32]byte, error) {
	var preimage [32]byte
	if _, err := rand.Read(preimage[:]); err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(preimage[:]), nil
}
