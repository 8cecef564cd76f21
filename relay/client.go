package relay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ilp-connector/relay/ilp"
	"github.com/ilp-connector/relay/routing"
)

// DefaultMaxTimeout is the upper bound on the outgoing deadline when a
// Client isn't configured otherwise (spec §4.6, §6.4).
const DefaultMaxTimeout = 60 * time.Second

// Client issues the outgoing HTTP request for a forwarded Prepare and
// maps the transport outcome onto an ILP Fulfill or Reject (spec §4.6,
// §4.8, §7). It never retries and it never returns a bare transport
// error to its caller — every outcome is translated into a packet.
type Client struct {
	// Address is this node's own ILP address, used as triggered_by on
	// every Reject the Client synthesizes.
	Address string
	// HTTPClient performs the outgoing request. If nil, http.DefaultClient
	// is used. Its Transport may be shared and reused across requests
	// (spec §5: the connection pool is correct because each request is
	// self-contained and correlated at the HTTP layer).
	HTTPClient *http.Client
	// MaxTimeout bounds the outgoing deadline regardless of how long the
	// Prepare's own expiry allows (spec §4.6). Zero means DefaultMaxTimeout.
	MaxTimeout time.Duration
}

// Forward sends prepare to the given next hop and returns its outcome.
func (c Client) Forward(ctx context.Context, hop routing.NextHop, prepare *ilp.Prepare) (*ilp.Fulfill, *ilp.Reject) {
	expiresIn := time.Until(prepare.ExpiresAt)
	if expiresIn <= 0 {
		return nil, c.reject(ilp.CodeInsufficientTimeout, "insufficient timeout")
	}

	maxTimeout := c.MaxTimeout
	if maxTimeout <= 0 {
		maxTimeout = DefaultMaxTimeout
	}
	deadline := expiresIn
	if maxTimeout < deadline {
		deadline = maxTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	body, err := ilp.Encode(prepare)
	if err != nil {
		return nil, c.reject(ilp.CodeInternalError, "failed to encode outgoing prepare")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hop.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, c.reject(ilp.CodePeerUnreachable, "peer connection error")
	}
	req.Header.Set("Content-Type", octetStream)
	if hop.Auth != "" {
		req.Header.Set("Authorization", hop.Auth)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, c.reject(ilp.CodeTransferTimedOut, "request timed out")
		}
		return nil, c.reject(ilp.CodePeerUnreachable, "peer connection error")
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp)
}

func (c Client) decodeResponse(resp *http.Response) (*ilp.Fulfill, *ilp.Reject) {
	switch {
	case resp.StatusCode == http.StatusOK:
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, c.reject(ilp.CodeInternalError, "invalid response body from peer")
		}
		decoded, err := ilp.Decode(respBody)
		if err != nil {
			return nil, c.reject(ilp.CodeInternalError, "invalid response body from peer")
		}
		switch packet := decoded.(type) {
		case *ilp.Fulfill:
			return packet, nil
		case *ilp.Reject:
			// The peer's reject passes through verbatim: triggered_by and
			// data are preserved, not rewritten to this Client's address
			// (spec §7 "Propagation policy").
			return nil, packet
		default:
			return nil, c.reject(ilp.CodeInternalError, "invalid response body from peer")
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, c.reject(ilp.CodeBadRequest, "bad request to peer")
	case resp.StatusCode >= 500 && resp.StatusCode < 600:
		return nil, c.reject(ilp.CodePeerUnreachable, "peer internal error")
	default:
		return nil, c.reject(ilp.CodeInternalError, "unexpected response code from peer")
	}
}

func (c Client) reject(code ilp.ErrorCode, message string) *ilp.Reject {
	return ilp.RejectBuilder{
		Code:        code,
		Message:     []byte(message),
		TriggeredBy: []byte(c.Address),
		Data:        []byte{},
	}.Build()
}
