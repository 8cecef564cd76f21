package relaytest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/ilp-connector/relay/ilp"
)

// MockPeer is a test double for an upstream connector: an HTTP server
// that records the last request it received and responds with a
// pre-configured packet (or raw bytes, or an artificial delay/abort).
type MockPeer struct {
	Server *httptest.Server

	mu          sync.Mutex
	lastRequest *http.Request
	lastBody    []byte

	delay        time.Duration
	abort        bool
	responseFunc func() (int, []byte)
}

// NewMockPeer starts a MockPeer listening on an ephemeral local port.
func NewMockPeer() *MockPeer {
	p := &MockPeer{}
	p.Server = httptest.NewServer(http.HandlerFunc(p.handle))
	return p
}

func (p *MockPeer) handle(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.lastRequest = r
	delay := p.delay
	abort := p.abort
	respond := p.responseFunc
	p.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	p.mu.Lock()
	p.lastBody = body
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if abort {
		hj, ok := w.(http.Hijacker)
		if ok {
			conn, _, err := hj.Hijack()
			if err == nil {
				conn.Close()
				return
			}
		}
		return
	}

	if respond == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	status, payload := respond()
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// WithResponse configures the status and raw body the peer returns.
func (p *MockPeer) WithResponse(status int, body []byte) *MockPeer {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responseFunc = func() (int, []byte) { return status, body }
	return p
}

// WithFulfill configures the peer to return 200 with the given Fulfill.
func (p *MockPeer) WithFulfill(f *ilp.Fulfill) *MockPeer {
	encoded, _ := ilp.Encode(f)
	return p.WithResponse(http.StatusOK, encoded)
}

// WithReject configures the peer to return 200 with the given Reject.
func (p *MockPeer) WithReject(j *ilp.Reject) *MockPeer {
	encoded, _ := ilp.Encode(j)
	return p.WithResponse(http.StatusOK, encoded)
}

// WithDelay makes the peer sleep before responding, to exercise deadline
// handling.
func (p *MockPeer) WithDelay(d time.Duration) *MockPeer {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
	return p
}

// WithAbort makes the peer hijack and close the connection without
// writing a response, simulating a transport-level failure.
func (p *MockPeer) WithAbort() *MockPeer {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.abort = true
	return p
}

// LastRequest returns the most recently received request (nil if none
// yet).
func (p *MockPeer) LastRequest() *http.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRequest
}

// LastBody returns the most recently received request body.
func (p *MockPeer) LastBody() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastBody
}

// URL returns the peer's base URL, e.g. to build a routing.NextHop from.
func (p *MockPeer) URL() string {
	return p.Server.URL
}

// Close shuts the peer down.
func (p *MockPeer) Close() {
	p.Server.Close()
}
