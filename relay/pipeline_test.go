package relay_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilp-connector/relay/ilp"
	"github.com/ilp-connector/relay/relay"
	"github.com/ilp-connector/relay/relay/relaytest"
	"github.com/ilp-connector/relay/routing"
)

const relayAddress = "example.relay"

func newTestServer(t *testing.T, routes []routing.Route) (*httptest.Server, func()) {
	t.Helper()
	table := routing.NewTable(routes)
	r := relay.NewRelay(relayAddress, table, relay.Client{Address: relayAddress})
	handler := relay.NewHandler([]string{"secret"}, r, nil)
	server := httptest.NewServer(handler)
	return server, server.Close
}

func post(t *testing.T, url, auth string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, newBodyReader(body))
	require.NoError(t, err)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// E1: a matching route forwards the Prepare and returns the peer's Fulfill.
func TestE1MatchingRouteForwardsAndFulfills(t *testing.T) {
	peer := relaytest.NewMockPeer()
	defer peer.Close()
	fulfill := relaytest.Fulfill()
	peer.WithFulfill(fulfill)

	routes := []routing.Route{{
		TargetPrefix: []byte(""),
		NextHop:      routing.NextHop{Endpoint: peer.URL() + "/ilp", Auth: "bob_auth"},
	}}
	server, closeFn := newTestServer(t, routes)
	defer closeFn()

	prepare := relaytest.Prepare()
	prepareBytes, _ := ilp.Encode(prepare)
	resp := post(t, server.URL, "secret", prepareBytes)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	gotBody := readAll(t, resp)
	wantBody, _ := ilp.Encode(fulfill)
	assert.Equal(t, wantBody, gotBody)

	req := peer.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/ilp", req.URL.Path)
	assert.Equal(t, "application/octet-stream", req.Header.Get("Content-Type"))
	assert.Equal(t, "bob_auth", req.Header.Get("Authorization"))
	assert.Equal(t, prepareBytes, peer.LastBody())
}

// E2: no routes configured -> F02_UNREACHABLE minted by the relay itself.
func TestE2NoRouteConfigured(t *testing.T) {
	server, closeFn := newTestServer(t, nil)
	defer closeFn()

	prepareBytes, _ := ilp.Encode(relaytest.Prepare())
	resp := post(t, server.URL, "secret", prepareBytes)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decoded, err := ilp.Decode(readAll(t, resp))
	require.NoError(t, err)
	reject, ok := decoded.(*ilp.Reject)
	require.True(t, ok)
	assert.Equal(t, ilp.CodeUnreachable, reject.Code)
	assert.Equal(t, []byte("no route found"), reject.Message)
	assert.Equal(t, []byte(relayAddress), reject.TriggeredBy)
	assert.Empty(t, reject.Data)
}

// E3: peer delay past the configured max_timeout -> R00.
func TestE3PeerDelayExceedsMaxTimeout(t *testing.T) {
	peer := relaytest.NewMockPeer()
	defer peer.Close()
	peer.WithDelay(30 * timeMillis).WithFulfill(relaytest.Fulfill())

	routes := []routing.Route{{TargetPrefix: []byte(""), NextHop: routing.NextHop{Endpoint: peer.URL()}}}
	table := routing.NewTable(routes)
	r := relay.NewRelay(relayAddress, table, relay.Client{Address: relayAddress, MaxTimeout: 15 * timeMillis})
	handler := relay.NewHandler([]string{"secret"}, r, nil)
	server := httptest.NewServer(handler)
	defer server.Close()

	prepareBytes, _ := ilp.Encode(relaytest.Prepare())
	resp := post(t, server.URL, "secret", prepareBytes)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decoded, err := ilp.Decode(readAll(t, resp))
	require.NoError(t, err)
	reject := decoded.(*ilp.Reject)
	assert.Equal(t, ilp.CodeTransferTimedOut, reject.Code)
	assert.Equal(t, []byte("request timed out"), reject.Message)
	assert.Equal(t, []byte(relayAddress), reject.TriggeredBy)
}

// E4: peer returns 200 with garbage -> T00 invalid response body.
func TestE4PeerReturnsGarbageBody(t *testing.T) {
	peer := relaytest.NewMockPeer()
	defer peer.Close()
	peer.WithResponse(200, []byte("this is not a packet"))

	routes := []routing.Route{{TargetPrefix: []byte(""), NextHop: routing.NextHop{Endpoint: peer.URL()}}}
	server, closeFn := newTestServer(t, routes)
	defer closeFn()

	prepareBytes, _ := ilp.Encode(relaytest.Prepare())
	resp := post(t, server.URL, "secret", prepareBytes)
	defer resp.Body.Close()

	decoded, err := ilp.Decode(readAll(t, resp))
	require.NoError(t, err)
	reject := decoded.(*ilp.Reject)
	assert.Equal(t, ilp.CodeInternalError, reject.Code)
	assert.Equal(t, []byte("invalid response body from peer"), reject.Message)
}

// E5: peer returns 400 -> F00.
func TestE5PeerReturns400(t *testing.T) {
	peer := relaytest.NewMockPeer()
	defer peer.Close()
	peer.WithResponse(400, nil)

	routes := []routing.Route{{TargetPrefix: []byte(""), NextHop: routing.NextHop{Endpoint: peer.URL()}}}
	server, closeFn := newTestServer(t, routes)
	defer closeFn()

	prepareBytes, _ := ilp.Encode(relaytest.Prepare())
	resp := post(t, server.URL, "secret", prepareBytes)
	defer resp.Body.Close()

	decoded, err := ilp.Decode(readAll(t, resp))
	require.NoError(t, err)
	reject := decoded.(*ilp.Reject)
	assert.Equal(t, ilp.CodeBadRequest, reject.Code)
	assert.Equal(t, []byte("bad request to peer"), reject.Message)
}

// E6: peer returns 500 -> T01.
func TestE6PeerReturns500(t *testing.T) {
	peer := relaytest.NewMockPeer()
	defer peer.Close()
	peer.WithResponse(500, nil)

	routes := []routing.Route{{TargetPrefix: []byte(""), NextHop: routing.NextHop{Endpoint: peer.URL()}}}
	server, closeFn := newTestServer(t, routes)
	defer closeFn()

	prepareBytes, _ := ilp.Encode(relaytest.Prepare())
	resp := post(t, server.URL, "secret", prepareBytes)
	defer resp.Body.Close()

	decoded, err := ilp.Decode(readAll(t, resp))
	require.NoError(t, err)
	reject := decoded.(*ilp.Reject)
	assert.Equal(t, ilp.CodePeerUnreachable, reject.Code)
	assert.Equal(t, []byte("peer internal error"), reject.Message)
}

// E7: wrong auth token -> 401, no peer traffic.
func TestE7WrongAuthToken(t *testing.T) {
	peer := relaytest.NewMockPeer()
	defer peer.Close()

	routes := []routing.Route{{TargetPrefix: []byte(""), NextHop: routing.NextHop{Endpoint: peer.URL()}}}
	server, closeFn := newTestServer(t, routes)
	defer closeFn()

	prepareBytes, _ := ilp.Encode(relaytest.Prepare())
	resp := post(t, server.URL, "wrong", prepareBytes)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, readAll(t, resp))
	assert.Nil(t, peer.LastRequest())
}

// E8: unparsable body with valid auth -> 400.
func TestE8UnparsableBody(t *testing.T) {
	server, closeFn := newTestServer(t, nil)
	defer closeFn()

	resp := post(t, server.URL, "secret", []byte("not a packet"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Error parsing ILP Prepare", string(readAll(t, resp)))
}

func TestNonPostNeverReachesAuthFilter(t *testing.T) {
	server, closeFn := newTestServer(t, nil)
	defer closeFn()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
