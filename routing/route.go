package routing

// NextHop is the HTTP endpoint (and optional outbound credential) a
// matched route forwards to (spec §3).
type NextHop struct {
	// Endpoint is an absolute HTTP(S) URL.
	Endpoint string
	// Auth, if non-empty, is placed verbatim into the outgoing
	// Authorization header.
	Auth string
}

// Route pairs an ILP address prefix with the next hop packets destined
// for that prefix should be forwarded to.
type Route struct {
	TargetPrefix []byte
	NextHop      NextHop
}
