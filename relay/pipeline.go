package relay

import (
	"net/http"

	"github.com/ilp-connector/relay/logging"
)

// NewHandler composes the full inbound pipeline (spec §2): method check,
// auth-token check, then the Receiver wrapping svc. This is the single
// place the chain is assembled; cmd/ilprelay builds its relay listener's
// handler through this function.
func NewHandler(tokens []string, svc Service, log logging.Logger) http.Handler {
	receiver := Receiver{Next: svc, Log: log}
	authed := NewAuthTokenFilter(tokens, receiver)
	return MethodFilter{Method: http.MethodPost, Next: authed}
}
