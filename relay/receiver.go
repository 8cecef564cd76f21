package relay

import (
	"io"
	"net/http"
	"strconv"

	"github.com/ilp-connector/relay/ilp"
	"github.com/ilp-connector/relay/logging"
)

const octetStream = "application/octet-stream"

// Receiver buffers the request body, parses it as an ILP Prepare, invokes
// the inner Service, and serializes the Fulfill or Reject back onto the
// HTTP response (spec §4.3).
//
// A Prepare decode failure never reaches Next: the receiver fails fast
// with 400 before the inner service is invoked (spec invariant 7's sibling
// for malformed bodies — the contract is the same "never call through on
// a bad request" shape as the auth filter).
type Receiver struct {
	Next Service
	Log  logging.Logger
}

func (rc Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if p := recover(); p != nil {
			rc.logf("Receiver: inner service panicked: %v", p)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		rc.logf("Receiver: failed to read request body: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	decoded, err := ilp.Decode(body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Error parsing ILP Prepare"))
		return
	}

	prepare, ok := decoded.(*ilp.Prepare)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Error parsing ILP Prepare"))
		return
	}

	fulfill, reject := rc.Next.Send(r.Context(), prepare)

	var respBody []byte
	if reject != nil {
		respBody, err = ilp.Encode(reject)
	} else {
		respBody, err = ilp.Encode(fulfill)
	}
	if err != nil {
		rc.logf("Receiver: failed to encode response packet: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", octetStream)
	w.Header().Set("Content-Length", strconv.Itoa(len(respBody)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(respBody)
}

func (rc Receiver) logf(format string, args ...interface{}) {
	if rc.Log != nil {
		rc.Log.Errorf(format, args...)
	}
}
