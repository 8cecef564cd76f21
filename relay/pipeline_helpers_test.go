package relay_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"
)

const timeMillis = time.Millisecond

func newBodyReader(body []byte) io.Reader {
	return bytes.NewReader(body)
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return body
}
