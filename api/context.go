package api

import (
	"context"
	"net/http"

	"github.com/ilp-connector/relay/store"
)

type contextKey int

const accountContextKey contextKey = iota

func withAccount(r *http.Request, a store.Account) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), accountContextKey, a))
}

func accountFromContext(r *http.Request) (store.Account, bool) {
	a, ok := r.Context().Value(accountContextKey).(store.Account)
	return a, ok
}
