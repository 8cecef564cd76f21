// Package api implements the node-management HTTP API, grounded on
// interledger-api::NodeApi. It is wired with github.com/gorilla/mux for
// path-variable routing (account IDs, route prefixes, SPSP IDs).
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ilp-connector/relay/logging"
	"github.com/ilp-connector/relay/relay"
	"github.com/ilp-connector/relay/routing"
	"github.com/ilp-connector/relay/store"
)

// API serves the admin endpoints listed in SPEC_FULL.md. It does not
// implement relay.Service itself; it manages the accounts, rates, and
// routes that back a running relay.Relay, and calls into one (Relay)
// to originate outbound payments for POST /pay.
type API struct {
	Accounts store.AccountStore
	Balances store.BalanceStore
	Rates    store.RateStore
	Table    *routing.Table
	Relay    relay.Service
	Log      logging.Logger

	// AccountToRoute turns a stored account into the routing entry the
	// admin API installs for it, keyed by the account's ILP address
	// prefix. Static route mutation always goes through the same
	// routing.Table.SetRoutes atomic swap used at startup.
	AccountToRoute func(store.Account) routing.Route
}

// NewRouter builds the *mux.Router serving every admin endpoint.
func NewRouter(a *API) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", a.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/accounts", a.requireAdmin(a.handleCreateAccount)).Methods(http.MethodPost)
	r.HandleFunc("/accounts", a.requireToken(a.handleListAccounts)).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}", a.requireToken(a.handleGetAccount)).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/balance", a.requireToken(a.handleGetBalance)).Methods(http.MethodGet)
	r.HandleFunc("/rates", a.requireAdmin(a.handlePutRates)).Methods(http.MethodPut)
	r.HandleFunc("/routes", a.handleGetRoutes).Methods(http.MethodGet)
	r.HandleFunc("/routes/static", a.requireAdmin(a.handlePutStaticRoutes)).Methods(http.MethodPut)
	r.HandleFunc("/routes/static/{prefix}", a.requireAdmin(a.handlePutStaticRoute)).Methods(http.MethodPut)
	r.HandleFunc("/pay", a.requireToken(a.handlePay)).Methods(http.MethodPost)
	r.HandleFunc("/spsp/{id}", a.handleSPSP).Methods(http.MethodGet)
	r.HandleFunc("/.well-known/pay", a.handleWellKnownPay).Methods(http.MethodGet)
	return r
}

func (a *API) logf(format string, args ...interface{}) {
	if a.Log != nil {
		a.Log.Infof(format, args...)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Ready"})
}
