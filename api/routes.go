package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ilp-connector/relay/routing"
)

// handleGetRoutes returns a prefix -> endpoint snapshot of the routing
// table. routing.Route carries no account identity (the relay's
// forwarding path never needs one, only a prefix and a next hop), so the
// snapshot keys on the next hop's endpoint rather than an account ID.
func (a *API) handleGetRoutes(w http.ResponseWriter, r *http.Request) {
	snapshot := map[string]string{}
	for _, route := range a.Table.Routes() {
		snapshot[string(route.TargetPrefix)] = route.NextHop.Endpoint
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type routeEntry struct {
	Prefix   string `json:"prefix"`
	Endpoint string `json:"endpoint"`
	Auth     string `json:"auth,omitempty"`
}

func (e routeEntry) toRoute() routing.Route {
	return routing.Route{
		TargetPrefix: []byte(e.Prefix),
		NextHop:      routing.NextHop{Endpoint: e.Endpoint, Auth: e.Auth},
	}
}

func (a *API) handlePutStaticRoutes(w http.ResponseWriter, r *http.Request) {
	var entries []routeEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	routes := make([]routing.Route, len(entries))
	for i, e := range entries {
		routes[i] = e.toRoute()
	}
	a.Table.SetRoutes(routes)
	a.logf("replaced static routing table with %d entries", len(routes))
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handlePutStaticRoute(w http.ResponseWriter, r *http.Request) {
	prefix := mux.Vars(r)["prefix"]

	var entry routeEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	entry.Prefix = prefix

	a.installRoute(entry.toRoute())
	a.logf("upserted static route for prefix %q", prefix)
	w.WriteHeader(http.StatusNoContent)
}
