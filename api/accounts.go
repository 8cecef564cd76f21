package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilp-connector/relay/routing"
	"github.com/ilp-connector/relay/store"
)

func (a *API) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var body store.Account
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	created, err := a.Accounts.CreateAccount(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if a.Table != nil && a.AccountToRoute != nil {
		a.installRoute(a.AccountToRoute(created))
	}

	a.logf("created account %s (%s)", created.ID, created.ILPAddress)
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	caller, _ := accountFromContext(r)
	if caller.IsAdmin {
		all, err := a.Accounts.Accounts()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, all)
		return
	}
	writeJSON(w, http.StatusOK, []store.Account{caller})
}

func (a *API) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	caller, _ := accountFromContext(r)
	if !caller.IsAdmin && caller.ID != id {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	account, err := a.Accounts.Account(id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (a *API) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	caller, _ := accountFromContext(r)
	if !caller.IsAdmin && caller.ID != id {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	balance, err := a.Balances.Balance(id)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": strconv.FormatInt(balance, 10)})
}

// installRoute upserts a single route by TargetPrefix and delegates to
// the single atomic-swap routing table path shared with config-loaded
// static routes (SPEC_FULL.md "Admin API").
func (a *API) installRoute(route routing.Route) {
	routes := a.Table.Routes()
	for i, existing := range routes {
		if string(existing.TargetPrefix) == string(route.TargetPrefix) {
			routes[i] = route
			a.Table.SetRoutes(routes)
			return
		}
	}
	routes = append(routes, route)
	a.Table.SetRoutes(routes)
}
