package api

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ilp-connector/relay/spsp"
)

type payRequest struct {
	Receiver     string `json:"receiver"`
	SourceAmount uint64 `json:"source_amount"`
}

type payResponse struct {
	AmountDelivered uint64 `json:"amount_delivered"`
}

func (a *API) handlePay(w http.ResponseWriter, r *http.Request) {
	caller, _ := accountFromContext(r)

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	delivered, err := spsp.Pay(r.Context(), a.Relay, caller, req.Receiver, req.SourceAmount)
	if err != nil {
		a.logf("payment to %s failed: %v", req.Receiver, err)
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, payResponse{AmountDelivered: delivered})
}

func (a *API) handleSPSP(w http.ResponseWriter, r *http.Request) {
	a.writeSPSPResponse(w, mux.Vars(r)["id"])
}

// handleWellKnownPay serves the same SPSP response as GET /spsp/{id} for
// the account named by the "account" query parameter, the path a bare
// payment pointer (no "$user" segment) resolves to.
func (a *API) handleWellKnownPay(w http.ResponseWriter, r *http.Request) {
	a.writeSPSPResponse(w, r.URL.Query().Get("account"))
}

func (a *API) writeSPSPResponse(w http.ResponseWriter, accountID string) {
	account, err := a.Accounts.Account(accountID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/spsp4+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"destination_account": account.ILPAddress,
		"shared_secret":       base64.StdEncoding.EncodeToString(secret),
	})
}
