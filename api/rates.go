package api

import (
	"encoding/json"
	"net/http"
)

func (a *API) handlePutRates(w http.ResponseWriter, r *http.Request) {
	var rates map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&rates); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	a.Rates.SetRates(rates)
	a.logf("rates updated for %d asset codes", len(rates))
	w.WriteHeader(http.StatusNoContent)
}
