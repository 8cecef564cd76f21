package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilp-connector/relay/api"
	"github.com/ilp-connector/relay/ilp"
	"github.com/ilp-connector/relay/routing"
	"github.com/ilp-connector/relay/store"
)

type noopService struct{}

func (noopService) Send(ctx context.Context, prepare *ilp.Prepare) (*ilp.Fulfill, *ilp.Reject) {
	return &ilp.Fulfill{}, nil
}

func newTestAPI(t *testing.T) (*api.API, *httptest.Server) {
	t.Helper()
	a := &api.API{
		Accounts: store.NewMemoryAccountStore(),
		Balances: store.NewMemoryBalanceStore(),
		Rates:    store.NewMemoryRateStore(),
		Table:    routing.NewTable(nil),
		Relay:    noopService{},
		AccountToRoute: func(acct store.Account) routing.Route {
			return routing.Route{
				TargetPrefix: []byte(acct.ILPAddress),
				NextHop:      routing.NextHop{Endpoint: acct.HTTPEndpoint, Auth: acct.HTTPOutgoingAuthToken},
			}
		},
	}
	server := httptest.NewServer(api.NewRouter(a))
	t.Cleanup(server.Close)
	return a, server
}

func doJSON(t *testing.T, method, url, auth string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestStatusEndpoint(t *testing.T) {
	_, server := newTestAPI(t)
	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Ready", body["status"])
}

func TestCreateAccountRequiresAdmin(t *testing.T) {
	a, server := newTestAPI(t)
	_, _ = a.Accounts.CreateAccount(store.Account{HTTPIncomingAuthToken: "notadmin"})

	resp := doJSON(t, http.MethodPost, server.URL+"/accounts", "notadmin", store.Account{ILPAddress: "example.bob"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAccountAsAdminInstallsRoute(t *testing.T) {
	a, server := newTestAPI(t)
	_, _ = a.Accounts.CreateAccount(store.Account{HTTPIncomingAuthToken: "admin-token", IsAdmin: true})

	resp := doJSON(t, http.MethodPost, server.URL+"/accounts", "admin-token", store.Account{
		ILPAddress:   "example.bob",
		HTTPEndpoint: "http://bob/ilp",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	route, ok := a.Table.Resolve([]byte("example.bob.123"))
	require.True(t, ok)
	assert.Equal(t, "http://bob/ilp", route.NextHop.Endpoint)
}

func TestGetOwnAccountVsOthers(t *testing.T) {
	a, server := newTestAPI(t)
	bob, _ := a.Accounts.CreateAccount(store.Account{HTTPIncomingAuthToken: "bob-token", ILPAddress: "example.bob"})
	alice, _ := a.Accounts.CreateAccount(store.Account{HTTPIncomingAuthToken: "alice-token", ILPAddress: "example.alice"})

	resp := doJSON(t, http.MethodGet, server.URL+"/accounts/"+bob.ID, "bob-token", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := doJSON(t, http.MethodGet, server.URL+"/accounts/"+alice.ID, "bob-token", nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestGetBalance(t *testing.T) {
	a, server := newTestAPI(t)
	bob, _ := a.Accounts.CreateAccount(store.Account{HTTPIncomingAuthToken: "bob-token"})
	_, _ = a.Balances.Adjust(bob.ID, 42)

	resp := doJSON(t, http.MethodGet, server.URL+"/accounts/"+bob.ID+"/balance", "bob-token", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "42", body["balance"])
}

func TestPutStaticRoutesAsAdminReplacesTable(t *testing.T) {
	a, server := newTestAPI(t)
	_, _ = a.Accounts.CreateAccount(store.Account{HTTPIncomingAuthToken: "admin-token", IsAdmin: true})

	routes := []map[string]string{{"prefix": "", "endpoint": "http://peer/ilp"}}
	resp := doJSON(t, http.MethodPut, server.URL+"/routes/static", "admin-token", routes)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, ok := a.Table.Resolve([]byte("anything"))
	assert.True(t, ok)
}

func TestSPSPEndpoint(t *testing.T) {
	a, server := newTestAPI(t)
	bob, _ := a.Accounts.CreateAccount(store.Account{ILPAddress: "example.bob"})

	resp, err := http.Get(server.URL + "/spsp/" + bob.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "example.bob", body["destination_account"])
	assert.NotEmpty(t, body["shared_secret"])
}
