/*
This command provides an executable ILP-over-HTTP relay connector.

For the list of command line options, run:

	ilprelay -help
*/
package main

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ilp-connector/relay/api"
	"github.com/ilp-connector/relay/config"
	"github.com/ilp-connector/relay/logging"
	"github.com/ilp-connector/relay/metrics"
	"github.com/ilp-connector/relay/relay"
	"github.com/ilp-connector/relay/routing"
	"github.com/ilp-connector/relay/store"
)

func main() {
	cfg := config.NewConfig()
	if err := cfg.Parse(); err != nil {
		log.Fatalf("Error processing config: %s", err)
	}

	logger := logging.New(cfg.ApplicationLogLevel())
	logger.SetLevel(cfg.ApplicationLogLevel())

	m := metrics.New()
	table := routing.NewTable(cfg.ToRoutes())
	client := relay.Client{Address: cfg.ILPAddress, MaxTimeout: cfg.MaxTimeout}
	r := relay.NewRelay(cfg.ILPAddress, table, client)
	r.OnRouteMiss = m.IncRouteMisses
	r.OnForward = m.IncRequests

	handler := relay.NewHandler(cfg.AuthTokens, r, logger)

	accounts := store.NewMemoryAccountStore()
	balances := store.NewMemoryBalanceStore()
	rates := store.NewMemoryRateStore()

	adminAPI := &api.API{
		Accounts: accounts,
		Balances: balances,
		Rates:    rates,
		Table:    table,
		Relay:    r,
		Log:      logger,
		AccountToRoute: func(a store.Account) routing.Route {
			return routing.Route{
				TargetPrefix: []byte(a.ILPAddress),
				NextHop:      routing.NextHop{Endpoint: a.HTTPEndpoint, Auth: a.HTTPOutgoingAuthToken},
			}
		},
	}

	go func() {
		logger.Infof("ilp-over-http relay listening on %s", cfg.BindAddress)
		if err := http.ListenAndServe(cfg.BindAddress, handler); err != nil {
			log.Fatalf("relay listener failed: %s", err)
		}
	}()

	go func() {
		logger.Infof("admin API listening on %s", cfg.AdminBindAddress)
		if err := http.ListenAndServe(cfg.AdminBindAddress, api.NewRouter(adminAPI)); err != nil {
			log.Fatalf("admin API listener failed: %s", err)
		}
	}()

	logger.Infof("metrics listening on %s", cfg.MetricsBindAddress)
	if err := http.ListenAndServe(cfg.MetricsBindAddress, m.Handler()); err != nil {
		log.Fatalf("metrics listener failed: %s", err)
	}
}
