package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/api"
	"github.com/vovakirdan/gridpath/internal/api/layouts"
	"github.com/vovakirdan/gridpath/internal/api/solve"
)

var (
	flagHTTPAddr string
	flagBaseURL  string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP solve API",
	Long: `Serve the path-finding engine over HTTP.

Routes:
  GET  /healthz              - Liveness check
  POST <base>/v1/solve       - Solve inline rows or a known layout
  GET  <base>/v1/runs        - Recorded runs (?layout=<id>&limit=<n>)
  GET  <base>/v1/layouts     - Available layouts
  GET  <base>/v1/layouts/:id - One layout with its best recorded cost

Examples:
  gridpath api
  gridpath api --addr :9090
  curl -d '{"rows":["S#.",".#.","..T"]}' localhost:8080/api/v1/solve`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (overrides config)")
	apiCmd.Flags().StringVar(&flagBaseURL, "base-url", "/api", "Prefix for the versioned routes")
}

func runAPI(_ *cobra.Command, _ []string) {
	addr := appConfig.HTTP.Address
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}
	if addr == "" {
		addr = ":8080"
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	apiLogger := logger.WithPrefix("gridpath-api")
	cat := newCatalog(store)
	router := api.NewRouter(api.Config{
		Addr:    addr,
		BaseURL: flagBaseURL,
		GinMode: appConfig.HTTP.GinMode,
		Logger:  apiLogger,
		Controllers: []api.Controller{
			solve.NewController(cat, apiLogger),
			layouts.NewController(cat),
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := router.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
