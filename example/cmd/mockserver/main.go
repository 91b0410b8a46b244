// Standalone fake push API for trying the CLI without a Geckoboard account.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/geckopush push -c example/dashboard.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jpalmerr/geckopush/internal/pushtest"
)

func main() {
	addr := flag.String("addr", ":9999", "listen address")
	apiKey := flag.String("api-key", "", "reject pushes carrying any other API key")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	fmt.Printf("Mock push API listening on %s%s<widget key>\n", *addr, pushtest.SendPath)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	opts := []pushtest.Option{pushtest.WithLogger(logger)}
	if *apiKey != "" {
		opts = append(opts, pushtest.WithAPIKey(*apiKey))
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           pushtest.NewReceiver(opts...),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
