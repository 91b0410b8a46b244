package main

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jpalmerr/geckopush/internal/pushtest"
)

// StartMockReceiver serves a fake push API on addr and returns the receiver
// and the base URL to push to. The listener is bound before it returns, so
// pushes can start immediately.
func StartMockReceiver(addr string, logger *slog.Logger) (*pushtest.Receiver, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", err
	}

	rcv := pushtest.NewReceiver(pushtest.WithLogger(logger))
	srv := &http.Server{
		Handler:           rcv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mock receiver stopped", "error", err)
		}
	}()

	return rcv, "http://" + ln.Addr().String() + pushtest.SendPath, nil
}
