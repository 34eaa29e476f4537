// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, log *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.Address(),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		logger: log,
	}
}

// serve blocks until the server is shut down or closed. A nil return means
// the stop was requested.
func (h *httpServer) serve(ln net.Listener) error {
	h.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shutdown stops accepting connections and waits for in-flight requests.
func (h *httpServer) shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// close drops every connection without draining.
func (h *httpServer) close() error {
	return h.server.Close()
}
