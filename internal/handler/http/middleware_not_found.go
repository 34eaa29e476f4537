// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
)

// routeNotFound answers every unmatched method and path, including those
// inside mounted groups, with a 501 fault naming both.
//
// It is registered as both the NotFound and the MethodNotAllowed handler of
// the router, so a path that exists under another method is reported the
// same way as an unknown one.
func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	f := fault.RouteNotFound(r.Method, r.URL.RequestURI())
	h.requestLogger(r).Warn().Msg(f.Message)
	fault.Forward(w, r, f)
}
