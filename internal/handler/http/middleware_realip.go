// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"net"
	"net/http"
	"strings"
)

const forwardedForHeader = "X-Forwarded-For"

// withRealIP resolves the client address behind exactly one trusted proxy
// hop. The address is the rightmost X-Forwarded-For entry, which is the one
// appended by that proxy; entries to its left are client supplied. Without
// the header, or when proxy headers are disabled, the TCP peer is kept.
// X-Real-IP and True-Client-IP are never consulted.
func (h *Handler) withRealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.settings.App.DisableProxyHeaders {
			if ip := lastForwardedFor(r.Header.Values(forwardedForHeader)); ip != "" {
				r.RemoteAddr = ip
			}
		}
		next.ServeHTTP(w, r)
	})
}

// lastForwardedFor returns the rightmost entry across all header lines, or
// "" when it is not an IP address.
func lastForwardedFor(values []string) string {
	if len(values) == 0 {
		return ""
	}
	last := values[len(values)-1]
	if i := strings.LastIndexByte(last, ','); i >= 0 {
		last = last[i+1:]
	}
	last = strings.TrimSpace(last)

	if net.ParseIP(last) == nil {
		return ""
	}
	return last
}
