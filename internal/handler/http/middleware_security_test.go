// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestWithSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	withSecurityHeaders(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, header := range securityHeaders {
		assert.Equal(t, header[1], rec.Header().Get(header[0]), header[0])
	}
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestWithCORS(t *testing.T) {
	settings := testSettings()
	settings.App.CORSAllowedOrigins = []string{"https://shop.finnovate.africa"}
	h := NewHandler(Dependencies{}, settings, logger.Nop())

	var called bool
	handler := h.withCORS()(okHandler(&called))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/api/product", nil)
		req.Header.Set("Origin", "https://shop.finnovate.africa")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://shop.finnovate.africa", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers")), strings.ToLower(traceIDHeader))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/api/product", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/v1/api/cart", nil)
		req.Header.Set("Origin", "https://shop.finnovate.africa")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
	})
}
