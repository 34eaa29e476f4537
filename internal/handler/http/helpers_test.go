// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/routes"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "finnovate-test"
	testSecret  = "test-cookie-secret"
)

func testSettings() Settings {
	return Settings{
		App: config.App{
			CookieSecret:       testSecret,
			TokenSignKey:       testSignKey,
			TokenIssuer:        testIssuer,
			CORSAllowedOrigins: []string{"*"},
		},
		MaxBodyBytes: 1 << 20,
		RateLimit: config.RateLimit{
			Groups: []string{"product", "review"},
		},
	}
}

// newTestHandler creates a Handler with a nop logger and no collaborators.
func newTestHandler() *Handler {
	return NewHandler(Dependencies{}, testSettings(), logger.Nop())
}

func newTestRouter(t *testing.T, deps Dependencies, settings Settings) *chi.Mux {
	t.Helper()
	router, err := NewHandler(deps, settings, logger.Nop()).Init()
	require.NoError(t, err)
	return router
}

// echoGroup answers GET / with the group name.
func echoGroup(name string, roles ...string) routes.Group {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(name))
	})
	return routes.Group{Name: name, Handler: r, Roles: roles}
}

func tokenFor(t *testing.T, p models.Principal) string {
	t.Helper()
	token, err := utils.GeneratePrincipalToken(testIssuer, p, time.Hour, testSignKey)
	require.NoError(t, err)
	return token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

// recordingSink captures forwarded errors and answers with a bare status.
type recordingSink struct {
	errs []error
}

func (s *recordingSink) ServeError(w http.ResponseWriter, _ *http.Request, err error) {
	s.errs = append(s.errs, err)
	w.WriteHeader(asFault(err).Code())
}

func withRecordingSink(r *http.Request) (*http.Request, *recordingSink) {
	sink := &recordingSink{}
	return r.WithContext(fault.WithSink(r.Context(), sink)), sink
}

type readinessFunc func(ctx context.Context) error

func (f readinessFunc) Ready(ctx context.Context) error { return f(ctx) }
