// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/mock"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/ratelimit"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/routes"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/store"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInit_Root(t *testing.T) {
	router := newTestRouter(t, Dependencies{}, testSettings())

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hi", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestInit_UnmatchedRoutesAnswer501(t *testing.T) {
	deps := Dependencies{Groups: []routes.Group{echoGroup("cart")}}
	router := newTestRouter(t, deps, testSettings())

	tests := []struct {
		name   string
		method string
		target string
	}{
		{name: "unknown path", method: http.MethodGet, target: "/nope"},
		{name: "unknown path with query", method: http.MethodGet, target: "/v1/api/unknown?page=2"},
		{name: "method mismatch on root", method: http.MethodPost, target: "/"},
		{name: "unknown path inside group", method: http.MethodGet, target: "/v1/api/cart/missing"},
		{name: "method mismatch inside group", method: http.MethodDelete, target: "/v1/api/cart/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, http.StatusNotImplemented, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, "Can not find "+tt.target+" with "+tt.method+" on this server", body.Message)
			assert.Contains(t, body.Message, tt.method)
		})
	}
}

func TestInit_MountsEachGroupOnce(t *testing.T) {
	deps := Dependencies{Groups: []routes.Group{echoGroup("cart"), echoGroup("order"), echoGroup("cart")}}

	_, err := NewHandler(deps, testSettings(), logger.Nop()).Init()
	assert.ErrorIs(t, err, ErrDuplicateGroup)

	_, err = NewHandler(Dependencies{Groups: []routes.Group{{Name: "cart"}}}, testSettings(), logger.Nop()).Init()
	assert.ErrorIs(t, err, ErrInvalidGroup)
}

func TestInit_DefaultGroups(t *testing.T) {
	router := newTestRouter(t, Dependencies{Groups: routes.Default()}, testSettings())

	for _, name := range routes.Names() {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/v1/api/"+name, nil))
		assert.Equal(t, http.StatusOK, rec.Code, name)
	}
}

func TestInit_AuthMe(t *testing.T) {
	router := newTestRouter(t, Dependencies{Groups: routes.Default()}, testSettings())

	req := httptest.NewRequest(http.MethodGet, "/v1/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.User{ID: "u-1", Role: "customer"}))
	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.PrincipalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, models.PrincipalResponse{Kind: "user", ID: "u-1", Role: "customer"}, me)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/v1/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "fail", decodeError(t, rec).Status)
}

func TestInit_RoleGate(t *testing.T) {
	deps := Dependencies{Groups: []routes.Group{
		echoGroup("vendor", "admin", "vendor"),
		echoGroup("logistics", models.RoleRider),
	}}
	router := newTestRouter(t, deps, testSettings())

	tests := []struct {
		name       string
		target     string
		principal  models.Principal
		wantStatus int
	}{
		{name: "anonymous", target: "/v1/api/vendor", wantStatus: http.StatusForbidden},
		{name: "admin user", target: "/v1/api/vendor", principal: models.User{ID: "1", Role: "admin"}, wantStatus: http.StatusOK},
		{name: "customer user", target: "/v1/api/vendor", principal: models.User{ID: "2", Role: "customer"}, wantStatus: http.StatusForbidden},
		{name: "approved rider", target: "/v1/api/logistics", principal: models.Rider{ID: "3", Approved: true}, wantStatus: http.StatusOK},
		{name: "unapproved rider", target: "/v1/api/logistics", principal: models.Rider{ID: "4"}, wantStatus: http.StatusForbidden},
		{name: "approved rider on user group", target: "/v1/api/vendor", principal: models.Rider{ID: "5", Approved: true}, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.principal != nil {
				req.Header.Set("Authorization", "Bearer "+tokenFor(t, tt.principal))
			}

			rec := serve(router, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				body := decodeError(t, rec)
				assert.Equal(t, "fail", body.Status)
				assert.Equal(t, fault.ForbiddenMessage, body.Message)
			}
		})
	}
}

func TestInit_RateLimitedGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockLimiter(ctrl)

	deps := Dependencies{
		Groups:  []routes.Group{echoGroup("product"), echoGroup("cart")},
		Limiter: limiter,
	}
	router := newTestRouter(t, deps, testSettings())

	gomock.InOrder(
		limiter.EXPECT().Allow(gomock.Any(), "203.0.113.7").Return(ratelimit.Decision{
			Allowed: true, Limit: 2, Remaining: 1, ResetAt: time.Now().Add(time.Minute),
		}, nil),
		limiter.EXPECT().Allow(gomock.Any(), "203.0.113.7").Return(ratelimit.Decision{
			Allowed: false, Limit: 2, Remaining: 0, ResetAt: time.Now().Add(time.Minute),
		}, nil),
	)

	newReq := func(target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		return req
	}

	rec := serve(router, newReq("/v1/api/product"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("RateLimit-Remaining"))

	rec = serve(router, newReq("/v1/api/product"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, tooManyRequestsMessage, decodeError(t, rec).Message)

	// not listed, the limiter must not be consulted
	rec = serve(router, newReq("/v1/api/cart"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("RateLimit-Limit"))
}

func TestInit_PanicInGroupIsFunnelled(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/", func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	})
	deps := Dependencies{Groups: []routes.Group{{Name: "order", Handler: r}}}
	router := newTestRouter(t, deps, testSettings())

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/v1/api/order", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, fault.InternalMessage, body.Message)
}

func TestInit_HandlerErrorIsFunnelled(t *testing.T) {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/", fault.HandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return store.ErrStoreUnavailable
	}))
	r.Method(http.MethodGet, "/plain", fault.HandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return errors.New("pq: relation does not exist")
	}))
	deps := Dependencies{Groups: []routes.Group{{Name: "payment", Handler: r}}}
	router := newTestRouter(t, deps, testSettings())

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/v1/api/payment", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/v1/api/payment/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, fault.InternalMessage, decodeError(t, rec).Message)
}

func TestInit_Compression(t *testing.T) {
	router := newTestRouter(t, Dependencies{}, testSettings())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(router, req)

	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(body))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("x-no-compression", "1")
	rec = serve(router, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Hi", rec.Body.String())
}

func TestInit_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, Dependencies{}, testSettings())

	req := httptest.NewRequest(http.MethodOptions, "/v1/api/product", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := serve(router, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestInit_MalformedBodyKeepsCORSAndSecurityHeaders(t *testing.T) {
	router := newTestRouter(t, Dependencies{}, testSettings())

	req := httptest.NewRequest(http.MethodPost, "/v1/api/product", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://shop.example")
	rec := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, invalidJSONMessage, decodeError(t, rec).Message)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestInit_Health(t *testing.T) {
	var readyErr error
	deps := Dependencies{Readiness: readinessFunc(func(context.Context) error { return readyErr })}
	router := newTestRouter(t, deps, testSettings())

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	readyErr = store.ErrStoreUnavailable
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","error":"store unavailable"}`, rec.Body.String())
}

func TestInit_VersionAndMetrics(t *testing.T) {
	deps := Dependencies{BuildInfo: models.NewAppBuildInfo("1.2.3", "", "abc123")}
	router := newTestRouter(t, deps, testSettings())

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.2.3","date":"N/A","commit":"abc123"}`, rec.Body.String())

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/version",status="200"} 1`)
}
