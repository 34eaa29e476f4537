// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
)

// tokenCookie is the cookie carrying the session token.
const tokenCookie = "token"

// withAuthContext resolves the caller's principal from a bearer token or
// the token cookie and attaches it to the request context.
//
// The stage never rejects a request: missing, malformed or expired
// credentials leave the request anonymous, and the role gate of the group
// decides whether that is acceptable.
func (h *Handler) withAuthContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signKey := h.settings.App.TokenSignKey
		if signKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, source := h.credentials(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, err := utils.ParsePrincipalToken(tokenString, signKey, h.settings.App.TokenIssuer)
		if err != nil {
			logger.FromRequest(r).Debug().
				Err(err).
				Str("source", source).
				Msg("ignoring invalid credentials")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(r.Context(), p)))
	})
}

// credentials returns the raw token and where it came from. The
// Authorization header wins over the cookie.
func (h *Handler) credentials(r *http.Request) (token, source string) {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token, "header"
		}
		logger.FromRequest(r).Debug().Msg("malformed authorization header")
	}

	cookie, err := r.Cookie(tokenCookie)
	if err != nil || cookie.Value == "" {
		return "", ""
	}
	raw := cookie.Value
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	secret := h.settings.App.CookieSecret
	if secret == "" {
		return raw, "cookie"
	}

	// with a secret configured only signed cookies are trusted
	if !strings.HasPrefix(raw, "s:") {
		return "", ""
	}
	value, ok := utils.UnsignCookie(raw, secret)
	if !ok {
		logger.FromRequest(r).Debug().Msg("cookie signature mismatch")
		return "", ""
	}
	return value, "signed-cookie"
}
