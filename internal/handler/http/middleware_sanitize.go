// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
)

// withSanitize strips operator-injection keys, those starting with '$' or
// containing '.', from the parsed JSON body, the query string, parsed forms
// and header names.
func withSanitize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		removed := 0

		if body, ok := r.Context().Value(bodyCtxKey{}).(*jsonBody); ok && body.value != nil {
			n := sanitizeValue(body.value)
			if n > 0 {
				raw, err := json.Marshal(body.value)
				if err != nil {
					fault.Forward(w, r, fault.Internal(err))
					return
				}
				r = withRawBody(r, raw)
				removed += n
			}
		}

		if r.URL.RawQuery != "" {
			query := r.URL.Query()
			if n := sanitizeValues(query); n > 0 {
				r.URL.RawQuery = query.Encode()
				removed += n
			}
		}

		removed += sanitizeValues(r.Form)
		removed += sanitizeValues(r.PostForm)
		if r.MultipartForm != nil {
			removed += sanitizeValues(r.MultipartForm.Value)
			for key := range r.MultipartForm.File {
				if forbiddenKey(key) {
					delete(r.MultipartForm.File, key)
					removed++
				}
			}
		}

		for key := range r.Header {
			if forbiddenKey(key) {
				delete(r.Header, key)
				removed++
			}
		}

		if removed > 0 {
			logger.FromRequest(r).Warn().
				Int("removed_keys", removed).
				Str("uri", r.URL.Path).
				Msg("request sanitized")
		}

		next.ServeHTTP(w, r)
	})
}

func forbiddenKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}

// sanitizeValue removes forbidden keys from JSON objects nested anywhere in
// v and reports how many were removed.
func sanitizeValue(v any) int {
	removed := 0
	switch t := v.(type) {
	case map[string]any:
		for key, child := range t {
			if forbiddenKey(key) {
				delete(t, key)
				removed++
				continue
			}
			removed += sanitizeValue(child)
		}
	case []any:
		for _, child := range t {
			removed += sanitizeValue(child)
		}
	}
	return removed
}

func sanitizeValues[V any](values map[string]V) int {
	removed := 0
	for key := range values {
		if forbiddenKey(key) {
			delete(values, key)
			removed++
		}
	}
	return removed
}

