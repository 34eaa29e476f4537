// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package rbac

import (
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
)

// RequireRoles returns the gate as a pipeline stage. The allowed set is
// fixed when the stage is built.
//
// The stage reads the principal placed in the context by the authentication
// stage and forwards a Forbidden fault to the error funnel on denial; it never
// writes a response itself.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := NewRoles(roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := utils.PrincipalFromContext(r.Context())
			if err := Authorize(p, allowed); err != nil {
				logger.FromRequest(r).Warn().
					Strs("allowed_roles", roles).
					Str("path", r.URL.Path).
					Msg("role authorization denied")
				fault.Forward(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
