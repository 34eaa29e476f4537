// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, signed cookies,
// HTTP response writing, JWT token generation and validation, and other
// common operations.
package utils

import (
	"context"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key under which the authenticated principal is
// stored in the request context. Use [WithPrincipal] and
// [PrincipalFromContext] rather than the key directly.
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying p. A nil principal leaves ctx
// unchanged so the request stays anonymous.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, PrincipalCtxKey, p)
}

// PrincipalFromContext returns the principal attached to ctx.
//
// Returns ok == false when the request is anonymous. The accessor only reads
// what the authentication stage stored; it performs no lookups and makes no
// authorization decision.
//
// Example usage:
//
//	p, ok := utils.PrincipalFromContext(r.Context())
//	if !ok {
//	    // anonymous request
//	}
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(models.Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
