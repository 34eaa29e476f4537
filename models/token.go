// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds carried in the "kind" claim of a [PrincipalClaims] token.
const (
	PrincipalKindUser  = "user"
	PrincipalKindRider = "rider"
)

// PrincipalClaims is the JWT claim set issued for authenticated accounts.
//
// The "sub" claim holds the account identifier; Kind selects which
// [Principal] variant the token describes. Role is only meaningful for
// users and Approved only for riders.
type PrincipalClaims struct {
	jwt.RegisteredClaims

	Kind     string `json:"kind"`
	Role     string `json:"role,omitempty"`
	Approved bool   `json:"approved,omitempty"`
}

// Principal converts the claims into the matching [Principal] variant.
//
// It returns [ErrUnknownPrincipalKind] when Kind names neither a user nor a
// rider, so that a token with an unexpected shape never yields an identity.
func (c *PrincipalClaims) Principal() (Principal, error) {
	switch c.Kind {
	case PrincipalKindUser:
		return User{ID: c.Subject, Role: c.Role}, nil
	case PrincipalKindRider:
		return Rider{ID: c.Subject, Approved: c.Approved}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrincipalKind, c.Kind)
	}
}

// ClaimsFor builds the claim set describing p. Unknown principal values
// produce an error.
func ClaimsFor(p Principal) (*PrincipalClaims, error) {
	switch v := p.(type) {
	case User:
		return &PrincipalClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: v.ID},
			Kind:             PrincipalKindUser,
			Role:             v.Role,
		}, nil
	case Rider:
		return &PrincipalClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: v.ID},
			Kind:             PrincipalKindRider,
			Approved:         v.Approved,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownPrincipalKind, p)
	}
}
