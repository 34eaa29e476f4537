// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

// Package rbac implements the role authorization gate.
//
// [Authorize] is a pure decision over the two principal variants; it never
// inspects a principal by shape, so a value that is neither a user nor a
// rider is always denied.
package rbac

import (
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
)

// Roles is a set of allowed role tags. Build it with [NewRoles].
type Roles map[string]struct{}

// NewRoles normalises one or more role tags into a set.
func NewRoles(roles ...string) Roles {
	set := make(Roles, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether role is in the set.
func (r Roles) Contains(role string) bool {
	_, ok := r[role]
	return ok
}

// Authorize decides whether p may proceed given the allowed roles.
//
// It returns nil when authorized and a 403 [fault.Fault] otherwise:
//   - no principal: forbidden;
//   - a user whose role is allowed: authorized;
//   - an approved rider when "rider" is allowed: authorized;
//   - anything else, including unapproved riders and unknown principal
//     values: forbidden.
func Authorize(p models.Principal, allowed Roles) error {
	switch v := p.(type) {
	case models.User:
		if allowed.Contains(v.Role) {
			return nil
		}
	case *models.User:
		if v != nil && allowed.Contains(v.Role) {
			return nil
		}
	case models.Rider:
		if v.Approved && allowed.Contains(models.RoleRider) {
			return nil
		}
	case *models.Rider:
		if v != nil && v.Approved && allowed.Contains(models.RoleRider) {
			return nil
		}
	}

	return fault.Forbidden()
}
