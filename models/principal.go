// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package models

// RoleRider is the role tag an approved [Rider] is authorized under.
const RoleRider = "rider"

// Principal is the authenticated identity attached to a request.
//
// The interface is sealed: only [User] and [Rider] implement it, so code that
// switches over a Principal can treat every other value as unknown.
type Principal interface {
	principal()
}

// User is a registered account. Role is a single tag from an open set
// such as "admin", "vendor" or "customer".
type User struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Rider is a delivery-rider account. A rider carries no role tag of its own;
// it acts as "rider" only once Approved.
type Rider struct {
	ID       string `json:"id"`
	Approved bool   `json:"is_approved"`
}

func (User) principal()  {}
func (Rider) principal() {}
