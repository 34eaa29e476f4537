// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

// Package routes declares the resource route groups mounted under
// /v1/api. Each group is an opaque http.Handler; the pipeline only needs
// its name and the roles allowed through its gate.
package routes

import (
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Group is one resource router.
type Group struct {
	Name    string
	Handler http.Handler
	// Roles, when non-empty, puts the role gate in front of Handler.
	Roles []string
}

// Resource names in mount order.
var resources = []string{
	"auth",
	"user",
	"product",
	"review",
	"cart",
	"payment",
	"order",
	"chat",
	"wishlist",
	"escrow",
	"withdrawal",
	"vendor",
	"logistics",
	"category",
	"spec",
	"ads",
	"subscription",
	"banner",
	"flashsale",
}

// Names returns the resource names of the default groups in mount order.
func Names() []string {
	return append([]string(nil), resources...)
}

// Default returns the standard set of groups.
func Default() []Group {
	groups := make([]Group, 0, len(resources))
	for _, name := range resources {
		var h http.Handler
		if name == "auth" {
			h = newAuthRouter()
		} else {
			h = newPlaceholderRouter(name)
		}
		groups = append(groups, Group{Name: name, Handler: h})
	}
	return groups
}

type resourceResponse struct {
	Resource string `json:"resource"`
}

func newPlaceholderRouter(name string) http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = utils.WriteJSON(w, resourceResponse{Resource: name}, http.StatusOK)
	})
	return r
}
