// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package routes

import (
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
	"github.com/go-chi/chi/v5"
)

const unauthenticatedMessage = "You are not logged in. Please log in to get access."

func newAuthRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = utils.WriteJSON(w, resourceResponse{Resource: "auth"}, http.StatusOK)
	})
	r.Method(http.MethodGet, "/me", fault.HandlerFunc(me))
	return r
}

// me reports the principal resolved by the auth-context stage.
func me(w http.ResponseWriter, r *http.Request) error {
	p, ok := utils.PrincipalFromContext(r.Context())
	if !ok {
		return fault.New(unauthenticatedMessage, http.StatusUnauthorized)
	}

	var resp models.PrincipalResponse
	switch v := p.(type) {
	case models.User:
		resp = models.PrincipalResponse{Kind: models.PrincipalKindUser, ID: v.ID, Role: v.Role}
	case *models.User:
		if v == nil {
			return fault.New(unauthenticatedMessage, http.StatusUnauthorized)
		}
		resp = models.PrincipalResponse{Kind: models.PrincipalKindUser, ID: v.ID, Role: v.Role}
	case models.Rider:
		resp = riderResponse(v)
	case *models.Rider:
		if v == nil {
			return fault.New(unauthenticatedMessage, http.StatusUnauthorized)
		}
		resp = riderResponse(*v)
	default:
		return fault.New(unauthenticatedMessage, http.StatusUnauthorized)
	}

	_, err := utils.WriteJSON(w, resp, http.StatusOK)
	return err
}

func riderResponse(r models.Rider) models.PrincipalResponse {
	approved := r.Approved
	return models.PrincipalResponse{Kind: models.PrincipalKindRider, ID: r.ID, Role: models.RoleRider, Approved: &approved}
}
