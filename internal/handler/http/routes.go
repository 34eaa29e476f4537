// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"fmt"
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/routes"
	"github.com/go-chi/chi/v5"
)

// apiPrefix is where every resource group is mounted.
const apiPrefix = "/v1/api/"

// Init validates the declared pipeline and builds the router. A returned
// error is fatal at startup.
func (h *Handler) Init() (*chi.Mux, error) {
	stages := h.globalStages()
	if err := validateStages(stages); err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	// the funnel is declared last but wraps everything else
	funnel := stages[len(stages)-1]
	router.Use(funnel.Middleware)
	router.Use(middlewares(stages[:len(stages)-1])...)

	// set before mounting so that group routers inherit them
	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.routeNotFound)

	router.Get("/", h.hi)
	router.Get("/health/live", h.live)
	router.Get("/health/ready", h.ready)
	router.Get("/version", h.getServerVersion)
	router.Method(http.MethodGet, "/metrics", h.metrics.handler())

	mounted := make(map[string]struct{}, len(h.deps.Groups))
	for _, g := range h.deps.Groups {
		if err := h.mount(router, mounted, g); err != nil {
			return nil, err
		}
	}

	return router, nil
}

// mount registers one route group under /v1/api/<name> behind its
// per-group stages. Stages run in registration order.
func (h *Handler) mount(router chi.Router, mounted map[string]struct{}, g routes.Group) error {
	if g.Name == "" || g.Handler == nil {
		return fmt.Errorf("%w: group %q", ErrInvalidGroup, g.Name)
	}
	if _, dup := mounted[g.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name)
	}
	mounted[g.Name] = struct{}{}

	stages := h.groupStages(g.Name, g.Roles)
	router.With(middlewares(stages)...).Mount(apiPrefix+g.Name, g.Handler)

	h.logger.Debug().
		Str("group", g.Name).
		Int("stages", len(stages)).
		Msg("route group mounted")
	return nil
}

func (h *Handler) hi(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hi"))
}
