// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"context"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/ratelimit"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/routes"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
)

// ReadinessChecker reports whether the backing stores can serve requests.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP pipeline is assembled from.
type Dependencies struct {
	Groups    []routes.Group
	Limiter   ratelimit.Limiter
	Readiness ReadinessChecker
	BuildInfo models.AppBuildInfo
}

// Settings are the configuration values read by the pipeline stages.
type Settings struct {
	App          config.App
	MaxBodyBytes int64
	RateLimit    config.RateLimit
}

type Handler struct {
	deps     Dependencies
	settings Settings

	rateLimitGroups map[string]struct{}
	metrics         *httpMetrics

	logger *logger.Logger
}

func NewHandler(deps Dependencies, settings Settings, logger *logger.Logger) *Handler {
	groups := make(map[string]struct{}, len(settings.RateLimit.Groups))
	for _, name := range settings.RateLimit.Groups {
		groups[name] = struct{}{}
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		deps:            deps,
		settings:        settings,
		rateLimitGroups: groups,
		metrics:         newHTTPMetrics(),
		logger:          logger,
	}
}

func (h *Handler) rateLimited(group string) bool {
	if h.deps.Limiter == nil {
		return false
	}
	_, ok := h.rateLimitGroups[group]
	return ok
}
