// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
)

const readinessTimeout = 2 * time.Second

func (h *Handler) live(w http.ResponseWriter, _ *http.Request) {
	_, _ = utils.WriteJSON(w, models.ReadinessResponse{Status: "ok"}, http.StatusOK)
}

// ready checks the stores. It answers 503 with the failure instead of
// going through the error funnel so that health checkers see the cause.
func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if h.deps.Readiness == nil {
		_, _ = utils.WriteJSON(w, models.ReadinessResponse{Status: "ok"}, http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.deps.Readiness.Ready(ctx); err != nil {
		h.requestLogger(r).Warn().Err(err).Msg("readiness check failed")
		_, _ = utils.WriteJSON(w, models.ReadinessResponse{Status: "unavailable", Error: err.Error()}, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, models.ReadinessResponse{Status: "ok"}, http.StatusOK)
}
