// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package http

import (
	"net/http"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.deps.BuildInfo.Response(), http.StatusOK); err != nil {
		h.requestLogger(r).Err(err).Msg("error writing build info")
	}
}
