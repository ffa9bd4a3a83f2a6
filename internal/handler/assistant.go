// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/service"
)

// aiRequest is the POST /api/ai body.
type aiRequest struct {
	Message string `json:"message"`
}

// AskAssistant answers a resident's question through the AI assistant. A
// provider failure degrades to the localized apology message on a 500.
func (h *Handler) AskAssistant(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var body aiRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	reply, err := h.assistant.Answer(r.Context(), body.Message, lang)
	if err != nil {
		if service.IsValidation(err) {
			writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.validation"))
			return
		}
		h.writeServiceError(w, r, err)
		return
	}
	if !reply.Answered {
		writeJSONError(w, http.StatusInternalServerError, reply.HTML)
		return
	}
	writeJSONSuccess(w, reply)
}
