// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/service"
)

// writeJSONSuccess writes the success envelope with a data payload.
func writeJSONSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
}

// writeJSONMessage writes the success envelope with a status message and no
// data payload.
func writeJSONMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": message,
	})
}

// writeJSONError writes the failure envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}

// requestLang negotiates the response language from the Accept-Language
// header. Indonesian is the default.
func requestLang(r *http.Request) string {
	return i18n.MatchLanguage(r.Header.Get("Accept-Language"))
}

// writeServiceError maps a service error onto an HTTP status and a localized
// message. Unrecognized errors become a generic 500 and are logged.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	lang := requestLang(r)

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, i18n.T(lang, "error.invalid_credentials"))
	case errors.Is(err, service.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, i18n.T(lang, "error.forbidden"))
	case errors.Is(err, service.ErrDuplicateUsername):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.duplicate_username"))
	case errors.Is(err, service.ErrDuplicateNIK):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.duplicate_nik"))
	case errors.Is(err, service.ErrMissingID):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_id"))
	case errors.Is(err, service.ErrLastSuperAdmin):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.last_super_admin"))
	case errors.Is(err, service.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, i18n.T(lang, "error.not_found"))
	case service.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.validation"))
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"))
	}
}

// decodeJSON decodes a JSON request body, capped at 1 MB.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(dst)
}
