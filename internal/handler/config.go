// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"path/filepath"

	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/service"
)

// configRequest is the PUT /api/config body. Empty fields keep their
// current value.
type configRequest struct {
	RTName        string `json:"rtName"`
	RTWhatsapp    string `json:"rtWhatsapp"`
	RTEmail       string `json:"rtEmail"`
	AppName       string `json:"appName"`
	AppLogo       string `json:"appLogo"`
	RequesterRole string `json:"requesterRole"`
	CurrentUser   string `json:"currentUser"`
}

// GetConfig returns the site configuration.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.Get(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, cfg)
}

// UpdateConfig replaces the site configuration. Fields left empty in the
// body are preserved from the current row.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLang(r)

	var body configRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	current, err := h.config.Get(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	in := service.ConfigInput{
		RTName:     current.RTName,
		RTWhatsapp: current.RTWhatsapp,
		RTEmail:    current.RTEmail,
		AppName:    current.AppName,
		AppLogo:    current.AppLogo,
	}
	if body.RTName != "" {
		in.RTName = body.RTName
	}
	if body.RTWhatsapp != "" {
		in.RTWhatsapp = body.RTWhatsapp
	}
	if body.RTEmail != "" {
		in.RTEmail = body.RTEmail
	}
	if body.AppName != "" {
		in.AppName = body.AppName
	}
	if body.AppLogo != "" {
		in.AppLogo = body.AppLogo
	}

	cfg, err := h.config.Update(ctx, actorFrom(body.RequesterRole, body.CurrentUser), in, requestMeta(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, cfg)
}

// UploadLogo handles POST /api/config/logo: a multipart form with a "logo"
// file. The image is resized, stored under the uploads directory, and the
// configuration's logo URL is updated in place.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLang(r)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}
	file, _, err := r.FormFile("logo")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}
	defer func() { _ = file.Close() }()

	relPath, err := h.logos.Save(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.validation"))
		return
	}

	current, err := h.config.Get(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	actor := actorFrom(r.FormValue("requesterRole"), r.FormValue("currentUser"))
	cfg, err := h.config.Update(ctx, actor, service.ConfigInput{
		RTName:     current.RTName,
		RTWhatsapp: current.RTWhatsapp,
		RTEmail:    current.RTEmail,
		AppName:    current.AppName,
		AppLogo:    "/uploads/" + filepath.ToSlash(relPath),
	}, requestMeta(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, cfg)
}
