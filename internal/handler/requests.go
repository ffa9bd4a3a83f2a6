// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/service"
)

// submitRequestBody is the public POST /api/requests body.
type submitRequestBody struct {
	NIK        string `json:"nik"`
	Name       string `json:"name"`
	LetterType string `json:"letterType"`
	Purpose    string `json:"purpose"`
}

// updateRequestBody is the PUT /api/requests body used by administrators to
// move a request through its status workflow.
type updateRequestBody struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	RequesterRole string `json:"requesterRole"`
	CurrentUser   string `json:"currentUser"`
}

// GetRequests returns one request when ?ref= is given (public tracking),
// otherwise the full list for the dashboard.
func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ref := r.URL.Query().Get("ref"); ref != "" {
		req, err := h.requests.Track(ctx, ref)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeJSONSuccess(w, req)
		return
	}

	list, err := h.requests.List(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, list)
}

// SubmitRequest accepts a letter request from a resident.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var body submitRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	req, err := h.requests.Submit(r.Context(), service.SubmitRequestInput{
		NIK:        body.NIK,
		Name:       body.Name,
		LetterType: body.LetterType,
		Purpose:    body.Purpose,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, req)
}

// UpdateRequestStatus moves a request to a new status.
func (h *Handler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var body updateRequestBody
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	req, err := h.requests.UpdateStatus(r.Context(), actorFrom(body.RequesterRole, body.CurrentUser), body.ID, body.Status, body.Notes, requestMeta(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, req)
}
