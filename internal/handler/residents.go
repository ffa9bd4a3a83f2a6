// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/service"
)

// residentRequest is the POST and PUT /api/residents body.
type residentRequest struct {
	NIK           string `json:"nik"`
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	BirthDate     string `json:"birthDate"`
	Address       string `json:"address"`
	RTRW          string `json:"rtRw"`
	Religion      string `json:"religion"`
	MaritalStatus string `json:"maritalStatus"`
	Occupation    string `json:"occupation"`
	Phone         string `json:"phone"`
	RequesterRole string `json:"requesterRole"`
	CurrentUser   string `json:"currentUser"`
}

func (b residentRequest) input() service.ResidentInput {
	return service.ResidentInput{
		NIK:           b.NIK,
		Name:          b.Name,
		Gender:        b.Gender,
		BirthDate:     b.BirthDate,
		Address:       b.Address,
		RTRW:          b.RTRW,
		Religion:      b.Religion,
		MaritalStatus: b.MaritalStatus,
		Occupation:    b.Occupation,
		Phone:         b.Phone,
	}
}

// GetResidents returns one resident when ?nik= is given, otherwise all of
// them ordered by name.
func (h *Handler) GetResidents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if nik := r.URL.Query().Get("nik"); nik != "" {
		resident, err := h.residents.Get(ctx, nik)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeJSONSuccess(w, resident)
		return
	}

	residents, err := h.residents.List(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, residents)
}

// CreateResident registers a resident record keyed by NIK.
func (h *Handler) CreateResident(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var body residentRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	resident, err := h.residents.Create(r.Context(), actorFrom(body.RequesterRole, body.CurrentUser), body.input(), requestMeta(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, resident)
}

// UpdateResident replaces the record identified by the body's NIK.
func (h *Handler) UpdateResident(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var body residentRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	resident, err := h.residents.Update(r.Context(), actorFrom(body.RequesterRole, body.CurrentUser), body.input(), requestMeta(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, resident)
}

// DeleteResident handles DELETE /api/residents?nik=.
func (h *Handler) DeleteResident(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	nik := r.URL.Query().Get("nik")
	actor := actorFrom(r.URL.Query().Get("requesterRole"), r.URL.Query().Get("currentUser"))

	if err := h.residents.Delete(r.Context(), actor, nik, requestMeta(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONMessage(w, i18n.T(lang, "resident.deleted"))
}
