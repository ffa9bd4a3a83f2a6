// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/service"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

// adminActionRequest is the POST /api/admin body. The action field selects
// between login and create.
type adminActionRequest struct {
	Action        string `json:"action"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	RequesterRole string `json:"requesterRole"`
	CurrentUser   string `json:"currentUser"`
}

// adminUpdateRequest is the PUT /api/admin body. Empty fields are left
// untouched on the target account.
type adminUpdateRequest struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	RequesterRole string `json:"requesterRole"`
	CurrentUser   string `json:"currentUser"`
}

func actorFrom(role, name string) service.Actor {
	if name == "" {
		name = "Admin"
	}
	return service.Actor{Name: name, Role: role}
}

// ListAdmins returns all administrator accounts, newest first. The baseline
// seeder runs first so a fresh database always yields the default account.
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := store.EnsureBaseline(ctx, h.queries); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	views, err := h.admins.List(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, views)
}

// AdminAction handles POST /api/admin, dispatching on the action field.
func (h *Handler) AdminAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := requestLang(r)

	if err := store.EnsureBaseline(ctx, h.queries); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var body adminActionRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	switch body.Action {
	case "login":
		h.login(w, r, body)
	case "create":
		in := service.CreateAdminInput{
			Username: body.Username,
			Password: body.Password,
			Name:     body.Name,
			Role:     body.Role,
		}
		view, err := h.admins.Create(ctx, actorFrom(body.RequesterRole, body.CurrentUser), in, requestMeta(r))
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeJSONSuccess(w, view)
	default:
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, body adminActionRequest) {
	lang := requestLang(r)

	if locked, _ := h.logins.IsAccountLocked(body.Username); locked {
		writeJSONError(w, http.StatusTooManyRequests, i18n.T(lang, "error.account_locked"))
		return
	}

	view, err := h.admins.Login(r.Context(), body.Username, body.Password, requestMeta(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logins.RecordFailedAttempt(body.Username)
		}
		h.writeServiceError(w, r, err)
		return
	}

	h.logins.RecordSuccessfulLogin(body.Username)
	writeJSONSuccess(w, view)
}

// UpdateAdmin handles PUT /api/admin.
func (h *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	var body adminUpdateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_request"))
		return
	}

	in := service.UpdateAdminInput{ID: body.ID}
	if body.Username != "" {
		in.Username = &body.Username
	}
	if body.Password != "" {
		in.Password = &body.Password
	}
	if body.Name != "" {
		in.Name = &body.Name
	}
	if body.Role != "" {
		in.Role = &body.Role
	}

	view, err := h.admins.Update(r.Context(), actorFrom(body.RequesterRole, body.CurrentUser), in, requestMeta(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONSuccess(w, view)
}

// DeleteAdmin handles DELETE /api/admin?id=&requesterRole=.
func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	actor := actorFrom(r.URL.Query().Get("requesterRole"), r.URL.Query().Get("currentUser"))

	if err := h.admins.Delete(r.Context(), actor, id, requestMeta(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONMessage(w, i18n.T(lang, "admin.deleted"))
}

// InitBaseline handles GET /api/init: explicit idempotent seeding of the
// default administrator and site configuration.
func (h *Handler) InitBaseline(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	if err := store.EnsureBaseline(r.Context(), h.queries); err != nil {
		h.log.Error("baseline initialization failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.init"))
		return
	}
	writeJSONMessage(w, i18n.T(lang, "init.success"))
}
