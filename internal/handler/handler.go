// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler exposes the SmartWarga JSON API. Handlers translate HTTP
// requests into service calls and map service errors onto the uniform
// response envelope; all business rules live in the service layer.
package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/smartwarga/smartwarga-go/internal/assistant"
	"github.com/smartwarga/smartwarga-go/internal/imaging"
	"github.com/smartwarga/smartwarga-go/internal/middleware"
	"github.com/smartwarga/smartwarga-go/internal/service"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

// Deps bundles everything the API handlers need.
type Deps struct {
	DB        *sql.DB
	Admins    *service.AdminService
	Residents *service.ResidentService
	Requests  *service.RequestService
	Config    *service.ConfigService
	Audit     *service.AuditService
	Assistant *assistant.Service
	Logins    *middleware.LoginProtection
	Logos     *imaging.LogoProcessor
	Log       *slog.Logger
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries   *store.Queries
	admins    *service.AdminService
	residents *service.ResidentService
	requests  *service.RequestService
	config    *service.ConfigService
	audit     *service.AuditService
	assistant *assistant.Service
	logins    *middleware.LoginProtection
	logos     *imaging.LogoProcessor
	log       *slog.Logger
}

// New creates the API handler.
func New(d Deps) *Handler {
	return &Handler{
		queries:   store.New(d.DB),
		admins:    d.Admins,
		residents: d.Residents,
		requests:  d.Requests,
		config:    d.Config,
		audit:     d.Audit,
		assistant: d.Assistant,
		logins:    d.Logins,
		logos:     d.Logos,
		log:       d.Log,
	}
}

// Routes returns the router for the /api subtree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/admin", h.ListAdmins)
	r.With(h.logins.Middleware()).Post("/admin", h.AdminAction)
	r.Put("/admin", h.UpdateAdmin)
	r.Delete("/admin", h.DeleteAdmin)
	r.Get("/init", h.InitBaseline)

	r.Get("/residents", h.GetResidents)
	r.Post("/residents", h.CreateResident)
	r.Put("/residents", h.UpdateResident)
	r.Delete("/residents", h.DeleteResident)

	r.Get("/requests", h.GetRequests)
	r.Post("/requests", h.SubmitRequest)
	r.Put("/requests", h.UpdateRequestStatus)

	r.Get("/config", h.GetConfig)
	r.Put("/config", h.UpdateConfig)
	r.Post("/config/logo", h.UploadLogo)

	r.Get("/audit", h.ListAudit)

	r.With(httprate.LimitByIP(10, time.Minute)).Post("/ai", h.AskAssistant)

	return r
}

// requestMeta extracts the audit metadata carried by every request.
func requestMeta(r *http.Request) service.RequestMeta {
	return service.RequestMeta{
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
