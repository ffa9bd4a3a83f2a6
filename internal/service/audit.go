// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/smartwarga/smartwarga-go/internal/store"
)

// AuditService records administrative actions in the append-only audit log.
// Recording is best-effort: a failed write never fails the operation that
// triggered it, but it is always surfaced to the application log.
type AuditService struct {
	queries *store.Queries
	log     *slog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB, log *slog.Logger) *AuditService {
	return &AuditService{queries: store.New(db), log: log}
}

// RequestMeta carries client information attached to audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Record appends an audit entry. Errors are logged and swallowed.
func (s *AuditService) Record(ctx context.Context, action, actor, target, auditType string, meta RequestMeta) {
	_, err := s.queries.CreateAuditEntry(ctx, store.CreateAuditEntryParams{
		Action:    action,
		Actor:     actor,
		Target:    target,
		Type:      auditType,
		IPAddress: meta.IPAddress,
		UserAgent: summarizeUserAgent(meta.UserAgent),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("audit write failed",
			"action", action,
			"actor", actor,
			"type", auditType,
			"error", err)
	}
}

// List returns the most recent audit entries, newest first.
func (s *AuditService) List(ctx context.Context, limit int64) ([]store.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.queries.ListAuditEntries(ctx, limit)
}

// PurgeOlderThan removes audit entries past the retention window.
func (s *AuditService) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.queries.DeleteAuditEntriesBefore(ctx, cutoff)
}

// summarizeUserAgent reduces a raw User-Agent header to "Browser Version / OS"
// so the log stays readable. Unrecognized agents are stored as-is, truncated.
func summarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}

	ua := useragent.Parse(raw)
	if ua.Name != "" {
		parts := []string{ua.Name}
		if ua.Version != "" {
			parts = append(parts, ua.Version)
		}
		summary := strings.Join(parts, " ")
		if ua.OS != "" {
			summary += " / " + ua.OS
		}
		return summary
	}

	if len(raw) > 120 {
		return raw[:120]
	}
	return raw
}
