// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN and ERROR level
// records into the audit log, so operational problems (including failed
// audit writes elsewhere) stay visible next to the administrative history.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

// AuditLogHandler wraps another slog handler and additionally records WARN+
// entries as SYSTEM rows in the audit log.
type AuditLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewAuditLogHandler creates a handler that mirrors records at WARN and above.
func NewAuditLogHandler(inner slog.Handler, db *sql.DB) *AuditLogHandler {
	return &AuditLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// NewAuditLogHandlerWithLevel creates a handler with a custom mirror threshold.
func NewAuditLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *AuditLogHandler {
	return &AuditLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *AuditLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToAuditLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *AuditLogHandler) WithGroup(name string) slog.Handler {
	return &AuditLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

// writeToAuditLog records the slog record as a SYSTEM audit entry. A
// background context is used so a cancelled request cannot drop the entry.
// A write failure here is silently ignored: there is nowhere left to report it.
func (h *AuditLogHandler) writeToAuditLog(r slog.Record) {
	created := r.Time
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, _ = h.queries.CreateAuditEntry(context.Background(), store.CreateAuditEntryParams{
		Action:    model.AuditActionSystemWarning,
		Actor:     "system",
		Target:    summarizeRecord(r),
		Type:      model.AuditTypeSystem,
		CreatedAt: created,
	})
}

// summarizeRecord flattens a record into "message (key=value, ...)".
func summarizeRecord(r slog.Record) string {
	var sb strings.Builder
	sb.WriteString(r.Message)

	if r.NumAttrs() > 0 {
		sb.WriteString(" (")
		first := true
		r.Attrs(func(a slog.Attr) bool {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(a.Key)
			sb.WriteString("=")
			sb.WriteString(a.Value.String())
			return true
		})
		sb.WriteString(")")
	}

	// Targets are log lines, keep them bounded.
	s := sb.String()
	if len(s) > 500 {
		return s[:500]
	}
	return s
}
