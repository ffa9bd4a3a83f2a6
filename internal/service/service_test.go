// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/auth"
	"github.com/smartwarga/smartwarga-go/internal/cache"
	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

type testEnv struct {
	db        *sql.DB
	queries   *store.Queries
	audit     *AuditService
	admins    *AdminService
	residents *ResidentService
	requests  *RequestService
	config    *ConfigService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	audit := NewAuditService(db, log)
	return &testEnv{
		db:        db,
		queries:   store.New(db),
		audit:     audit,
		admins:    NewAdminService(db, audit, log),
		residents: NewResidentService(db, audit),
		requests:  NewRequestService(db, audit),
		config:    NewConfigService(db, c, audit, log),
	}
}

// seedAdmin inserts an account with a real argon2id hash so login tests
// exercise the verification path.
func (e *testEnv) seedAdmin(t *testing.T, username, password, name, role string) model.AdminView {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	admin, err := e.queries.CreateAdmin(context.Background(), store.CreateAdminParams{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return model.AdminView{ID: admin.ID, Username: admin.Username, Name: admin.Name, Role: admin.Role, CreatedAt: admin.CreatedAt}
}

// lastAuditEntry returns the newest audit entry, failing when the log is empty.
func (e *testEnv) lastAuditEntry(t *testing.T) store.AuditEntry {
	t.Helper()

	entries, err := e.queries.ListAuditEntries(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	return entries[0]
}

func (e *testEnv) auditCount(t *testing.T) int64 {
	t.Helper()

	count, err := e.queries.CountAuditEntries(context.Background())
	require.NoError(t, err)
	return count
}
