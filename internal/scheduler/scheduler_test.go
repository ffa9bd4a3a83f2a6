// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/service"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

func setupScheduler(t *testing.T, retention time.Duration) (*Scheduler, *store.Queries) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := service.NewAuditService(db, log)
	return New(audit, retention, log), store.New(db)
}

func seedAuditEntry(t *testing.T, queries *store.Queries, age time.Duration) {
	t.Helper()

	_, err := queries.CreateAuditEntry(context.Background(), store.CreateAuditEntryParams{
		Action:    model.AuditActionLoginAdmin,
		Actor:     "Pak RT",
		Type:      model.AuditTypeLogin,
		CreatedAt: time.Now().UTC().Add(-age),
	})
	require.NoError(t, err)
}

func TestPurgeAuditLog(t *testing.T) {
	s, queries := setupScheduler(t, 180*24*time.Hour)
	ctx := context.Background()

	seedAuditEntry(t, queries, 200*24*time.Hour)
	seedAuditEntry(t, queries, 10*24*time.Hour)

	s.PurgeAuditLogNow()

	count, err := queries.CountAuditEntries(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPurgeAuditLog_DisabledRetention(t *testing.T) {
	s, queries := setupScheduler(t, 0)

	seedAuditEntry(t, queries, 400*24*time.Hour)

	s.PurgeAuditLogNow()

	count, err := queries.CountAuditEntries(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "a zero retention keeps everything")
}

func TestStartStop(t *testing.T) {
	s, _ := setupScheduler(t, time.Hour)

	require.NoError(t, s.Start())
	s.Stop()
}
