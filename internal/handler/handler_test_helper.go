// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/assistant"
	"github.com/smartwarga/smartwarga-go/internal/cache"
	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/imaging"
	"github.com/smartwarga/smartwarga-go/internal/middleware"
	"github.com/smartwarga/smartwarga-go/internal/service"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

// chatFunc adapts a function to the assistant.ChatClient interface so tests
// can script model replies.
type chatFunc func(ctx context.Context, system, user string) (string, error)

func (f chatFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

// testHandler bundles the handler under test with its backing database.
type testHandler struct {
	h  *Handler
	db *sql.DB
}

// newTestHandler builds a handler over a fresh in-memory database. The
// assistant chat model is replaced with the given stub.
func newTestHandler(t *testing.T, chat chatFunc) *testHandler {
	t.Helper()

	require.NoError(t, i18n.Init(nil))

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mem := cache.NewMemoryCache(cache.DefaultTTL)
	t.Cleanup(func() { _ = mem.Close() })

	audit := service.NewAuditService(db, log)
	configSvc := service.NewConfigService(db, mem, audit, log)

	if chat == nil {
		chat = func(context.Context, string, string) (string, error) {
			return "Baik, silakan ajukan surat melalui aplikasi.", nil
		}
	}

	h := New(Deps{
		DB:        db,
		Admins:    service.NewAdminService(db, audit, log),
		Residents: service.NewResidentService(db, audit),
		Requests:  service.NewRequestService(db, audit),
		Config:    configSvc,
		Audit:     audit,
		Assistant: assistant.NewService(chat, nil, configSvc, log),
		Logins: middleware.NewLoginProtection(middleware.LoginProtectionConfig{
			// High IP limits so tests exercise the account lockout path.
			IPRateLimit:       1000,
			IPBurst:           1000,
			MaxFailedAttempts: 5,
			LockoutDuration:   time.Minute,
			AttemptWindow:     time.Minute,
		}),
		Logos:     imaging.NewLogoProcessor(t.TempDir()),
		Log:       log,
	})
	return &testHandler{h: h, db: db}
}

// do runs one request through the API router and decodes the envelope.
func (th *testHandler) do(t *testing.T, method, target string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	th.h.Routes().ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope),
		"response is not JSON: %s", rec.Body.String())
	return rec.Code, envelope
}

// seedBaseline runs the idempotent seeder directly.
func (th *testHandler) seedBaseline(t *testing.T) {
	t.Helper()
	require.NoError(t, store.EnsureBaseline(context.Background(), store.New(th.db)))
}

// dataMap returns the envelope's data field as an object.
func dataMap(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", envelope)
	return data
}

// dataList returns the envelope's data field as an array.
func dataList(t *testing.T, envelope map[string]any) []any {
	t.Helper()
	data, ok := envelope["data"].([]any)
	require.True(t, ok, "data is not an array: %v", envelope)
	return data
}
