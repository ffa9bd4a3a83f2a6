// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

func seedConfig(t *testing.T, env *testEnv) store.RTConfig {
	t.Helper()

	cfg, err := env.queries.CreateRTConfig(context.Background(), store.CreateRTConfigParams{
		RTName:     "RT 001 / RW 005",
		RTWhatsapp: "6281234567890",
		RTEmail:    "rt001@smartwarga.id",
		AppName:    "SmartWarga",
		UpdatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	return cfg
}

func TestConfigGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.config.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	seedConfig(t, env)

	cfg, err := env.config.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RT 001 / RW 005", cfg.RTName)
}

func TestConfigGet_ServesFromCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedConfig(t, env)

	_, err := env.config.Get(ctx)
	require.NoError(t, err)

	// Change the row behind the cache's back; the cached copy wins until
	// the TTL or an Update invalidates it.
	_, err = env.queries.UpdateRTConfig(ctx, store.UpdateRTConfigParams{
		RTName:    "RT 999",
		AppName:   "Other",
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	cfg, err := env.config.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RT 001 / RW 005", cfg.RTName)
}

func TestConfigUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedConfig(t, env)

	_, err := env.config.Get(ctx)
	require.NoError(t, err)

	updated, err := env.config.Update(ctx, superActor, ConfigInput{
		RTName:     "RT 002 / RW 005",
		RTWhatsapp: "6281234567890",
		RTEmail:    "rt002@smartwarga.id",
		AppName:    "SmartWarga",
		AppLogo:    "/uploads/logo.png",
	}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "RT 002 / RW 005", updated.RTName)

	// Cache was invalidated, so the next read sees the new values.
	cfg, err := env.config.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RT 002 / RW 005", cfg.RTName)

	entry := env.lastAuditEntry(t)
	assert.Equal(t, model.AuditActionUpdateConfig, entry.Action)
	assert.Equal(t, model.AuditTypeUpdate, entry.Type)
}

func TestConfigUpdate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedConfig(t, env)

	_, err := env.config.Update(ctx, superActor, ConfigInput{AppName: "SmartWarga"}, RequestMeta{})
	assert.True(t, IsValidation(err))

	_, err = env.config.Update(ctx, superActor, ConfigInput{RTName: "RT 001"}, RequestMeta{})
	assert.True(t, IsValidation(err))
}

func TestConfigUpdate_RejectsPrivateLogoURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedConfig(t, env)

	_, err := env.config.Update(ctx, superActor, ConfigInput{
		RTName:  "RT 001",
		AppName: "SmartWarga",
		AppLogo: "http://127.0.0.1/logo.png",
	}, RequestMeta{})
	assert.True(t, IsValidation(err))

	// Relative upload paths are not URL-validated.
	_, err = env.config.Update(ctx, superActor, ConfigInput{
		RTName:  "RT 001",
		AppName: "SmartWarga",
		AppLogo: "/uploads/logo/abc.png",
	}, RequestMeta{})
	assert.NoError(t, err)
}

func TestConfigUpdate_MissingRow(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.config.Update(context.Background(), superActor, ConfigInput{
		RTName:  "RT 001",
		AppName: "SmartWarga",
	}, RequestMeta{})
	assert.ErrorIs(t, err, ErrNotFound)
}
