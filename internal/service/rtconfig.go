// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartwarga/smartwarga-go/internal/cache"
	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/store"
	"github.com/smartwarga/smartwarga-go/internal/util"
)

const configCacheKey = "rtconfig"

// ConfigService manages the neighborhood site configuration. Reads go
// through the cache since the public pages and the assistant fetch it on
// every visit; writes invalidate it.
type ConfigService struct {
	queries *store.Queries
	cache   cache.Cache
	audit   *AuditService
	log     *slog.Logger
}

// NewConfigService creates a new ConfigService.
func NewConfigService(db *sql.DB, c cache.Cache, audit *AuditService, log *slog.Logger) *ConfigService {
	return &ConfigService{queries: store.New(db), cache: c, audit: audit, log: log}
}

// Get returns the site configuration, preferring the cache.
func (s *ConfigService) Get(ctx context.Context) (store.RTConfig, error) {
	if data, err := s.cache.Get(ctx, configCacheKey); err == nil {
		var cfg store.RTConfig
		if err := json.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		// Corrupt cache entry, fall through to the database.
		_ = s.cache.Delete(ctx, configCacheKey)
	}

	cfg, err := s.queries.GetRTConfig(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.RTConfig{}, ErrNotFound
		}
		return store.RTConfig{}, fmt.Errorf("loading config: %w", err)
	}

	if data, err := json.Marshal(cfg); err == nil {
		if err := s.cache.Set(ctx, configCacheKey, data, 0); err != nil {
			s.log.Warn("config cache write failed", "error", err)
		}
	}
	return cfg, nil
}

// ConfigInput holds the editable site configuration fields.
type ConfigInput struct {
	RTName     string
	RTWhatsapp string
	RTEmail    string
	AppName    string
	AppLogo    string
}

// Update replaces the site configuration and invalidates the cache.
func (s *ConfigService) Update(ctx context.Context, actor Actor, in ConfigInput, meta RequestMeta) (store.RTConfig, error) {
	in.RTName = strings.TrimSpace(in.RTName)
	if in.RTName == "" {
		return store.RTConfig{}, &ValidationError{Field: "rtName", Reason: "required"}
	}
	in.AppName = strings.TrimSpace(in.AppName)
	if in.AppName == "" {
		return store.RTConfig{}, &ValidationError{Field: "appName", Reason: "required"}
	}
	in.AppLogo = strings.TrimSpace(in.AppLogo)
	if strings.HasPrefix(in.AppLogo, "http") {
		// Externally hosted logos must point at a public host.
		if err := util.ValidateExternalURL(in.AppLogo); err != nil {
			return store.RTConfig{}, &ValidationError{Field: "appLogo", Reason: err.Error()}
		}
	}

	cfg, err := s.queries.UpdateRTConfig(ctx, store.UpdateRTConfigParams{
		RTName:     in.RTName,
		RTWhatsapp: strings.TrimSpace(in.RTWhatsapp),
		RTEmail:    strings.TrimSpace(in.RTEmail),
		AppName:    in.AppName,
		AppLogo:    in.AppLogo,
		UpdatedAt:  time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.RTConfig{}, ErrNotFound
		}
		return store.RTConfig{}, fmt.Errorf("updating config: %w", err)
	}

	if err := s.cache.Delete(ctx, configCacheKey); err != nil {
		s.log.Warn("config cache invalidation failed", "error", err)
	}

	s.audit.Record(ctx, model.AuditActionUpdateConfig, actor.Name, cfg.RTName, model.AuditTypeUpdate, meta)
	return cfg, nil
}
