// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartwarga/smartwarga-go/internal/auth"
	"github.com/smartwarga/smartwarga-go/internal/model"
)

// Defaults written on first start when the database is empty.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Pak RT"

	defaultRTName     = "RT 001 / RW 005"
	defaultRTWhatsapp = "6281234567890"
	defaultRTEmail    = "rt001@smartwarga.id"
	defaultAppName    = "SmartWarga"
)

// EnsureBaseline seeds the default administrator account and the site
// configuration row when either is missing. Each check is independent, so a
// half-seeded database is repaired on the next start. Concurrent seeders may
// race; duplicate-key failures are treated as success.
func EnsureBaseline(ctx context.Context, q *Queries) error {
	var errs []error

	if err := ensureDefaultAdmin(ctx, q); err != nil {
		errs = append(errs, fmt.Errorf("seed admin: %w", err))
	}
	if err := ensureDefaultConfig(ctx, q); err != nil {
		errs = append(errs, fmt.Errorf("seed config: %w", err))
	}

	return errors.Join(errs...)
}

func ensureDefaultAdmin(ctx context.Context, q *Queries) error {
	count, err := q.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}

	_, err = q.CreateAdmin(ctx, CreateAdminParams{
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		Name:         DefaultAdminName,
		Role:         model.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if IsUniqueViolation(err) {
			slog.Info("default admin already seeded by another instance")
			return nil
		}
		return err
	}

	slog.Info("seeded default admin account", "username", DefaultAdminUsername)
	return nil
}

func ensureDefaultConfig(ctx context.Context, q *Queries) error {
	_, err := q.GetRTConfig(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	_, err = q.CreateRTConfig(ctx, CreateRTConfigParams{
		RTName:     defaultRTName,
		RTWhatsapp: defaultRTWhatsapp,
		RTEmail:    defaultRTEmail,
		AppName:    defaultAppName,
		UpdatedAt:  time.Now().UTC(),
	})
	if err != nil {
		if IsUniqueViolation(err) {
			slog.Info("site configuration already seeded by another instance")
			return nil
		}
		return err
	}

	slog.Info("seeded site configuration", "rt_name", defaultRTName)
	return nil
}

// IsUniqueViolation reports whether err is a SQLite unique constraint failure.
// Matched on message text so both the modernc and mattn drivers are covered.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
