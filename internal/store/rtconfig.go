// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// RTConfigID is the primary key of the single site configuration row.
const RTConfigID = "default"

const rtConfigColumns = `id, rt_name, rt_whatsapp, rt_email, app_name, app_logo, updated_at`

func scanRTConfig(row interface{ Scan(...any) error }) (RTConfig, error) {
	var c RTConfig
	err := row.Scan(&c.ID, &c.RTName, &c.RTWhatsapp, &c.RTEmail, &c.AppName, &c.AppLogo, &c.UpdatedAt)
	return c, err
}

// GetRTConfig fetches the site configuration row.
func (q *Queries) GetRTConfig(ctx context.Context) (RTConfig, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+rtConfigColumns+` FROM rt_config WHERE id = ?`, RTConfigID)
	return scanRTConfig(row)
}

// CountRTConfigs returns the number of configuration rows (0 or 1 in practice).
func (q *Queries) CountRTConfigs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rt_config`).Scan(&count)
	return count, err
}

// CreateRTConfigParams holds the fields for the initial configuration row.
type CreateRTConfigParams struct {
	RTName     string
	RTWhatsapp string
	RTEmail    string
	AppName    string
	AppLogo    string
	UpdatedAt  time.Time
}

// CreateRTConfig inserts the site configuration row.
func (q *Queries) CreateRTConfig(ctx context.Context, arg CreateRTConfigParams) (RTConfig, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO rt_config (id, rt_name, rt_whatsapp, rt_email, app_name, app_logo, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+rtConfigColumns,
		RTConfigID, arg.RTName, arg.RTWhatsapp, arg.RTEmail, arg.AppName, arg.AppLogo, arg.UpdatedAt,
	)
	return scanRTConfig(row)
}

// UpdateRTConfigParams holds the replacement field set for a configuration update.
type UpdateRTConfigParams struct {
	RTName     string
	RTWhatsapp string
	RTEmail    string
	AppName    string
	AppLogo    string
	UpdatedAt  time.Time
}

// UpdateRTConfig replaces the site configuration fields.
func (q *Queries) UpdateRTConfig(ctx context.Context, arg UpdateRTConfigParams) (RTConfig, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE rt_config
		SET rt_name = ?, rt_whatsapp = ?, rt_email = ?, app_name = ?, app_logo = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+rtConfigColumns,
		arg.RTName, arg.RTWhatsapp, arg.RTEmail, arg.AppName, arg.AppLogo, arg.UpdatedAt, RTConfigID,
	)
	return scanRTConfig(row)
}
