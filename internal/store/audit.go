// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const auditColumns = `id, action, actor, target, type, ip_address, user_agent, created_at`

func scanAuditEntry(row interface{ Scan(...any) error }) (AuditEntry, error) {
	var e AuditEntry
	err := row.Scan(&e.ID, &e.Action, &e.Actor, &e.Target, &e.Type, &e.IPAddress, &e.UserAgent, &e.CreatedAt)
	return e, err
}

// CreateAuditEntryParams holds the fields for appending an audit entry.
type CreateAuditEntryParams struct {
	Action    string
	Actor     string
	Target    string
	Type      string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// CreateAuditEntry appends an entry to the audit log. Entries are never
// updated or deleted by application code; only the retention purge removes them.
func (q *Queries) CreateAuditEntry(ctx context.Context, arg CreateAuditEntryParams) (AuditEntry, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO audit_log (action, actor, target, type, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+auditColumns,
		arg.Action, arg.Actor, arg.Target, arg.Type, arg.IPAddress, arg.UserAgent, arg.CreatedAt,
	)
	return scanAuditEntry(row)
}

// ListAuditEntries returns the most recent audit entries, newest first.
func (q *Queries) ListAuditEntries(ctx context.Context, limit int64) ([]AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountAuditEntries returns the total number of audit entries.
func (q *Queries) CountAuditEntries(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&count)
	return count, err
}

// DeleteAuditEntriesBefore removes audit entries older than the cutoff.
// Used by the scheduled retention purge.
func (q *Queries) DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM audit_log WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
