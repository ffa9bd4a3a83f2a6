// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/smartwarga/smartwarga-go/internal/model"
)

const adminColumns = `id, username, password_hash, name, role, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateAdminParams holds the fields for inserting an administrator account.
type CreateAdminParams struct {
	Username     string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateAdmin inserts a new administrator account and returns the stored row.
// The unique index on username rejects duplicates at the store level.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (Admin, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO admins (username, password_hash, name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+adminColumns,
		arg.Username, arg.PasswordHash, arg.Name, arg.Role, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanAdmin(row)
}

// GetAdminByID fetches an administrator account by ID.
func (q *Queries) GetAdminByID(ctx context.Context, id int64) (Admin, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
	return scanAdmin(row)
}

// GetAdminByUsername fetches an administrator account by exact username.
// The username column uses BINARY collation, so the match is case-sensitive.
func (q *Queries) GetAdminByUsername(ctx context.Context, username string) (Admin, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = ?`, username)
	return scanAdmin(row)
}

// ListAdmins returns all administrator accounts, newest first.
func (q *Queries) ListAdmins(ctx context.Context) ([]Admin, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// CountAdmins returns the total number of administrator accounts.
func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	return count, err
}

// CountAdminsByRole returns the number of accounts holding the given role.
func (q *Queries) CountAdminsByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins WHERE role = ?`, role).Scan(&count)
	return count, err
}

// CountAdminsByUsernameExcluding counts accounts with the given username,
// ignoring the account with the given ID. Used for uniqueness checks on update.
func (q *Queries) CountAdminsByUsernameExcluding(ctx context.Context, username string, id int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admins WHERE username = ? AND id != ?`, username, id,
	).Scan(&count)
	return count, err
}

// UpdateAdminParams holds the full replacement field set for an account update.
type UpdateAdminParams struct {
	Username  string
	Name      string
	Role      string
	UpdatedAt time.Time
	ID        int64
}

// UpdateAdmin replaces the mutable profile fields of an administrator account
// and returns the stored row. The credential hash is updated separately.
func (q *Queries) UpdateAdmin(ctx context.Context, arg UpdateAdminParams) (Admin, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE admins SET username = ?, name = ?, role = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+adminColumns,
		arg.Username, arg.Name, arg.Role, arg.UpdatedAt, arg.ID,
	)
	return scanAdmin(row)
}

// UpdateAdminPasswordParams holds the fields for a credential update.
type UpdateAdminPasswordParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           int64
}

// UpdateAdminPassword replaces the credential hash of an administrator account.
func (q *Queries) UpdateAdminPassword(ctx context.Context, arg UpdateAdminPasswordParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?`,
		arg.PasswordHash, arg.UpdatedAt, arg.ID,
	)
	return err
}

// DeleteAdminGuarded deletes an administrator account unless it is the last
// remaining Super Admin. The count re-validation happens inside the DELETE
// statement itself, so the invariant cannot race with concurrent deletions.
// Returns the number of rows deleted (0 when the guard blocked the delete or
// no such account exists).
func (q *Queries) DeleteAdminGuarded(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM admins
		WHERE id = ?
		  AND (role != ? OR (SELECT COUNT(*) FROM admins WHERE role = ?) > 1)`,
		id, model.RoleSuperAdmin, model.RoleSuperAdmin,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
