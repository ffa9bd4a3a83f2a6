// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const requestColumns = `id, ref, nik, name, letter_type, purpose, status, notes, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }) (LetterRequest, error) {
	var lr LetterRequest
	err := row.Scan(&lr.ID, &lr.Ref, &lr.NIK, &lr.Name, &lr.LetterType, &lr.Purpose,
		&lr.Status, &lr.Notes, &lr.CreatedAt, &lr.UpdatedAt)
	return lr, err
}

// CreateRequestParams holds the fields for submitting a letter request.
type CreateRequestParams struct {
	Ref        string
	NIK        string
	Name       string
	LetterType string
	Purpose    string
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateRequest inserts a letter request.
func (q *Queries) CreateRequest(ctx context.Context, arg CreateRequestParams) (LetterRequest, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO requests (ref, nik, name, letter_type, purpose, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+requestColumns,
		arg.Ref, arg.NIK, arg.Name, arg.LetterType, arg.Purpose, arg.Status, arg.Notes,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return scanRequest(row)
}

// GetRequestByRef fetches a letter request by its public reference code.
func (q *Queries) GetRequestByRef(ctx context.Context, ref string) (LetterRequest, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE ref = ?`, ref)
	return scanRequest(row)
}

// GetRequestByID fetches a letter request by ID.
func (q *Queries) GetRequestByID(ctx context.Context, id int64) (LetterRequest, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id)
	return scanRequest(row)
}

// ListRequests returns all letter requests, newest first.
func (q *Queries) ListRequests(ctx context.Context) ([]LetterRequest, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+requestColumns+` FROM requests ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LetterRequest
	for rows.Next() {
		lr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// CountRequestsByStatus returns the number of requests in the given status.
func (q *Queries) CountRequestsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests WHERE status = ?`, status).Scan(&count)
	return count, err
}

// UpdateRequestStatusParams holds the fields for a status transition.
type UpdateRequestStatusParams struct {
	Status    string
	Notes     string
	UpdatedAt time.Time
	ID        int64
}

// UpdateRequestStatus moves a letter request to a new status.
func (q *Queries) UpdateRequestStatus(ctx context.Context, arg UpdateRequestStatusParams) (LetterRequest, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE requests SET status = ?, notes = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+requestColumns,
		arg.Status, arg.Notes, arg.UpdatedAt, arg.ID,
	)
	return scanRequest(row)
}
