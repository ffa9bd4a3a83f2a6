// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const residentColumns = `nik, name, gender, birth_date, address, rt_rw, religion, marital_status, occupation, phone, created_at, updated_at`

func scanResident(row interface{ Scan(...any) error }) (Resident, error) {
	var r Resident
	err := row.Scan(&r.NIK, &r.Name, &r.Gender, &r.BirthDate, &r.Address, &r.RTRW,
		&r.Religion, &r.MaritalStatus, &r.Occupation, &r.Phone, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// CreateResidentParams holds the fields for registering a resident.
type CreateResidentParams struct {
	NIK           string
	Name          string
	Gender        string
	BirthDate     string
	Address       string
	RTRW          string
	Religion      string
	MaritalStatus string
	Occupation    string
	Phone         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateResident inserts a resident record. The NIK primary key rejects
// duplicates at the store level.
func (q *Queries) CreateResident(ctx context.Context, arg CreateResidentParams) (Resident, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO residents (nik, name, gender, birth_date, address, rt_rw, religion, marital_status, occupation, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+residentColumns,
		arg.NIK, arg.Name, arg.Gender, arg.BirthDate, arg.Address, arg.RTRW,
		arg.Religion, arg.MaritalStatus, arg.Occupation, arg.Phone, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanResident(row)
}

// GetResidentByNIK fetches a resident by NIK.
func (q *Queries) GetResidentByNIK(ctx context.Context, nik string) (Resident, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+residentColumns+` FROM residents WHERE nik = ?`, nik)
	return scanResident(row)
}

// ListResidents returns all residents, newest first.
func (q *Queries) ListResidents(ctx context.Context) ([]Resident, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+residentColumns+` FROM residents ORDER BY created_at DESC, nik DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var residents []Resident
	for rows.Next() {
		r, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		residents = append(residents, r)
	}
	return residents, rows.Err()
}

// CountResidents returns the total number of residents.
func (q *Queries) CountResidents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM residents`).Scan(&count)
	return count, err
}

// UpdateResidentParams holds the replacement field set for a resident update.
type UpdateResidentParams struct {
	Name          string
	Gender        string
	BirthDate     string
	Address       string
	RTRW          string
	Religion      string
	MaritalStatus string
	Occupation    string
	Phone         string
	UpdatedAt     time.Time
	NIK           string
}

// UpdateResident replaces the mutable fields of a resident record.
func (q *Queries) UpdateResident(ctx context.Context, arg UpdateResidentParams) (Resident, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE residents
		SET name = ?, gender = ?, birth_date = ?, address = ?, rt_rw = ?,
		    religion = ?, marital_status = ?, occupation = ?, phone = ?, updated_at = ?
		WHERE nik = ?
		RETURNING `+residentColumns,
		arg.Name, arg.Gender, arg.BirthDate, arg.Address, arg.RTRW,
		arg.Religion, arg.MaritalStatus, arg.Occupation, arg.Phone, arg.UpdatedAt, arg.NIK,
	)
	return scanResident(row)
}

// DeleteResident removes a resident record. Returns the number of rows deleted.
func (q *Queries) DeleteResident(ctx context.Context, nik string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM residents WHERE nik = ?`, nik)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
