// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

// nikPattern matches a 16-digit national identity number.
var nikPattern = regexp.MustCompile(`^[0-9]{16}$`)

// ResidentService manages the resident registry.
type ResidentService struct {
	queries *store.Queries
	audit   *AuditService
}

// NewResidentService creates a new ResidentService.
func NewResidentService(db *sql.DB, audit *AuditService) *ResidentService {
	return &ResidentService{queries: store.New(db), audit: audit}
}

// ResidentInput holds the fields for registering or updating a resident.
type ResidentInput struct {
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
}

func (in *ResidentInput) validate() error {
	in.NIK = strings.TrimSpace(in.NIK)
	if !nikPattern.MatchString(in.NIK) {
		return &ValidationError{Field: "nik", Reason: "must be 16 digits"}
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	return nil
}

// Create registers a new resident keyed by NIK.
func (s *ResidentService) Create(ctx context.Context, actor Actor, in ResidentInput, meta RequestMeta) (store.Resident, error) {
	if err := in.validate(); err != nil {
		return store.Resident{}, err
	}

	now := time.Now().UTC()
	resident, err := s.queries.CreateResident(ctx, store.CreateResidentParams{
		NIK:           in.NIK,
		Name:          in.Name,
		Gender:        in.Gender,
		BirthDate:     in.BirthDate,
		Address:       in.Address,
		RTRW:          in.RTRW,
		Religion:      in.Religion,
		MaritalStatus: in.MaritalStatus,
		Occupation:    in.Occupation,
		Phone:         in.Phone,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return store.Resident{}, ErrDuplicateNIK
		}
		return store.Resident{}, fmt.Errorf("creating resident: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionCreateResident, actor.Name, resident.Name, model.AuditTypeCreate, meta)
	return resident, nil
}

// Get fetches a resident by NIK.
func (s *ResidentService) Get(ctx context.Context, nik string) (store.Resident, error) {
	resident, err := s.queries.GetResidentByNIK(ctx, nik)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Resident{}, ErrNotFound
		}
		return store.Resident{}, fmt.Errorf("looking up resident: %w", err)
	}
	return resident, nil
}

// List returns all residents, newest first.
func (s *ResidentService) List(ctx context.Context) ([]store.Resident, error) {
	residents, err := s.queries.ListResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing residents: %w", err)
	}
	return residents, nil
}

// Update replaces a resident's record. The NIK itself is immutable.
func (s *ResidentService) Update(ctx context.Context, actor Actor, in ResidentInput, meta RequestMeta) (store.Resident, error) {
	if err := in.validate(); err != nil {
		return store.Resident{}, err
	}

	resident, err := s.queries.UpdateResident(ctx, store.UpdateResidentParams{
		Name:          in.Name,
		Gender:        in.Gender,
		BirthDate:     in.BirthDate,
		Address:       in.Address,
		RTRW:          in.RTRW,
		Religion:      in.Religion,
		MaritalStatus: in.MaritalStatus,
		Occupation:    in.Occupation,
		Phone:         in.Phone,
		UpdatedAt:     time.Now().UTC(),
		NIK:           in.NIK,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Resident{}, ErrNotFound
		}
		return store.Resident{}, fmt.Errorf("updating resident: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionUpdateResident, actor.Name, resident.Name, model.AuditTypeUpdate, meta)
	return resident, nil
}

// Delete removes a resident record.
func (s *ResidentService) Delete(ctx context.Context, actor Actor, nik string, meta RequestMeta) error {
	existing, err := s.Get(ctx, nik)
	if err != nil {
		return err
	}

	deleted, err := s.queries.DeleteResident(ctx, nik)
	if err != nil {
		return fmt.Errorf("deleting resident: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}

	s.audit.Record(ctx, model.AuditActionDeleteResident, actor.Name, existing.Name, model.AuditTypeDelete, meta)
	return nil
}
