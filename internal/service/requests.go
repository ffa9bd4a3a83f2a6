// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/store"
	"github.com/smartwarga/smartwarga-go/internal/util"
)

// RequestService manages letter requests: public intake and tracking plus
// administrative status transitions.
type RequestService struct {
	queries   *store.Queries
	audit     *AuditService
	sanitizer *bluemonday.Policy
}

// NewRequestService creates a new RequestService.
func NewRequestService(db *sql.DB, audit *AuditService) *RequestService {
	return &RequestService{
		queries:   store.New(db),
		audit:     audit,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// SubmitRequestInput holds the public intake form fields.
type SubmitRequestInput struct {
	NIK        string
	Name       string
	LetterType string
	Purpose    string
}

// Submit accepts a letter request from a resident. The request starts in the
// waiting status and receives a public reference code for tracking.
func (s *RequestService) Submit(ctx context.Context, in SubmitRequestInput) (store.LetterRequest, error) {
	in.NIK = strings.TrimSpace(in.NIK)
	if !nikPattern.MatchString(in.NIK) {
		return store.LetterRequest{}, &ValidationError{Field: "nik", Reason: "must be 16 digits"}
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return store.LetterRequest{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if !model.IsValidLetterType(in.LetterType) {
		return store.LetterRequest{}, &ValidationError{Field: "letterType", Reason: "unknown letter type"}
	}
	purpose := strings.TrimSpace(s.sanitizer.Sanitize(in.Purpose))
	if purpose == "" {
		return store.LetterRequest{}, &ValidationError{Field: "purpose", Reason: "required"}
	}

	now := time.Now().UTC()
	request, err := s.queries.CreateRequest(ctx, store.CreateRequestParams{
		Ref:        newRequestRef(in.LetterType, now),
		NIK:        in.NIK,
		Name:       in.Name,
		LetterType: in.LetterType,
		Purpose:    purpose,
		Status:     model.RequestStatusWaiting,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return store.LetterRequest{}, fmt.Errorf("creating request: %w", err)
	}
	return request, nil
}

// Track fetches a letter request by its public reference code.
func (s *RequestService) Track(ctx context.Context, ref string) (store.LetterRequest, error) {
	request, err := s.queries.GetRequestByRef(ctx, strings.TrimSpace(ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.LetterRequest{}, ErrNotFound
		}
		return store.LetterRequest{}, fmt.Errorf("looking up request: %w", err)
	}
	return request, nil
}

// List returns all letter requests, newest first.
func (s *RequestService) List(ctx context.Context) ([]store.LetterRequest, error) {
	requests, err := s.queries.ListRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	return requests, nil
}

// PendingCount returns the number of requests still waiting for processing.
func (s *RequestService) PendingCount(ctx context.Context) (int64, error) {
	return s.queries.CountRequestsByStatus(ctx, model.RequestStatusWaiting)
}

// UpdateStatus moves a request to a new status with an optional note for the
// requester. Notes pass through the HTML sanitizer before storage.
func (s *RequestService) UpdateStatus(ctx context.Context, actor Actor, id int64, status, notes string, meta RequestMeta) (store.LetterRequest, error) {
	if id == 0 {
		return store.LetterRequest{}, ErrMissingID
	}
	if !model.IsValidRequestStatus(status) {
		return store.LetterRequest{}, &ValidationError{Field: "status", Reason: "unknown status"}
	}

	request, err := s.queries.UpdateRequestStatus(ctx, store.UpdateRequestStatusParams{
		Status:    status,
		Notes:     strings.TrimSpace(s.sanitizer.Sanitize(notes)),
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.LetterRequest{}, ErrNotFound
		}
		return store.LetterRequest{}, fmt.Errorf("updating request: %w", err)
	}

	target := fmt.Sprintf("%s (%s)", request.Ref, status)
	s.audit.Record(ctx, model.AuditActionUpdateRequest, actor.Name, target, model.AuditTypeUpdate, meta)
	return request, nil
}

// newRequestRef builds a reference code like "SKD-20260830-1a2b3c": the
// initials of the letter type, the submission date, and a random suffix.
func newRequestRef(letterType string, now time.Time) string {
	var initials strings.Builder
	for _, word := range strings.Split(util.Slugify(letterType), "-") {
		if word != "" {
			initials.WriteByte(word[0])
		}
	}

	code := strings.ToUpper(initials.String())
	if code == "" {
		code = "SRT"
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s-%s-%s", code, now.Format("20060102"), suffix)
}
