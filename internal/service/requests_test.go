// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/model"
)

func validRequest() SubmitRequestInput {
	return SubmitRequestInput{
		NIK:        "3201012345678901",
		Name:       "Budi Santoso",
		LetterType: "Surat Keterangan Domisili",
		Purpose:    "Persyaratan pembukaan rekening bank",
	}
}

func TestRequestSubmit(t *testing.T) {
	env := newTestEnv(t)

	request, err := env.requests.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, model.RequestStatusWaiting, request.Status)
	assert.Regexp(t, regexp.MustCompile(`^SKD-\d{8}-[0-9a-f]{6}$`), request.Ref)
	assert.Zero(t, env.auditCount(t), "public intake is not audited")
}

func TestRequestSubmit_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*SubmitRequestInput)
	}{
		{"short nik", func(in *SubmitRequestInput) { in.NIK = "123" }},
		{"empty name", func(in *SubmitRequestInput) { in.Name = " " }},
		{"unknown letter type", func(in *SubmitRequestInput) { in.LetterType = "Surat Sakti" }},
		{"empty purpose", func(in *SubmitRequestInput) { in.Purpose = "" }},
		{"purpose only markup", func(in *SubmitRequestInput) { in.Purpose = "<script></script>" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRequest()
			tt.mutate(&in)
			_, err := env.requests.Submit(ctx, in)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestRequestSubmit_SanitizesPurpose(t *testing.T) {
	env := newTestEnv(t)

	in := validRequest()
	in.Purpose = `Untuk <script>alert("x")</script>bank`
	request, err := env.requests.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.NotContains(t, request.Purpose, "<script>")
	assert.Contains(t, request.Purpose, "bank")
}

func TestRequestTrack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.requests.Submit(ctx, validRequest())
	require.NoError(t, err)

	found, err := env.requests.Track(ctx, created.Ref)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = env.requests.Track(ctx, "SKD-00000000-ffffff")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.requests.Submit(ctx, validRequest())
	require.NoError(t, err)

	updated, err := env.requests.UpdateStatus(ctx, staffActor, created.ID,
		model.RequestStatusProcessing, "Sedang diverifikasi", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusProcessing, updated.Status)
	assert.Equal(t, "Sedang diverifikasi", updated.Notes)

	entry := env.lastAuditEntry(t)
	assert.Equal(t, model.AuditActionUpdateRequest, entry.Action)
	assert.Contains(t, entry.Target, created.Ref)

	pending, err := env.requests.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestRequestUpdateStatus_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.requests.Submit(ctx, validRequest())
	require.NoError(t, err)

	_, err = env.requests.UpdateStatus(ctx, staffActor, 0, model.RequestStatusDone, "", RequestMeta{})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = env.requests.UpdateStatus(ctx, staffActor, created.ID, "Hilang", "", RequestMeta{})
	assert.True(t, IsValidation(err))

	_, err = env.requests.UpdateStatus(ctx, staffActor, 9999, model.RequestStatusDone, "", RequestMeta{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRequestRef_FallbackCode(t *testing.T) {
	ref := newRequestRef("???", time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^SRT-20260830-[0-9a-f]{6}$`), ref)
}
