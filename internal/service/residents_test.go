// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/model"
)

func validResident() ResidentInput {
	return ResidentInput{
		NIK:           "3201012345678901",
		Name:          "Budi Santoso",
		Gender:        "Laki-laki",
		BirthDate:     "1985-04-12",
		Address:       "Jl. Melati No. 7",
		RTRW:          "001/005",
		Religion:      "Islam",
		MaritalStatus: "Kawin",
		Occupation:    "Wiraswasta",
		Phone:         "6281298765432",
	}
}

func TestResidentCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resident, err := env.residents.Create(ctx, staffActor, validResident(), RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", resident.Name)

	entry := env.lastAuditEntry(t)
	assert.Equal(t, model.AuditActionCreateResident, entry.Action)
	assert.Equal(t, "Budi Santoso", entry.Target)
}

func TestResidentCreate_BadNIK(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, nik := range []string{"", "123", "32010123456789012", "32010123456789ab"} {
		in := validResident()
		in.NIK = nik
		_, err := env.residents.Create(ctx, staffActor, in, RequestMeta{})
		assert.True(t, IsValidation(err), "nik %q should be rejected", nik)
	}
}

func TestResidentCreate_DuplicateNIK(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.residents.Create(ctx, staffActor, validResident(), RequestMeta{})
	require.NoError(t, err)

	_, err = env.residents.Create(ctx, staffActor, validResident(), RequestMeta{})
	assert.ErrorIs(t, err, ErrDuplicateNIK)
}

func TestResidentUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.residents.Create(ctx, staffActor, validResident(), RequestMeta{})
	require.NoError(t, err)

	in := validResident()
	in.Address = "Jl. Mawar No. 3"
	updated, err := env.residents.Update(ctx, staffActor, in, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "Jl. Mawar No. 3", updated.Address)

	in.NIK = "9999999999999999"
	_, err = env.residents.Update(ctx, staffActor, in, RequestMeta{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResidentDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.residents.Create(ctx, staffActor, validResident(), RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, env.residents.Delete(ctx, staffActor, created.NIK, RequestMeta{}))
	assert.ErrorIs(t, env.residents.Delete(ctx, staffActor, created.NIK, RequestMeta{}), ErrNotFound)

	_, err = env.residents.Get(ctx, created.NIK)
	assert.ErrorIs(t, err, ErrNotFound)
}
