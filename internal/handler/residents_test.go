// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/model"
)

func residentBody(nik, name string) map[string]any {
	return map[string]any{
		"nik":           nik,
		"name":          name,
		"gender":        "Laki-laki",
		"birthDate":     "1988-04-12",
		"address":       "Jl. Melati No. 7",
		"rtRw":          "001/005",
		"religion":      "Islam",
		"maritalStatus": "Kawin",
		"occupation":    "Wiraswasta",
		"phone":         "6281234567890",
		"requesterRole": model.RoleSuperAdmin,
		"currentUser":   "Pak RT",
	}
}

func TestResidentCRUD(t *testing.T) {
	th := newTestHandler(t, nil)

	code, envelope := th.do(t, http.MethodPost, "/residents", residentBody("3201010101880001", "Budi Santoso"))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Budi Santoso", dataMap(t, envelope)["name"])

	code, envelope = th.do(t, http.MethodGet, "/residents?nik=3201010101880001", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "3201010101880001", dataMap(t, envelope)["nik"])

	body := residentBody("3201010101880001", "Budi Santoso")
	body["occupation"] = "PNS"
	code, envelope = th.do(t, http.MethodPut, "/residents", body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "PNS", dataMap(t, envelope)["occupation"])

	code, envelope = th.do(t, http.MethodGet, "/residents", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, dataList(t, envelope), 1)

	code, envelope = th.do(t, http.MethodDelete,
		"/residents?nik=3201010101880001&requesterRole=Super+Admin&currentUser=Pak+RT", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, envelope["success"])

	code, _ = th.do(t, http.MethodGet, "/residents?nik=3201010101880001", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateResident_DuplicateNIK(t *testing.T) {
	th := newTestHandler(t, nil)

	code, _ := th.do(t, http.MethodPost, "/residents", residentBody("3201010101880001", "Budi Santoso"))
	require.Equal(t, http.StatusOK, code)

	code, envelope := th.do(t, http.MethodPost, "/residents", residentBody("3201010101880001", "Budi Kembar"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NIK sudah terdaftar", envelope["error"])
}

func TestCreateResident_InvalidNIK(t *testing.T) {
	th := newTestHandler(t, nil)

	code, envelope := th.do(t, http.MethodPost, "/residents", residentBody("12345", "Budi Santoso"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, envelope["success"])
}
