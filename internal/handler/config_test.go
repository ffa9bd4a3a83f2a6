// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwarga/smartwarga-go/internal/model"
)

func pngLogoBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	return buf.Bytes()
}

func TestGetConfig(t *testing.T) {
	th := newTestHandler(t, nil)
	th.seedBaseline(t)

	code, envelope := th.do(t, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, code)

	data := dataMap(t, envelope)
	assert.Equal(t, "default", data["id"])
	assert.NotEmpty(t, data["rtName"])
	assert.NotEmpty(t, data["appName"])
}

func TestGetConfig_NotSeeded(t *testing.T) {
	th := newTestHandler(t, nil)

	code, envelope := th.do(t, http.MethodGet, "/config", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, envelope["success"])
}

func TestUpdateConfig_PreservesUnspecifiedFields(t *testing.T) {
	th := newTestHandler(t, nil)
	th.seedBaseline(t)

	code, before := th.do(t, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, code)
	original := dataMap(t, before)

	code, envelope := th.do(t, http.MethodPut, "/config", map[string]any{
		"rtName":        "RT 007 / RW 002",
		"requesterRole": model.RoleSuperAdmin,
		"currentUser":   "Pak RT",
	})
	require.Equal(t, http.StatusOK, code)

	data := dataMap(t, envelope)
	assert.Equal(t, "RT 007 / RW 002", data["rtName"])
	assert.Equal(t, original["rtWhatsapp"], data["rtWhatsapp"])
	assert.Equal(t, original["appName"], data["appName"])
}

func TestUploadLogo(t *testing.T) {
	th := newTestHandler(t, nil)
	th.seedBaseline(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write(pngLogoBytes(t))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("requesterRole", model.RoleSuperAdmin))
	require.NoError(t, mw.WriteField("currentUser", "Pak RT"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/config/logo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	th.h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	data := dataMap(t, envelope)
	logo, ok := data["appLogo"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(logo, "/uploads/logo/"), logo)
	assert.True(t, strings.HasSuffix(logo, ".png"), logo)
}

func TestUploadLogo_RejectsNonImage(t *testing.T) {
	th := newTestHandler(t, nil)
	th.seedBaseline(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("logo", "logo.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("bukan gambar"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/config/logo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	th.h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
