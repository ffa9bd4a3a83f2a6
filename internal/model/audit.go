// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Audit entry types (coarse categories)
const (
	AuditTypeLogin  = "LOGIN"
	AuditTypeCreate = "CREATE"
	AuditTypeUpdate = "UPDATE"
	AuditTypeDelete = "DELETE"
	AuditTypeSystem = "SYSTEM"
)

// Audit actions (fixed label set)
const (
	AuditActionLoginAdmin     = "Login Admin"
	AuditActionCreateAdmin    = "Tambah Admin Baru"
	AuditActionUpdateAdmin    = "Edit Admin"
	AuditActionDeleteAdmin    = "Hapus Admin"
	AuditActionCreateResident = "Tambah Data Warga"
	AuditActionUpdateResident = "Edit Data Warga"
	AuditActionDeleteResident = "Hapus Data Warga"
	AuditActionUpdateRequest  = "Update Status Surat"
	AuditActionUpdateConfig   = "Edit Konfigurasi RT"
	AuditActionSystemWarning  = "Peringatan Sistem"
)
