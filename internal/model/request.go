// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Letter request statuses. The intake form creates requests as Menunggu;
// administrators move them through the remaining states.
const (
	RequestStatusWaiting    = "Menunggu"
	RequestStatusProcessing = "Diproses"
	RequestStatusDone       = "Selesai"
	RequestStatusRejected   = "Ditolak"
)

// ValidRequestStatuses contains all valid letter request statuses.
var ValidRequestStatuses = []string{
	RequestStatusWaiting,
	RequestStatusProcessing,
	RequestStatusDone,
	RequestStatusRejected,
}

// IsValidRequestStatus checks if a status is one of the known request statuses.
func IsValidRequestStatus(status string) bool {
	for _, s := range ValidRequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// LetterTypes lists the document kinds residents can request.
var LetterTypes = []string{
	"Surat Keterangan Domisili",
	"Surat Keterangan Pindah",
	"Surat Izin Nikah (N1-N4)",
	"Surat Izin Keramaian",
	"Surat Kematian",
	"SKTM (Surat Keterangan Tidak Mampu)",
}

// IsValidLetterType checks if a letter type is one of the offered documents.
func IsValidLetterType(t string) bool {
	for _, lt := range LetterTypes {
		if lt == t {
			return true
		}
	}
	return false
}
