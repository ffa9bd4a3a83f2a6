// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "time"

// Admin represents an administrator account row.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuditEntry represents an append-only audit log row.
type AuditEntry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"user"`
	Target    string    `json:"target"`
	Type      string    `json:"type"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

// Resident represents a resident registry row, keyed by NIK.
type Resident struct {
	NIK           string    `json:"nik"`
	Name          string    `json:"name"`
	Gender        string    `json:"gender"`
	BirthDate     string    `json:"birthDate"`
	Address       string    `json:"address"`
	RTRW          string    `json:"rtRw"`
	Religion      string    `json:"religion"`
	MaritalStatus string    `json:"maritalStatus"`
	Occupation    string    `json:"occupation"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LetterRequest represents a service letter request row.
type LetterRequest struct {
	ID         int64     `json:"id"`
	Ref        string    `json:"ref"`
	NIK        string    `json:"nik"`
	Name       string    `json:"name"`
	LetterType string    `json:"letterType"`
	Purpose    string    `json:"purpose"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RTConfig represents the single site configuration row.
type RTConfig struct {
	ID         string    `json:"id"`
	RTName     string    `json:"rtName"`
	RTWhatsapp string    `json:"rtWhatsapp"`
	RTEmail    string    `json:"rtEmail"`
	AppName    string    `json:"appName"`
	AppLogo    string    `json:"appLogo"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
