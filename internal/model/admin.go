// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and view types shared across the
// application: administrator roles, audit actions, and letter request statuses.
package model

import "time"

// Administrator roles
const (
	RoleSuperAdmin = "Super Admin"
	RoleStaff      = "Staff"
)

// ValidRoles contains all valid administrator roles.
var ValidRoles = []string{RoleSuperAdmin, RoleStaff}

// IsValidRole checks if a role is one of the known administrator roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AdminView is the public projection of an administrator account.
// It never carries the credential hash.
type AdminView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
