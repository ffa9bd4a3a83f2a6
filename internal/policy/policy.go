// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package policy holds the pure authorization rules for administrative
// actions. It performs no I/O and has no side effects.
package policy

import "github.com/smartwarga/smartwarga-go/internal/model"

// Action identifies an administrative operation subject to authorization.
type Action string

// Administrative actions
const (
	ActionLogin       Action = "login"
	ActionListAdmins  Action = "list_admins"
	ActionCreateAdmin Action = "create_admin"
	ActionUpdateAdmin Action = "update_admin"
	ActionDeleteAdmin Action = "delete_admin"
)

// superAdminOnly lists the actions reserved for the Super Admin role.
var superAdminOnly = map[Action]bool{
	ActionCreateAdmin: true,
	ActionUpdateAdmin: true,
	ActionDeleteAdmin: true,
}

// Authorize decides whether a requester with the given role may perform the
// action. Login is self-service and listing is open to any caller; account
// management requires the Super Admin role.
func Authorize(requesterRole string, action Action) bool {
	if !superAdminOnly[action] {
		return true
	}
	return requesterRole == model.RoleSuperAdmin
}
