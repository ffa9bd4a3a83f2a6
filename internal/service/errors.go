// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the business logic layer: administrator account
// lifecycle, resident registry, letter requests, site configuration, and
// audit recording. Services validate input, apply authorization rules, and
// drive the store; handlers only translate HTTP.
package service

import "errors"

// Taxonomy of business errors. Handlers map these to HTTP status codes and
// the i18n package maps them to localized messages.
var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords
	// alike so a caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when the requester's role does not permit
	// the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateUsername is returned when a create or update would reuse
	// an existing username.
	ErrDuplicateUsername = errors.New("duplicate username")

	// ErrMissingID is returned when a mutation omits the account identifier.
	ErrMissingID = errors.New("missing id")

	// ErrLastSuperAdmin is returned when a delete would remove the only
	// remaining Super Admin account.
	ErrLastSuperAdmin = errors.New("last super admin protected")

	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateNIK is returned when a resident registration reuses an
	// existing NIK.
	ErrDuplicateNIK = errors.New("duplicate nik")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
