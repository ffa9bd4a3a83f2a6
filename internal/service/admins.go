// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartwarga/smartwarga-go/internal/auth"
	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/policy"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

// Actor identifies who performs an administrative operation. The role drives
// authorization, the name is recorded in the audit log.
type Actor struct {
	Name string
	Role string
}

// AdminService manages administrator accounts: login, creation, updates,
// deletion, and listing. Every mutation is audited best-effort after it
// succeeds.
type AdminService struct {
	queries *store.Queries
	audit   *AuditService
	log     *slog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(db *sql.DB, audit *AuditService, log *slog.Logger) *AdminService {
	return &AdminService{queries: store.New(db), audit: audit, log: log}
}

func adminView(a store.Admin) model.AdminView {
	return model.AdminView{
		ID:        a.ID,
		Username:  a.Username,
		Name:      a.Name,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

// Login authenticates an administrator by username and password. Unknown
// usernames and wrong passwords both return ErrInvalidCredentials. A
// successful login is audited and upgrades the stored hash when the hashing
// parameters have changed.
func (s *AdminService) Login(ctx context.Context, username, password string, meta RequestMeta) (model.AdminView, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.AdminView{}, ErrInvalidCredentials
	}

	admin, err := s.queries.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AdminView{}, ErrInvalidCredentials
		}
		return model.AdminView{}, fmt.Errorf("looking up admin: %w", err)
	}

	ok, err := auth.CheckPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return model.AdminView{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(admin.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateAdminPassword(ctx, store.UpdateAdminPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now().UTC(),
				ID:           admin.ID,
			}); err != nil {
				s.log.Warn("credential rehash failed", "admin_id", admin.ID, "error", err)
			}
		}
	}

	s.audit.Record(ctx, model.AuditActionLoginAdmin, admin.Name, admin.Username, model.AuditTypeLogin, meta)
	return adminView(admin), nil
}

// CreateAdminInput holds the fields for a new administrator account.
type CreateAdminInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

// Create adds a new administrator account. Only a Super Admin may do this.
func (s *AdminService) Create(ctx context.Context, actor Actor, in CreateAdminInput, meta RequestMeta) (model.AdminView, error) {
	if !policy.Authorize(actor.Role, policy.ActionCreateAdmin) {
		return model.AdminView{}, ErrForbidden
	}

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return model.AdminView{}, &ValidationError{Field: "username", Reason: "required"}
	}
	if in.Password == "" {
		return model.AdminView{}, &ValidationError{Field: "password", Reason: "required"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.AdminView{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if in.Role == "" {
		in.Role = model.RoleStaff
	}
	if !model.IsValidRole(in.Role) {
		return model.AdminView{}, &ValidationError{Field: "role", Reason: "unknown role"}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return model.AdminView{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	admin, err := s.queries.CreateAdmin(ctx, store.CreateAdminParams{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.AdminView{}, ErrDuplicateUsername
		}
		return model.AdminView{}, fmt.Errorf("creating admin: %w", err)
	}

	s.audit.Record(ctx, model.AuditActionCreateAdmin, actor.Name, admin.Username, model.AuditTypeCreate, meta)
	return adminView(admin), nil
}

// UpdateAdminInput holds a partial update of an administrator account.
// Nil fields keep their current value.
type UpdateAdminInput struct {
	ID       int64
	Username *string
	Password *string
	Name     *string
	Role     *string
}

// Update modifies an administrator account. Only a Super Admin may do this.
// Omitted fields are left untouched; a new password is re-hashed.
func (s *AdminService) Update(ctx context.Context, actor Actor, in UpdateAdminInput, meta RequestMeta) (model.AdminView, error) {
	if in.ID == 0 {
		return model.AdminView{}, ErrMissingID
	}
	if !policy.Authorize(actor.Role, policy.ActionUpdateAdmin) {
		return model.AdminView{}, ErrForbidden
	}

	existing, err := s.queries.GetAdminByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AdminView{}, ErrNotFound
		}
		return model.AdminView{}, fmt.Errorf("looking up admin: %w", err)
	}

	username := existing.Username
	if in.Username != nil {
		username = strings.TrimSpace(*in.Username)
		if username == "" {
			return model.AdminView{}, &ValidationError{Field: "username", Reason: "required"}
		}
	}
	name := existing.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return model.AdminView{}, &ValidationError{Field: "name", Reason: "required"}
		}
	}
	role := existing.Role
	if in.Role != nil {
		role = *in.Role
		if !model.IsValidRole(role) {
			return model.AdminView{}, &ValidationError{Field: "role", Reason: "unknown role"}
		}
	}

	if username != existing.Username {
		taken, err := s.queries.CountAdminsByUsernameExcluding(ctx, username, in.ID)
		if err != nil {
			return model.AdminView{}, fmt.Errorf("checking username: %w", err)
		}
		if taken > 0 {
			return model.AdminView{}, ErrDuplicateUsername
		}
	}

	updated, err := s.queries.UpdateAdmin(ctx, store.UpdateAdminParams{
		Username:  username,
		Name:      name,
		Role:      role,
		UpdatedAt: time.Now().UTC(),
		ID:        in.ID,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return model.AdminView{}, ErrDuplicateUsername
		}
		return model.AdminView{}, fmt.Errorf("updating admin: %w", err)
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return model.AdminView{}, fmt.Errorf("hashing password: %w", err)
		}
		if err := s.queries.UpdateAdminPassword(ctx, store.UpdateAdminPasswordParams{
			PasswordHash: hash,
			UpdatedAt:    time.Now().UTC(),
			ID:           in.ID,
		}); err != nil {
			return model.AdminView{}, fmt.Errorf("updating password: %w", err)
		}
	}

	s.audit.Record(ctx, model.AuditActionUpdateAdmin, actor.Name, updated.Username, model.AuditTypeUpdate, meta)
	return adminView(updated), nil
}

// Delete removes an administrator account. Only a Super Admin may do this,
// and the last remaining Super Admin account can never be deleted. The guard
// is enforced inside the delete statement, so concurrent deletes cannot
// remove the final Super Admin.
func (s *AdminService) Delete(ctx context.Context, actor Actor, id int64, meta RequestMeta) error {
	if id == 0 {
		return ErrMissingID
	}
	if !policy.Authorize(actor.Role, policy.ActionDeleteAdmin) {
		return ErrForbidden
	}

	existing, err := s.queries.GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("looking up admin: %w", err)
	}

	deleted, err := s.queries.DeleteAdminGuarded(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting admin: %w", err)
	}
	if deleted == 0 {
		if existing.Role == model.RoleSuperAdmin {
			return ErrLastSuperAdmin
		}
		return ErrNotFound
	}

	s.audit.Record(ctx, model.AuditActionDeleteAdmin, actor.Name, existing.Username, model.AuditTypeDelete, meta)
	return nil
}

// List returns all administrator accounts, newest first, without credential
// material.
func (s *AdminService) List(ctx context.Context) ([]model.AdminView, error) {
	admins, err := s.queries.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}

	views := make([]model.AdminView, 0, len(admins))
	for _, a := range admins {
		views = append(views, adminView(a))
	}
	return views, nil
}
