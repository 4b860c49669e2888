// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP endpoint groups of the API.
// Handlers never reach into a mutable request object for identity; the
// authentication middleware threads an immutable claims value through the
// context and handlers read it with middleware.ClaimsFromCtx.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/apierr"
	"newsdesk/internal/authz"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/response"
	"newsdesk/internal/store"
	"newsdesk/internal/token"
)

// Users groups the account, session, and subscription handlers.
type Users struct {
	users  *store.UserStore
	tokens *token.Service
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore, tokens *token.Service) *Users {
	return &Users{users: users, tokens: tokens}
}

type credentialsRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// Register creates a reader account. The role is always "user" here;
// privileged roles only exist through RegisterAdmin.
func (h *Users) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Err(w, apierr.Validation("Email and password are required"))
		return
	}

	user, err := h.users.Create(req.Email, req.Password, models.RoleUser)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, http.StatusCreated, map[string]any{
		"email": user.Email,
		"id":    user.ID,
		"role":  user.Role,
	}, "User registered successfully!")
}

// RegisterAdmin creates an admin or author account. The route is gated to
// super_admin and admin by the authorization middleware.
func (h *Users) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		response.Err(w, apierr.Validation("Email, password, and role are required"))
		return
	}
	if !authz.CanAssignRole(req.Role) {
		response.Err(w, apierr.Validation("Invalid role. Only admin or author can be created"))
		return
	}

	user, err := h.users.Create(req.Email, req.Password, req.Role)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, http.StatusCreated, map[string]any{
		"email": user.Email,
		"id":    user.ID,
		"role":  user.Role,
	}, "User registered successfully!")
}

// Login verifies credentials and issues a signed token. Deactivated
// accounts are rejected before the password is even checked.
func (h *Users) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Err(w, apierr.Validation("Email and password are required"))
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		response.Err(w, err)
		return
	}
	if user == nil {
		response.Err(w, apierr.NotFound("User not found"))
		return
	}
	if !user.Active {
		response.Err(w, apierr.Authentication("User account is deactivated. Please contact support."))
		return
	}
	if !h.users.CheckPassword(user, req.Password) {
		response.Err(w, apierr.Authentication("Incorrect password"))
		return
	}

	signed, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, http.StatusOK, map[string]any{
		"token": signed,
		"role":  user.Role,
	}, "Login successful")
}

// ChangePassword lets the authenticated user replace their own password
// after proving they know the current one.
func (h *Users) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		response.Err(w, apierr.Validation("Old password and new password are required"))
		return
	}

	user, err := h.users.FindByID(claims.UserID)
	if err != nil {
		response.Err(w, err)
		return
	}
	if user == nil {
		response.Err(w, apierr.NotFound("User not found"))
		return
	}
	if !h.users.CheckPassword(user, req.OldPassword) {
		response.Err(w, apierr.Authentication("Incorrect old password"))
		return
	}

	if err := h.users.UpdatePassword(user.ID, req.NewPassword); err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, http.StatusOK, nil, "Password changed successfully")
}

// AdminList returns every admin account. Super admin only.
func (h *Users) AdminList(w http.ResponseWriter, r *http.Request) {
	admins, err := h.users.ListByRole(models.RoleAdmin)
	if err != nil {
		response.Err(w, err)
		return
	}
	if len(admins) == 0 {
		response.Err(w, apierr.NotFound("No admins found"))
		return
	}
	response.OK(w, http.StatusOK, admins, "Admin list retrieved successfully")
}

// UserList returns every reader account. Admins and super admins.
func (h *Users) UserList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListByRole(models.RoleUser)
	if err != nil {
		response.Err(w, err)
		return
	}
	if len(users) == 0 {
		response.Err(w, apierr.NotFound("No users found"))
		return
	}
	response.OK(w, http.StatusOK, users, "User list retrieved successfully")
}

// ToggleUserStatus flips a user's active flag. Toggling an admin requires
// a super admin actor; admins cannot deactivate each other.
func (h *Users) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apierr.Validation("Invalid request body"))
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Err(w, apierr.Validation("Invalid user id"))
		return
	}

	target, err := h.users.FindByID(targetID)
	if err != nil {
		response.Err(w, err)
		return
	}
	if target == nil {
		response.Err(w, apierr.NotFound("User not found"))
		return
	}
	if !authz.CanToggle(claims.Role, target.Role) {
		response.Err(w, apierr.Authorization("Only Super Admin can change Admin status"))
		return
	}

	active, err := h.users.ToggleActive(target.ID)
	if err != nil {
		response.Err(w, err)
		return
	}

	message := "User deactivated successfully"
	if active {
		message = "User activated successfully"
	}
	slog.Info("user status toggled",
		"target", target.ID, "active", active, "actor", claims.UserID)

	response.OK(w, http.StatusOK, map[string]any{
		"id":     target.ID,
		"active": active,
	}, message)
}

// Subscribe adds the authenticated user to an author's subscriber list.
// Subscribing twice is idempotent.
func (h *Users) Subscribe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	authorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apierr.Validation("Invalid author id"))
		return
	}

	author, err := h.users.FindByID(authorID)
	if err != nil {
		response.Err(w, err)
		return
	}
	if author == nil || !author.IsAuthor() {
		response.Err(w, apierr.NotFound("Author not found"))
		return
	}

	added, err := h.users.Subscribe(claims.UserID, author.ID)
	if err != nil {
		response.Err(w, err)
		return
	}

	if !added {
		response.OK(w, http.StatusOK, nil, "Already subscribed")
		return
	}
	response.OK(w, http.StatusOK, nil, fmt.Sprintf("Subscribed to %s", author.Email))
}

// Unsubscribe removes the authenticated user from an author's subscriber
// list. Removing a subscription that does not exist still succeeds.
func (h *Users) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	authorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, apierr.Validation("Invalid author id"))
		return
	}

	if err := h.users.Unsubscribe(claims.UserID, authorID); err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, http.StatusOK, nil, "Unsubscribed successfully")
}
