// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package authz holds the authorization policy: a pure mapping from
// (actor role, action, resource ownership) to allow/deny. It performs no
// I/O; callers verify identity first and pass the claims' role and id.
//
// The default is deny — an action missing from the table is never allowed.
package authz

import (
	"github.com/google/uuid"

	"newsdesk/internal/models"
)

// Action enumerates every permission-checked operation in the API.
type Action int

const (
	ActionRegisterPrivileged Action = iota // create admin/author accounts
	ActionListAdmins
	ActionListUsers
	ActionToggleActive
	ActionCreateArticle
	ActionUpdateArticle
	ActionDeleteArticle
	ActionModerateArticle
	ActionLikeArticle
	ActionCommentArticle
	ActionChangeOwnPassword
	ActionSubscribe
)

// roleActions maps each role-gated action to the roles allowed to perform
// it. Ownership-gated actions additionally require Allowed's owner check.
var roleActions = map[Action][]models.Role{
	ActionRegisterPrivileged: {models.RoleSuperAdmin, models.RoleAdmin},
	ActionListAdmins:         {models.RoleSuperAdmin},
	ActionListUsers:          {models.RoleSuperAdmin, models.RoleAdmin},
	ActionToggleActive:       {models.RoleSuperAdmin, models.RoleAdmin},
	ActionCreateArticle:      {models.RoleAuthor},
	ActionUpdateArticle:      {models.RoleAuthor},
	ActionDeleteArticle:      {models.RoleAuthor},
	ActionModerateArticle:    {models.RoleSuperAdmin, models.RoleAdmin},

	// Any authenticated identity, regardless of role.
	ActionLikeArticle:       {models.RoleSuperAdmin, models.RoleAdmin, models.RoleAuthor, models.RoleUser},
	ActionCommentArticle:    {models.RoleSuperAdmin, models.RoleAdmin, models.RoleAuthor, models.RoleUser},
	ActionChangeOwnPassword: {models.RoleSuperAdmin, models.RoleAdmin, models.RoleAuthor, models.RoleUser},
	ActionSubscribe:         {models.RoleSuperAdmin, models.RoleAdmin, models.RoleAuthor, models.RoleUser},
}

// ownershipGated marks the actions that also require the actor to own the
// target resource.
var ownershipGated = map[Action]bool{
	ActionUpdateArticle: true,
	ActionDeleteArticle: true,
}

// Allowed decides whether an actor may perform an action. ownerID is the
// owning user of the target resource, or uuid.Nil when the action has no
// ownership dimension.
func Allowed(role models.Role, actorID uuid.UUID, action Action, ownerID uuid.UUID) bool {
	if !RoleAllowed(role, action) {
		return false
	}
	if ownershipGated[action] && actorID != ownerID {
		return false
	}
	return true
}

// RoleAllowed checks only the role dimension of an action. Middleware uses
// this before the target resource has been fetched.
func RoleAllowed(role models.Role, action Action) bool {
	for _, allowed := range roleActions[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// CanToggle is the escalation guard on the active-status toggle: admins
// may toggle regular users and authors, but only a super admin may toggle
// an admin.
func CanToggle(actorRole, targetRole models.Role) bool {
	if !RoleAllowed(actorRole, ActionToggleActive) {
		return false
	}
	if targetRole == models.RoleAdmin && actorRole != models.RoleSuperAdmin {
		return false
	}
	return true
}

// CanAssignRole limits privileged registration to the admin and author
// roles; nothing may mint a super admin through the API.
func CanAssignRole(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleAuthor
}
