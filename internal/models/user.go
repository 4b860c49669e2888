// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleAuthor     Role = "author"
	RoleUser       Role = "user"
)

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleAuthor, RoleUser:
		return true
	}
	return false
}

// Privileged reports whether the role may manage users and moderate articles.
func (r Role) Privileged() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// User represents an account. Subscriptions hold the IDs of authors the
// user follows; they are loaded on demand, not with every query.
type User struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	PasswordHash  string      `json:"-"` // Never serialize the hash
	Role          Role        `json:"role"`
	Active        bool        `json:"active"`
	Subscriptions []uuid.UUID `json:"subscriptions,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// IsAuthor returns true if the user can publish articles.
func (u *User) IsAuthor() bool {
	return u.Role == RoleAuthor
}
