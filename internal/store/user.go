// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all newsdesk
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/apierr"
	"newsdesk/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, role, active, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := scanner.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user by email, matched case-insensitively.
// Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users WHERE LOWER(email) = LOWER($1)
	`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Create inserts a new user with a bcrypt-hashed password. A duplicate
// email (case-insensitive, enforced by the unique index) surfaces as a
// conflict error.
func (s *UserStore) Create(email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := scanUser(s.db.QueryRow(`
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, email, string(hash), role))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apierr.Conflict("User with this email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *UserStore) CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdatePassword replaces the user's password hash.
func (s *UserStore) UpdatePassword(id uuid.UUID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, string(hash), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ToggleActive flips the user's active flag in a single statement and
// returns the new value. Returns sql.ErrNoRows if the user does not exist.
func (s *UserStore) ToggleActive(id uuid.UUID) (bool, error) {
	var active bool
	err := s.db.QueryRow(`
		UPDATE users SET active = NOT active, updated_at = NOW()
		WHERE id = $1
		RETURNING active
	`, id).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("toggle active: %w", err)
	}
	return active, nil
}

// ListByRole returns all users holding any of the given roles, ordered by
// creation date. The password hash is never selected.
func (s *UserStore) ListByRole(roles ...models.Role) ([]models.User, error) {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	rows, err := s.db.Query(`
		SELECT id, email, role, active, created_at, updated_at
		FROM users WHERE role = ANY($1)
		ORDER BY created_at ASC
	`, names)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Subscribe adds a subscription from user to author. It is idempotent;
// the returned bool reports whether a new subscription was created.
func (s *UserStore) Subscribe(userID, authorID uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO subscriptions (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("subscribe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("subscribe rows affected: %w", err)
	}
	return n > 0, nil
}

// Unsubscribe removes a subscription. Removing a non-existent one is not
// an error.
func (s *UserStore) Unsubscribe(userID, authorID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM subscriptions WHERE user_id = $1 AND author_id = $2
	`, userID, authorID)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

// Subscriptions returns the author IDs the user is subscribed to.
func (s *UserStore) Subscriptions(userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(`
		SELECT author_id FROM subscriptions WHERE user_id = $1 ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SubscriberEmails returns the email addresses of everyone subscribed to
// the given author. Used to build the notification recipient list.
func (s *UserStore) SubscriberEmails(authorID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT u.email
		FROM subscriptions sub
		JOIN users u ON u.id = sub.user_id
		WHERE sub.author_id = $1 AND u.active
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list subscriber emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan subscriber email: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
