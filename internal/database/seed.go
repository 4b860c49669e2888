package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed creates the bootstrap super admin account if no users exist yet.
// Every other privileged account is created through the API by an existing
// admin, so this is the only account that ever bypasses it.
func Seed(db *sql.DB, email, password string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, 'super_admin')
	`, email, string(hash))
	if err != nil {
		return fmt.Errorf("seed insert super admin: %w", err)
	}

	slog.Info("database seeded with super admin", "email", email)
	return nil
}
