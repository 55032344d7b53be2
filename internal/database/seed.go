package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"funews/internal/auth"
	"funews/internal/models"
)

const (
	seedAdminEmail    = "admin@funews.local"
	seedAdminPassword = "admin"
)

// Seed populates an empty development database with an Admin account so the
// API can be exercised without a manual bootstrap step.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE NOT is_deleted").Scan(&count); err != nil {
		return fmt.Errorf("seed check accounts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := auth.HashPassword(seedAdminPassword)
	if err != nil {
		return fmt.Errorf("seed hash password: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO accounts (account_name, account_email, account_role, account_password)
		VALUES ($1, $2, $3, $4)
	`, "Administrator", seedAdminEmail, string(models.RoleAdmin), hash)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin account",
		"email", seedAdminEmail,
		"password", seedAdminPassword,
	)

	return nil
}
