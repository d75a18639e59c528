package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema bootstrap, run once at startup. Every statement is idempotent so
// restarts are safe without a migration tool.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255),
		phone_number VARCHAR(20) NOT NULL,
		password_hash VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		duty_minutes BIGINT NOT NULL DEFAULT 0 CHECK (duty_minutes >= 0),
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_phone_number ON users (phone_number)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email) WHERE email IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_users_duty_rank ON users (duty_minutes DESC, registered_at ASC)`,
	`CREATE INDEX IF NOT EXISTS idx_users_lower_name ON users (lower(name))`,

	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL CHECK (role IN ('primary', 'secondary')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email ON admins (email)`,
}

// Migrate creates the tables and indexes the service needs
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
