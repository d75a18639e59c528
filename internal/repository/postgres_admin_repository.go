package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Janushan11/scout-api/internal/domain"
)

// PostgresAdminRepository implements AdminRepository using PostgreSQL
type PostgresAdminRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository
func NewPostgresAdminRepository(pool *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{pool: pool}
}

const adminColumns = `id, email, password_hash, role, created_at`

// Create creates a new admin
func (r *PostgresAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateKey
	}
	return err
}

// CreateIfAbsent inserts the admin unless the email already exists.
// Used by the bootstrap seed at startup.
func (r *PostgresAdminRepository) CreateIfAbsent(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.CreatedAt,
	)
	return err
}

// GetByID retrieves an admin by ID
func (r *PostgresAdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scanRow(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves an admin by email
func (r *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	return r.scanRow(r.pool.QueryRow(ctx, query, email))
}

// GetByEmailAndRole retrieves an admin by email scoped to a privilege tier
func (r *PostgresAdminRepository) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1 AND role = $2`
	return r.scanRow(r.pool.QueryRow(ctx, query, email, role))
}

// List returns all admins, oldest first
func (r *PostgresAdminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := make([]*domain.Admin, 0)
	for rows.Next() {
		admin := &domain.Admin{}
		if err := rows.Scan(
			&admin.ID,
			&admin.Email,
			&admin.PasswordHash,
			&admin.Role,
			&admin.CreatedAt,
		); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

// Update updates an admin
func (r *PostgresAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	query := `
		UPDATE admins
		SET email = $2, password_hash = $3, role = $4
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// Delete deletes an admin
func (r *PostgresAdminRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *PostgresAdminRepository) scanRow(row pgx.Row) (*domain.Admin, error) {
	admin := &domain.Admin{}
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}
