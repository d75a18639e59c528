package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Janushan11/scout-api/internal/domain"
)

// PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, name, email, phone_number, password_hash, role, duty_minutes, registered_at`

// Create creates a new user. Uniqueness of phone number and email is
// enforced by the database, so concurrent duplicate registrations resolve
// to exactly one winner.
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, phone_number, password_hash, role, duty_minutes, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		nullIfEmpty(user.Email),
		user.PhoneNumber,
		user.PasswordHash,
		user.Role,
		user.DutyMinutes,
		user.RegisteredAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateKey
	}
	return err
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// GetByPhone retrieves a user by phone number
func (r *PostgresUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.queryOne(ctx, query, phone)
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.queryOne(ctx, query, email)
}

// FindByName returns all users whose name matches case-insensitively,
// earliest-registered first
func (r *PostgresUserRepository) FindByName(ctx context.Context, name string) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE lower(name) = lower($1)
		ORDER BY registered_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Update rewrites a user's mutable profile fields
func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, phone_number = $4, password_hash = $5
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		nullIfEmpty(user.Email),
		user.PhoneNumber,
		user.PasswordHash,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete deletes a user
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// IncrementDuty adds delta minutes to a user's total in a single statement,
// so concurrent entries on the same user never lose an update
func (r *PostgresUserRepository) IncrementDuty(ctx context.Context, id string, delta int64) (*domain.User, error) {
	query := `
		UPDATE users
		SET duty_minutes = duty_minutes + $2
		WHERE id = $1
		RETURNING ` + userColumns
	user, err := r.scanRow(r.pool.QueryRow(ctx, query, id, delta))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ListRankedByDuty returns all users in leaderboard order
func (r *PostgresUserRepository) ListRankedByDuty(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY duty_minutes DESC, registered_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *PostgresUserRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	return r.scanRow(r.pool.QueryRow(ctx, query, args...))
}

func (r *PostgresUserRepository) scanRow(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	var email *string
	err := row.Scan(
		&user.ID,
		&user.Name,
		&email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Role,
		&user.DutyMinutes,
		&user.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if email != nil {
		user.Email = *email
	}
	return user, nil
}

func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		var email *string
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&email,
			&user.PhoneNumber,
			&user.PasswordHash,
			&user.Role,
			&user.DutyMinutes,
			&user.RegisteredAt,
		); err != nil {
			return nil, err
		}
		if email != nil {
			user.Email = *email
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// nullIfEmpty stores empty optional strings as NULL so the partial unique
// index on email ignores users registered without one
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
