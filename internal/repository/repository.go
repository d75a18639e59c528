package repository

import (
	"context"

	"github.com/Janushan11/scout-api/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create persists a new user; returns domain.ErrDuplicateKey when a
	// unique field (phone number, email) collides with an existing record
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID, (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByPhone retrieves a user by phone number, (nil, nil) when absent
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// GetByEmail retrieves a user by email, (nil, nil) when absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByName returns all case-insensitive exact name matches,
	// earliest-registered first
	FindByName(ctx context.Context, name string) ([]*domain.User, error)
	// Update rewrites a user's mutable profile fields
	Update(ctx context.Context, user *domain.User) error
	// Delete removes a user
	Delete(ctx context.Context, id string) error
	// IncrementDuty atomically adds delta minutes to a user's total and
	// returns the updated record
	IncrementDuty(ctx context.Context, id string, delta int64) (*domain.User, error)
	// ListRankedByDuty returns all users ordered by duty minutes descending,
	// ties broken by registration time (earlier first)
	ListRankedByDuty(ctx context.Context) ([]*domain.User, error)
}

// AdminRepository defines the interface for admin data access
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	// CreateIfAbsent inserts the admin unless the email is already taken;
	// used by the bootstrap seed so restarts are idempotent
	CreateIfAbsent(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// GetByEmailAndRole retrieves an admin by email scoped to a privilege
	// tier, (nil, nil) when no such admin exists in that tier
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) error
	Delete(ctx context.Context, id string) error
}
