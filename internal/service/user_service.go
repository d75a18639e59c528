package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/dto"
	"github.com/Janushan11/scout-api/internal/repository"
	"github.com/Janushan11/scout-api/pkg/telemetry"
)

// UserService defines the interface for registration and user management
type UserService interface {
	// Register creates a new scout with a zero duty total. Email and
	// password are optional; duplicates on phone or email fail with
	// domain.ErrDuplicateKey.
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	// IssueBadge derives the scannable badge payload for a user
	IssueBadge(ctx context.Context, id string) (*domain.BadgePayload, error)
	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)
	// Update edits a user's profile fields
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*domain.User, error)
	// Delete removes a user
	Delete(ctx context.Context, id string) error
}

// userService implements UserService
type userService struct {
	userRepo   repository.UserRepository
	cache      *repository.LeaderboardCache
	bcryptCost int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, cache *repository.LeaderboardCache) UserService {
	return &userService{
		userRepo:   userRepo,
		cache:      cache,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a new scout record
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.register")
	defer span.End()

	passwordHash := ""
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		passwordHash = string(hashed)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		DutyMinutes:  0,
		RegisteredAt: time.Now(),
	}

	// The store arbitrates duplicates: never check-then-insert
	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	_ = s.cache.Invalidate(ctx)

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return user, nil
}

// IssueBadge derives the badge payload for a user. The badge id is freshly
// generated per issuance; nothing is stored.
func (s *userService) IssueBadge(ctx context.Context, id string) (*domain.BadgePayload, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.issue_badge")
	defer span.End()

	user, err := s.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return &domain.BadgePayload{
		BadgeID:      uuid.New().String(),
		Name:         user.Name,
		PhoneNumber:  user.PhoneNumber,
		RegisteredAt: user.RegisteredAt,
	}, nil
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.get")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", id))

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}
	span.SetStatus(codes.Ok, "")
	return user, nil
}

// Update edits a user's profile fields
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update")
	defer span.End()

	user, err := s.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	_ = s.cache.Invalidate(ctx)

	span.SetStatus(codes.Ok, "")
	return user, nil
}

// Delete removes a user
func (s *userService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.user.delete")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", id))

	if err := s.userRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_ = s.cache.Invalidate(ctx)

	span.SetStatus(codes.Ok, "")
	return nil
}
