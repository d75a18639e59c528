package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/dto"
	"github.com/Janushan11/scout-api/internal/repository"
	"github.com/Janushan11/scout-api/pkg/telemetry"
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService defines the interface for authentication and admin management
type AuthService interface {
	// Authenticate validates email+password scoped to an admin tier and
	// issues a session token
	Authenticate(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// VerifyToken validates a token and returns its claims
	VerifyToken(ctx context.Context, token string) (*domain.Claims, error)
	// CreateAdmin creates a new admin account (primary tier callers only)
	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*domain.Admin, error)
	// ListAdmins returns all admin accounts
	ListAdmins(ctx context.Context) ([]*domain.Admin, error)
	// GetAdmin retrieves an admin by ID
	GetAdmin(ctx context.Context, id string) (*domain.Admin, error)
	// UpdateAdmin updates an admin's email and/or tier
	UpdateAdmin(ctx context.Context, id string, req *dto.UpdateAdminRequest) (*domain.Admin, error)
	// DeleteAdmin removes an admin account
	DeleteAdmin(ctx context.Context, id string) error
	// ResetPassword sets a new password for the admin or user with the
	// given email
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

// authService implements AuthService
type authService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	config    *AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	config *AuthServiceConfig,
) AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.TokenTTL == 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &authService{
		adminRepo: adminRepo,
		userRepo:  userRepo,
		config:    config,
	}
}

// Authenticate validates credentials scoped to a tier. Unknown email, wrong
// password and wrong tier all surface the same ErrInvalidCredentials so the
// response never reveals whether an account exists.
func (s *authService) Authenticate(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.authenticate")
	defer span.End()

	span.SetAttributes(attribute.String("admin_type", req.AdminType))

	role := domain.Role(req.AdminType)
	if !role.ValidAdminTier() {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByEmailAndRole(ctx, req.Email, role)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if admin == nil {
		// Burn a hash comparison so the miss costs the same as a mismatch
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(req.Password))
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("admin_id", admin.ID))
	span.SetStatus(codes.Ok, "")

	return &dto.LoginResponse{
		Token:      token,
		AdminType:  string(admin.Role),
		AdminID:    admin.ID,
		AdminEmail: admin.Email,
	}, nil
}

// VerifyToken validates a token's signature and expiry and returns its claims
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	_, span := telemetry.StartSpan(ctx, "service.auth.verify_token")
	defer span.End()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			span.SetStatus(codes.Error, "token expired")
			return nil, domain.ErrTokenExpired
		}
		span.SetStatus(codes.Error, "invalid token")
		return nil, domain.ErrInvalidToken
	}
	if !token.Valid {
		span.SetStatus(codes.Error, "invalid token")
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		span.SetStatus(codes.Error, "invalid claims")
		return nil, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		span.SetStatus(codes.Error, "invalid claims")
		return nil, domain.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)

	span.SetAttributes(attribute.String("user_id", userID))
	span.SetStatus(codes.Ok, "")

	return &domain.Claims{
		UserID: userID,
		Email:  email,
		Role:   domain.Role(roleStr),
	}, nil
}

// CreateAdmin creates a new admin account
func (s *authService) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.create_admin")
	defer span.End()

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	admin := &domain.Admin{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         domain.Role(req.Role),
		CreatedAt:    time.Now(),
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("admin_id", admin.ID))
	span.SetStatus(codes.Ok, "")
	return admin, nil
}

// ListAdmins returns all admin accounts
func (s *authService) ListAdmins(ctx context.Context) ([]*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.list_admins")
	defer span.End()

	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return admins, nil
}

// GetAdmin retrieves an admin by ID
func (s *authService) GetAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.get_admin")
	defer span.End()

	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if admin == nil {
		span.SetStatus(codes.Error, "admin not found")
		return nil, domain.ErrAdminNotFound
	}
	span.SetStatus(codes.Ok, "")
	return admin, nil
}

// UpdateAdmin updates an admin's email and/or tier
func (s *authService) UpdateAdmin(ctx context.Context, id string, req *dto.UpdateAdminRequest) (*domain.Admin, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.update_admin")
	defer span.End()

	span.SetAttributes(attribute.String("admin_id", id))

	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if admin == nil {
		span.SetStatus(codes.Error, "admin not found")
		return nil, domain.ErrAdminNotFound
	}

	if req.Email != "" {
		admin.Email = req.Email
	}
	if req.Role != "" {
		admin.Role = domain.Role(req.Role)
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return admin, nil
}

// DeleteAdmin removes an admin account
func (s *authService) DeleteAdmin(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.delete_admin")
	defer span.End()

	span.SetAttributes(attribute.String("admin_id", id))

	if err := s.adminRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// ResetPassword sets a new password for the admin or user with the given
// email. Admins are checked first since they are the accounts that log in.
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.reset_password")
	defer span.End()

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.config.BcryptCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if admin != nil {
		admin.PasswordHash = string(hashed)
		if err := s.adminRepo.Update(ctx, admin); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		span.SetStatus(codes.Ok, "")
		return nil
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if user == nil {
		span.SetStatus(codes.Error, "account not found")
		return domain.ErrUserNotFound
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// generateToken issues a signed token carrying subject, role and expiry
func (s *authService) generateToken(admin *domain.Admin) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     admin.ID,
		"user_id": admin.ID,
		"email":   admin.Email,
		"role":    string(admin.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.config.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.config.JWTSecret))
}
