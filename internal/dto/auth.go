package dto

import (
	"regexp"
	"time"

	"github.com/Janushan11/scout-api/internal/domain"
)

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	AdminType string `json:"adminType" binding:"required"`
}

// LoginResponse represents a successful admin login
type LoginResponse struct {
	Token      string `json:"token"`
	AdminType  string `json:"adminType"`
	AdminID    string `json:"adminId"`
	AdminEmail string `json:"adminEmail"`
}

// CreateAdminRequest represents an admin creation request (primary tier only)
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required"`
}

// Validate checks the fields binding tags cannot express
func (r *CreateAdminRequest) Validate() (bool, string) {
	if valid, msg := validateEmail(r.Email); !valid {
		return valid, msg
	}
	if !domain.Role(r.Role).ValidAdminTier() {
		return false, "Role must be primary or secondary"
	}
	return true, ""
}

// UpdateAdminRequest represents an admin update request
type UpdateAdminRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Validate checks that any provided fields are well-formed
func (r *UpdateAdminRequest) Validate() (bool, string) {
	if r.Email == "" && r.Role == "" {
		return false, "Nothing to update"
	}
	if r.Email != "" {
		if valid, msg := validateEmail(r.Email); !valid {
			return valid, msg
		}
	}
	if r.Role != "" && !domain.Role(r.Role).ValidAdminTier() {
		return false, "Role must be primary or secondary"
	}
	return true, ""
}

// ResetPasswordRequest resets a user or admin password by email
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

// AdminResponse represents admin data in responses
type AdminResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// NewAdminResponse converts a domain admin to its response form
func NewAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

// RFC 5322 compliant email regex (simplified)
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}
