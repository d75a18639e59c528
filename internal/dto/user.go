package dto

import (
	"strings"
	"time"

	"github.com/Janushan11/scout-api/internal/domain"
)

// RegisterRequest represents a scout self-registration request.
// Email and password are optional: registration issues a badge, not a login.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Validate checks the fields binding tags cannot express
func (r *RegisterRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "Name is required"
	}
	if valid, msg := validatePhoneNumber(r.PhoneNumber); !valid {
		return valid, msg
	}
	if r.Email != "" {
		if valid, msg := validateEmail(r.Email); !valid {
			return valid, msg
		}
	}
	if r.Password != "" && len(r.Password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	return true, ""
}

// UpdateUserRequest represents an admin-side user profile update
type UpdateUserRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// Validate checks that any provided fields are well-formed
func (r *UpdateUserRequest) Validate() (bool, string) {
	if r.Name == "" && r.PhoneNumber == "" && r.Email == "" {
		return false, "Nothing to update"
	}
	if r.PhoneNumber != "" {
		if valid, msg := validatePhoneNumber(r.PhoneNumber); !valid {
			return valid, msg
		}
	}
	if r.Email != "" {
		if valid, msg := validateEmail(r.Email); !valid {
			return valid, msg
		}
	}
	return true, ""
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	PhoneNumber      string `json:"phoneNumber"`
	Email            string `json:"email,omitempty"`
	DutyTime         int64  `json:"dutyTime"`
	RegistrationTime string `json:"registrationTime"`
}

// NewUserResponse converts a domain user to its response form
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		PhoneNumber:      u.PhoneNumber,
		Email:            u.Email,
		DutyTime:         u.DutyMinutes,
		RegistrationTime: u.RegisteredAt.Format(time.RFC3339),
	}
}

// RankedUserResponse is a leaderboard row: user data plus dense rank
type RankedUserResponse struct {
	Rank int `json:"rank"`
	UserResponse
}

// BadgeResponse carries the scannable badge payload for a registered scout
type BadgeResponse struct {
	BadgeID          string `json:"badgeId"`
	Name             string `json:"name"`
	PhoneNumber      string `json:"phoneNumber"`
	RegistrationTime string `json:"registrationTime"`
}

// NewBadgeResponse converts a domain badge payload to its response form
func NewBadgeResponse(b *domain.BadgePayload) BadgeResponse {
	return BadgeResponse{
		BadgeID:          b.BadgeID,
		Name:             b.Name,
		PhoneNumber:      b.PhoneNumber,
		RegistrationTime: b.RegisteredAt.Format(time.RFC3339),
	}
}

func validatePhoneNumber(phone string) (bool, string) {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return false, "Phone number is required"
	}
	if len(trimmed) < 7 || len(trimmed) > 20 {
		return false, "Phone number must be between 7 and 20 characters"
	}
	for _, c := range trimmed {
		if (c < '0' || c > '9') && c != '+' && c != '-' && c != ' ' && c != '(' && c != ')' {
			return false, "Phone number contains invalid characters"
		}
	}
	return true, ""
}
