package domain

import (
	"time"
)

// Role represents an account's privilege tier
type Role string

const (
	// RoleUser is a registered scout with no API privileges of its own
	RoleUser Role = "user"
	// RolePrimary is the full-control admin tier, including admin management
	RolePrimary Role = "primary"
	// RoleSecondary is the operational admin tier, limited to duty entry
	RoleSecondary Role = "secondary"
)

// Valid reports whether r is one of the known admin tiers
func (r Role) ValidAdminTier() bool {
	return r == RolePrimary || r == RoleSecondary
}

// User represents a registered scout
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phoneNumber"`
	PasswordHash string    `json:"-"` // Never serialize password
	Role         Role      `json:"role"`
	DutyMinutes  int64     `json:"dutyTime"`
	RegisteredAt time.Time `json:"registrationTime"`
}

// Admin represents an administrator account. Admins never self-register;
// they are created by the bootstrap seed or by a primary-tier admin.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims represents the verified contents of a session token
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// BadgePayload is the data encoded into a scout's scannable registration
// badge. The badge id is freshly generated per issuance; rendering the
// payload into a QR image is a client concern.
type BadgePayload struct {
	BadgeID      string    `json:"badgeId"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phoneNumber"`
	RegisteredAt time.Time `json:"registrationTime"`
}
