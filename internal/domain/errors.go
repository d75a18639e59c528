package domain

import "errors"

// Domain errors
var (
	// Credential store errors
	ErrDuplicateKey  = errors.New("record with this unique field already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")

	// Session errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Duty ledger errors
	ErrAmbiguousName = errors.New("name matches more than one user")
)
