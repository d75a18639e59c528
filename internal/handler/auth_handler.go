package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/dto"
	"github.com/Janushan11/scout-api/internal/service"
	"github.com/Janushan11/scout-api/pkg/logger"
	"github.com/Janushan11/scout-api/pkg/response"
)

// AuthHandler handles authentication and admin management HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles admin login
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email, password and adminType are required")
		return
	}

	result, err := h.authService.Authenticate(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		logger.Get().Error("login failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// CreateAdmin creates a new admin account
// POST /auth/admins (primary tier)
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email, password and role are required")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	admin, err := h.authService.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			response.BadRequest(c, "An admin with this email already exists")
			return
		}
		logger.Get().Error("create admin failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Created(c, dto.NewAdminResponse(admin))
}

// ListAdmins returns all admin accounts
// GET /auth/admins (primary tier)
func (h *AuthHandler) ListAdmins(c *gin.Context) {
	admins, err := h.authService.ListAdmins(c.Request.Context())
	if err != nil {
		logger.Get().Error("list admins failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	out := make([]dto.AdminResponse, len(admins))
	for i, a := range admins {
		out[i] = dto.NewAdminResponse(a)
	}
	response.OK(c, gin.H{"admins": out})
}

// GetAdmin returns a single admin account
// GET /auth/admins/:id (primary tier)
func (h *AuthHandler) GetAdmin(c *gin.Context) {
	admin, err := h.authService.GetAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			response.NotFound(c, "Admin not found")
			return
		}
		logger.Get().Error("get admin failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, dto.NewAdminResponse(admin))
}

// UpdateAdmin updates an admin's email and/or tier
// PUT /auth/admins/:id (primary tier)
func (h *AuthHandler) UpdateAdmin(c *gin.Context) {
	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	admin, err := h.authService.UpdateAdmin(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAdminNotFound):
			response.NotFound(c, "Admin not found")
		case errors.Is(err, domain.ErrDuplicateKey):
			response.BadRequest(c, "An admin with this email already exists")
		default:
			logger.Get().Error("update admin failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.NewAdminResponse(admin))
}

// DeleteAdmin removes an admin account
// DELETE /auth/admins/:id (primary tier)
func (h *AuthHandler) DeleteAdmin(c *gin.Context) {
	// An admin deleting itself would strand the tier, so refuse that
	if c.GetString(ContextKeyUserID) == c.Param("id") {
		response.BadRequest(c, "Cannot delete your own account")
		return
	}

	if err := h.authService.DeleteAdmin(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			response.NotFound(c, "Admin not found")
			return
		}
		logger.Get().Error("delete admin failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetPassword sets a new password for the account with the given email
// POST /auth/reset-password (primary tier)
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and newPassword are required")
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "Account not found")
			return
		}
		logger.Get().Error("reset password failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "Password updated"})
}
