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

// UserHandler handles scout registration, management and duty HTTP requests
type UserHandler struct {
	userService service.UserService
	dutyService service.DutyService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, dutyService service.DutyService) *UserHandler {
	return &UserHandler{
		userService: userService,
		dutyService: dutyService,
	}
}

// Register handles scout self-registration
// POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name and phoneNumber are required")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			response.BadRequest(c, "A user with this phone number or email already exists")
			return
		}
		logger.Get().Error("registration failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Created(c, gin.H{"user": dto.NewUserResponse(user)})
}

// List returns all scouts ranked by accumulated duty time
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	ranked, err := h.dutyService.Leaderboard(c.Request.Context())
	if err != nil {
		logger.Get().Error("leaderboard failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	out := make([]dto.RankedUserResponse, len(ranked))
	for i, row := range ranked {
		out[i] = dto.RankedUserResponse{
			Rank:         row.Rank,
			UserResponse: dto.NewUserResponse(row.User),
		}
	}
	response.OK(c, gin.H{"users": out})
}

// Get returns a single scout
// GET /users/:id (admin)
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Get().Error("get user failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, dto.NewUserResponse(user))
}

// Update edits a scout's profile
// PUT /users/:id (admin)
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrDuplicateKey):
			response.BadRequest(c, "A user with this phone number or email already exists")
		default:
			logger.Get().Error("update user failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.NewUserResponse(user))
}

// Delete removes a scout
// DELETE /users/:id (primary tier)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Get().Error("delete user failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// Badge returns the scannable badge payload for a scout
// GET /users/:id/badge (admin)
func (h *UserHandler) Badge(c *gin.Context) {
	badge, err := h.userService.IssueBadge(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Get().Error("badge issuance failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, dto.NewBadgeResponse(badge))
}

// RecordDuty applies a duty-time entry to a scout
// PUT /users/:id/duty (admin)
func (h *UserHandler) RecordDuty(c *gin.Context) {
	var req dto.DutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	applied, user, err := h.dutyService.RecordDuty(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrAmbiguousName):
			response.Conflict(c, "Name matches more than one user, use the id instead")
		case errors.Is(err, service.ErrInvalidClockTime):
			response.BadRequest(c, "Duty times must be HH:MM clock times")
		default:
			logger.Get().Error("duty entry failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.DutyResponse{
		UserResponse:   dto.NewUserResponse(user),
		AppliedMinutes: applied,
	})
}
