package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/dto"
	"github.com/Janushan11/scout-api/internal/repository"
	"github.com/Janushan11/scout-api/pkg/logger"
	"github.com/Janushan11/scout-api/pkg/telemetry"
)

// ErrInvalidClockTime is returned when a duty time is not an HH:MM clock time
var ErrInvalidClockTime = errors.New("invalid clock time, expected HH:MM")

const clockLayout = "15:04"

// RankedUser is one leaderboard row. Positions run 1..N with no gaps and no
// shared ranks; ties keep registration order.
type RankedUser struct {
	Rank int
	User *domain.User
}

// DutyService defines the interface for duty-time entry and the leaderboard
type DutyService interface {
	// RecordDuty applies a duty entry to the scout identified by subject
	// (id first, else case-insensitive exact name). Returns the minutes
	// actually applied and the updated user.
	RecordDuty(ctx context.Context, subject string, req *dto.DutyRequest) (int64, *domain.User, error)
	// Leaderboard returns all scouts ranked by accumulated duty minutes
	Leaderboard(ctx context.Context) ([]RankedUser, error)
}

// dutyService implements DutyService
type dutyService struct {
	userRepo repository.UserRepository
	cache    *repository.LeaderboardCache
}

// NewDutyService creates a new DutyService
func NewDutyService(userRepo repository.UserRepository, cache *repository.LeaderboardCache) DutyService {
	return &dutyService{
		userRepo: userRepo,
		cache:    cache,
	}
}

// RecordDuty resolves the target scout, computes the minute delta and applies
// it atomically
func (s *dutyService) RecordDuty(ctx context.Context, subject string, req *dto.DutyRequest) (int64, *domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.duty.record")
	defer span.End()

	user, err := s.resolveSubject(ctx, subject, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, nil, err
	}

	span.SetAttributes(attribute.String("user_id", user.ID))

	delta, err := s.computeDelta(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, nil, err
	}

	// Single-statement increment: concurrent entries on the same scout
	// both land
	updated, err := s.userRepo.IncrementDuty(ctx, user.ID, delta)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, nil, err
	}

	_ = s.cache.Invalidate(ctx)

	span.SetAttributes(attribute.Int64("applied_minutes", delta))
	span.SetStatus(codes.Ok, "")
	return delta, updated, nil
}

// Leaderboard returns all scouts in rank order, serving from the cached
// snapshot when one is fresh. Cache failures fall through to the database.
func (s *dutyService) Leaderboard(ctx context.Context) ([]RankedUser, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.duty.leaderboard")
	defer span.End()

	users, err := s.cache.Get(ctx)
	if err != nil {
		logger.Get().Warn("leaderboard cache read failed", zap.Error(err))
		users = nil
	}

	if users == nil {
		users, err = s.userRepo.ListRankedByDuty(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if cacheErr := s.cache.Set(ctx, users); cacheErr != nil {
			logger.Get().Warn("leaderboard cache write failed", zap.Error(cacheErr))
		}
	}

	ranked := make([]RankedUser, len(users))
	for i, u := range users {
		ranked[i] = RankedUser{Rank: i + 1, User: u}
	}

	span.SetAttributes(attribute.Int("count", len(ranked)))
	span.SetStatus(codes.Ok, "")
	return ranked, nil
}

// resolveSubject finds the target scout. The body's studentId or name takes
// precedence over the path id; lookup tries the value as an id first, then
// as a case-insensitive exact name. A name matching more than one scout is
// rejected rather than silently picking one.
func (s *dutyService) resolveSubject(ctx context.Context, pathID string, req *dto.DutyRequest) (*domain.User, error) {
	subject := pathID
	if req.StudentID != "" {
		subject = req.StudentID
	} else if req.Name != "" {
		subject = req.Name
	}

	// Only strings shaped like ids can hit the id lookup; anything else
	// goes straight to name resolution
	if _, parseErr := uuid.Parse(subject); parseErr == nil {
		user, err := s.userRepo.GetByID(ctx, subject)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	matches, err := s.userRepo.FindByName(ctx, subject)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, domain.ErrUserNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, domain.ErrAmbiguousName
	}
}

// computeDelta turns the request into a minute delta. Negative results clamp
// to zero: a range crossing midnight applies nothing instead of failing.
func (s *dutyService) computeDelta(req *dto.DutyRequest) (int64, error) {
	if req.IsDelta() {
		return clampMinutes(*req.DutyTime), nil
	}

	start, err := time.Parse(clockLayout, req.DutyStartTime)
	if err != nil {
		return 0, ErrInvalidClockTime
	}
	end, err := time.Parse(clockLayout, req.DutyEndTime)
	if err != nil {
		return 0, ErrInvalidClockTime
	}

	minutes := int64(end.Sub(start) / time.Minute)
	return clampMinutes(minutes), nil
}

func clampMinutes(m int64) int64 {
	if m < 0 {
		return 0
	}
	return m
}
