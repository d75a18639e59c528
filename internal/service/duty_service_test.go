package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/dto"
)

func seedScout(t *testing.T, repo *mockUserRepository, svc UserService, name, phone string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:        name,
		PhoneNumber: phone,
	})
	if err != nil {
		t.Fatalf("failed to seed scout %s: %v", name, err)
	}
	return user
}

func int64Ptr(v int64) *int64 { return &v }

func TestDutyService_RecordDuty_ClockRange(t *testing.T) {
	repo := newMockUserRepository()
	userSvc := NewUserService(repo, noopCache())
	svc := NewDutyService(repo, noopCache())
	ctx := context.Background()

	alice := seedScout(t, repo, userSvc, "Alice", "0811111111")

	t.Run("full day shift", func(t *testing.T) {
		applied, updated, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{
			DutyStartTime: "09:00",
			DutyEndTime:   "17:00",
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if applied != 480 {
			t.Errorf("applied minutes = %d, want 480", applied)
		}
		if updated.DutyMinutes != 480 {
			t.Errorf("total = %d, want 480", updated.DutyMinutes)
		}
	})

	t.Run("repetition accumulates", func(t *testing.T) {
		_, updated, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{
			DutyStartTime: "09:00",
			DutyEndTime:   "17:00",
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if updated.DutyMinutes != 960 {
			t.Errorf("total after second entry = %d, want 960", updated.DutyMinutes)
		}
	})

	t.Run("end before start applies zero, no error", func(t *testing.T) {
		applied, updated, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{
			DutyStartTime: "23:00",
			DutyEndTime:   "01:00",
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if applied != 0 {
			t.Errorf("applied minutes = %d, want 0", applied)
		}
		if updated.DutyMinutes != 960 {
			t.Errorf("total changed to %d on zero entry", updated.DutyMinutes)
		}
	})

	t.Run("partial hour floors", func(t *testing.T) {
		applied, _, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{
			DutyStartTime: "10:15",
			DutyEndTime:   "10:45",
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if applied != 30 {
			t.Errorf("applied minutes = %d, want 30", applied)
		}
	})

	t.Run("malformed clock time", func(t *testing.T) {
		_, _, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{
			DutyStartTime: "nine",
			DutyEndTime:   "17:00",
		})
		if !errors.Is(err, ErrInvalidClockTime) {
			t.Errorf("RecordDuty() error = %v, want ErrInvalidClockTime", err)
		}
	})
}

func TestDutyService_RecordDuty_DeltaForm(t *testing.T) {
	repo := newMockUserRepository()
	userSvc := NewUserService(repo, noopCache())
	svc := NewDutyService(repo, noopCache())
	ctx := context.Background()

	alice := seedScout(t, repo, userSvc, "Alice", "0811111111")

	t.Run("direct delta", func(t *testing.T) {
		applied, updated, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{
			DutyTime: int64Ptr(45),
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if applied != 45 || updated.DutyMinutes != 45 {
			t.Errorf("applied/total = %d/%d, want 45/45", applied, updated.DutyMinutes)
		}
	})

	t.Run("negative delta clamps to zero", func(t *testing.T) {
		applied, updated, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{
			DutyTime: int64Ptr(-30),
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if applied != 0 || updated.DutyMinutes != 45 {
			t.Errorf("applied/total = %d/%d, want 0/45", applied, updated.DutyMinutes)
		}
	})
}

func TestDutyService_RecordDuty_SubjectResolution(t *testing.T) {
	repo := newMockUserRepository()
	userSvc := NewUserService(repo, noopCache())
	svc := NewDutyService(repo, noopCache())
	ctx := context.Background()

	seedScout(t, repo, userSvc, "Alice Wong", "0811111111")
	seedScout(t, repo, userSvc, "Twin Name", "0822222222")
	seedScout(t, repo, userSvc, "twin name", "0833333333")

	t.Run("case-insensitive name match", func(t *testing.T) {
		_, updated, err := svc.RecordDuty(ctx, "unused-path-id", &dto.DutyRequest{
			Name:     "alice wong",
			DutyTime: int64Ptr(60),
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if updated.Name != "Alice Wong" || updated.DutyMinutes != 60 {
			t.Errorf("resolved %s with total %d", updated.Name, updated.DutyMinutes)
		}
	})

	t.Run("body studentId beats path id", func(t *testing.T) {
		target, _ := repo.GetByPhone(ctx, "0822222222")
		_, updated, err := svc.RecordDuty(ctx, "ignored", &dto.DutyRequest{
			StudentID: target.ID,
			DutyTime:  int64Ptr(10),
		})
		if err != nil {
			t.Fatalf("RecordDuty() error = %v", err)
		}
		if updated.ID != target.ID {
			t.Errorf("resolved %s, want %s", updated.ID, target.ID)
		}
	})

	t.Run("ambiguous name rejected", func(t *testing.T) {
		_, _, err := svc.RecordDuty(ctx, "ignored", &dto.DutyRequest{
			Name:     "Twin Name",
			DutyTime: int64Ptr(60),
		})
		if !errors.Is(err, domain.ErrAmbiguousName) {
			t.Errorf("RecordDuty() error = %v, want ErrAmbiguousName", err)
		}
	})

	t.Run("unknown subject", func(t *testing.T) {
		_, _, err := svc.RecordDuty(ctx, "Nobody Here", &dto.DutyRequest{
			DutyTime: int64Ptr(60),
		})
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("RecordDuty() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestDutyService_RecordDuty_ConcurrentIncrements(t *testing.T) {
	repo := newMockUserRepository()
	userSvc := NewUserService(repo, noopCache())
	svc := NewDutyService(repo, noopCache())
	ctx := context.Background()

	alice := seedScout(t, repo, userSvc, "Alice", "0811111111")

	deltas := []int64{10, 20}
	var wg sync.WaitGroup
	for _, d := range deltas {
		wg.Add(1)
		go func(delta int64) {
			defer wg.Done()
			if _, _, err := svc.RecordDuty(ctx, alice.ID, &dto.DutyRequest{DutyTime: int64Ptr(delta)}); err != nil {
				t.Errorf("RecordDuty(%d) error = %v", delta, err)
			}
		}(d)
	}
	wg.Wait()

	final, _ := repo.GetByID(ctx, alice.ID)
	if final.DutyMinutes != 30 {
		t.Errorf("concurrent total = %d, want 30", final.DutyMinutes)
	}
}

func TestDutyService_Leaderboard(t *testing.T) {
	repo := newMockUserRepository()
	userSvc := NewUserService(repo, noopCache())
	svc := NewDutyService(repo, noopCache())
	ctx := context.Background()

	// Insertion order matters: the earlier-registered of the tied pair
	// must rank first
	base := time.Now().Add(-time.Hour)
	names := []struct {
		name    string
		phone   string
		minutes int64
	}{
		{"First", "0811111111", 30},
		{"Second", "0822222222", 90},
		{"Third", "0833333333", 90},
		{"Fourth", "0844444444", 10},
	}
	for i, n := range names {
		user := seedScout(t, repo, userSvc, n.name, n.phone)
		repo.mu.Lock()
		repo.users[user.ID].DutyMinutes = n.minutes
		repo.users[user.ID].RegisteredAt = base.Add(time.Duration(i) * time.Minute)
		repo.mu.Unlock()
	}

	ranked, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	if len(ranked) != 4 {
		t.Fatalf("Leaderboard() returned %d rows, want 4", len(ranked))
	}

	wantOrder := []string{"Second", "Third", "First", "Fourth"}
	for i, want := range wantOrder {
		if ranked[i].User.Name != want {
			t.Errorf("position %d = %s, want %s", i+1, ranked[i].User.Name, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("rank at position %d = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestDutyService_Leaderboard_CacheMissFallsThrough(t *testing.T) {
	repo := newMockUserRepository()
	userSvc := NewUserService(repo, noopCache())
	svc := NewDutyService(repo, noopCache())
	ctx := context.Background()

	seedScout(t, repo, userSvc, "Alice", "0811111111")

	ranked, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	if len(ranked) != 1 || ranked[0].Rank != 1 {
		t.Errorf("Leaderboard() = %+v", ranked)
	}
}
