package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/repository"
)

// mockUserRepository is an in-memory implementation of UserRepository.
// It mirrors the store's contract: unique phone/email arbitration and
// atomic duty increments (guarded by a mutex here).
type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNumber == user.PhoneNumber {
			return domain.ErrDuplicateKey
		}
		if user.Email != "" && u.Email == user.Email {
			return domain.ErrDuplicateKey
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *mockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email != "" && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) FindByName(ctx context.Context, name string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matches := make([]*domain.User, 0)
	for _, u := range r.users {
		if strings.EqualFold(u.Name, name) {
			clone := *u
			matches = append(matches, &clone)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].RegisteredAt.Equal(matches[j].RegisteredAt) {
			return matches[i].RegisteredAt.Before(matches[j].RegisteredAt)
		}
		return matches[i].ID < matches[j].ID
	})
	return matches, nil
}

func (r *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	clone.DutyMinutes = existing.DutyMinutes
	r.users[user.ID] = &clone
	return nil
}

func (r *mockUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *mockUserRepository) IncrementDuty(ctx context.Context, id string, delta int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.DutyMinutes += delta
	clone := *u
	return &clone, nil
}

func (r *mockUserRepository) ListRankedByDuty(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].DutyMinutes != users[j].DutyMinutes {
			return users[i].DutyMinutes > users[j].DutyMinutes
		}
		if !users[i].RegisteredAt.Equal(users[j].RegisteredAt) {
			return users[i].RegisteredAt.Before(users[j].RegisteredAt)
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// mockAdminRepository is an in-memory implementation of AdminRepository
type mockAdminRepository struct {
	mu     sync.Mutex
	admins map[string]*domain.Admin
}

func newMockAdminRepository() *mockAdminRepository {
	return &mockAdminRepository{admins: make(map[string]*domain.Admin)}
}

func (r *mockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return domain.ErrDuplicateKey
		}
	}
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *mockAdminRepository) CreateIfAbsent(ctx context.Context, admin *domain.Admin) error {
	err := r.Create(ctx, admin)
	if err == domain.ErrDuplicateKey {
		return nil
	}
	return err
}

func (r *mockAdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (r *mockAdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *mockAdminRepository) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email && a.Role == role {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *mockAdminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admins := make([]*domain.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		clone := *a
		admins = append(admins, &clone)
	}
	sort.Slice(admins, func(i, j int) bool {
		if !admins[i].CreatedAt.Equal(admins[j].CreatedAt) {
			return admins[i].CreatedAt.Before(admins[j].CreatedAt)
		}
		return admins[i].ID < admins[j].ID
	})
	return admins, nil
}

func (r *mockAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[admin.ID]; !ok {
		return domain.ErrAdminNotFound
	}
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *mockAdminRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[id]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(r.admins, id)
	return nil
}

var (
	_ repository.UserRepository  = (*mockUserRepository)(nil)
	_ repository.AdminRepository = (*mockAdminRepository)(nil)
)

// noopCache is a leaderboard cache backed by nothing; every read misses
func noopCache() *repository.LeaderboardCache {
	return repository.NewLeaderboardCache(nil, 0)
}
