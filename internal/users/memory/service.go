package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
)

// MemoryUsersService is an in-memory stand-in for the external user system,
// used by tests and the demo server wiring. It only holds public profile
// data; registration and credentials stay outside the ledger.
type MemoryUsersService struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUsersService() *MemoryUsersService {
	return &MemoryUsersService{
		users: make(map[string]models.User),
	}
}

// Seed adds a user with a generated id and returns it.
func (m *MemoryUsersService) Seed(name, email string) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
	m.users[user.ID] = user
	return user
}

func (m *MemoryUsersService) Exists(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.users[userID]
	return exists, nil
}

func (m *MemoryUsersService) Profile(ctx context.Context, userID string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[userID]
	if !exists {
		return models.User{}, models.ErrUserNotFound
	}
	return user, nil
}

var _ interfaces.UsersService = (*MemoryUsersService)(nil)
