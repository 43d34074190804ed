package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userdirectory/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps all data in process memory. Units of work
// are serialized, which gives them the same check-then-write atomicity the
// PostgreSQL backend gets from a transaction and the UNIQUE constraint.
type InMemoryRepositoryManager struct {
	mu    sync.Mutex
	users *users.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

// WithTx serializes fn against other units of work. Writes made by fn
// before it fails are not undone; callers write last.
func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(ctx, m.users)
}

func (m *InMemoryRepositoryManager) Ping(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
