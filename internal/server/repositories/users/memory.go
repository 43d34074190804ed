package users

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
	"github.com/dmitrijs2005/userdirectory/internal/timex"
)

// MemoryRepository keeps users in process memory. Ids come from a counter
// and are never reused, mail uniqueness is enforced on Save the same way
// the UNIQUE constraint does it in PostgreSQL.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]*models.User
	nextID int64
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]*models.User), nextID: 1}
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(*models.User) bool { return true }), nil
}

func (r *MemoryRepository) FindByBirthDateRange(ctx context.Context, from, to timex.Date) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(u *models.User) bool {
		return !u.BirthDate.Before(from) && u.BirthDate.Before(to)
	}), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user.Clone(), nil
}

func (r *MemoryRepository) FindByMail(ctx context.Context, mail string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Mail == mail {
			return user.Clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.users {
		if existing.Mail == user.Mail && id != user.ID {
			return nil, common.ErrDuplicateMail
		}
	}

	saved := user.Clone()
	if saved.HasID() {
		if _, ok := r.users[saved.ID]; !ok {
			return nil, common.ErrorNotFound
		}
	} else {
		saved.ID = r.nextID
		r.nextID++
	}

	r.users[saved.ID] = saved
	return saved.Clone(), nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) collect(keep func(*models.User) bool) []*models.User {
	result := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		if keep(user) {
			result = append(result, user.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
