package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/store"
)

// MockUserStore is an in-memory store.UserStore for testing.
//
// By default it behaves like a real store: IDs come from a sequence, email
// uniqueness is enforced and every read returns a copy. Any method can be
// overridden through its Fn field.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn                func(ctx context.Context, user *domain.User) error
	GetByIDFn               func(ctx context.Context, id int64) (*domain.User, error)
	GetByIDForUpdateFn      func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn            func(ctx context.Context, email string) (*domain.User, error)
	GetByEmailExcludingIDFn func(ctx context.Context, email string, excludeID int64) (*domain.User, error)
	ListFn                  func(ctx context.Context) ([]*domain.User, error)
	UpdateFn                func(ctx context.Context, user *domain.User) error
	DeleteFn                func(ctx context.Context, id int64) error

	// Now supplies timestamps; defaults to time.Now.
	Now func() time.Time

	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
	calls  map[string]int
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Now:   time.Now,
		users: make(map[int64]*domain.User),
		calls: make(map[string]int),
	}
}

// Seed stores copies of users as they are, advancing the ID sequence past
// the largest ID seen. Users with a zero ID get the next one.
func (m *MockUserStore) Seed(users ...*domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		c := u.Clone()
		if c.ID == 0 {
			m.nextID++
			c.ID = m.nextID
			u.ID = c.ID
		}
		if c.ID > m.nextID {
			m.nextID = c.ID
		}
		m.users[c.ID] = c
	}
}

// Calls reports how many times the named method has been invoked.
func (m *MockUserStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Len reports the number of stored users.
func (m *MockUserStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *MockUserStore) record(method string) {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
}

func (m *MockUserStore) emailOwnerLocked(email string, excludeID int64) *domain.User {
	var found *domain.User
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	return found
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailOwnerLocked(user.Email, 0) != nil {
		return store.ErrEmailExists
	}

	now := m.Now().UTC()
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.ID] = user.Clone()
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	return m.byID(id)
}

// GetByIDForUpdate implements the UserStore interface. The in-memory store
// has no row locks.
func (m *MockUserStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	m.record("GetByIDForUpdate")
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.byID(id)
}

func (m *MockUserStore) byID(id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u.Clone(), nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.record("GetByEmail")
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if u := m.emailOwnerLocked(email, 0); u != nil {
		return u.Clone(), nil
	}
	return nil, store.ErrUserNotFound
}

// GetByEmailExcludingID implements the UserStore interface
func (m *MockUserStore) GetByEmailExcludingID(
	ctx context.Context,
	email string,
	excludeID int64,
) (*domain.User, error) {
	m.record("GetByEmailExcludingID")
	if m.GetByEmailExcludingIDFn != nil {
		return m.GetByEmailExcludingIDFn(ctx, email, excludeID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if u := m.emailOwnerLocked(email, excludeID); u != nil {
		return u.Clone(), nil
	}
	return nil, store.ErrUserNotFound
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if m.emailOwnerLocked(user.Email, user.ID) != nil {
		return store.ErrEmailExists
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = m.Now().UTC()
	m.users[user.ID] = user.Clone()
	return nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// WithTx implements the UserStore interface for transaction support.
// The mock has no transactions, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
