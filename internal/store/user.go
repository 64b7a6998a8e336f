package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/userbase-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// The email column carries a unique index; implementations must report a
// violation of it as ErrEmailExists. That index, not any pre-check done by
// callers, is what keeps email unique under concurrent writes.
type UserStore interface {
	// Create saves a new user. The caller supplies an already hashed password.
	// ID, CreatedAt and UpdatedAt are assigned by the store and written back
	// onto user.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by primary key.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByIDForUpdate is GetByID that also locks the row until the enclosing
	// transaction ends, so a read-modify-write cannot lose a concurrent update.
	// Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves the first user with the given email.
	// Returns ErrUserNotFound if no user has it.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByEmailExcludingID retrieves a user that owns email and whose ID is
	// not excludeID. Used to detect conflicts when a user changes email.
	// Returns ErrUserNotFound if there is none.
	GetByEmailExcludingID(ctx context.Context, email string, excludeID int64) (*domain.User, error)

	// List returns every user ordered by ID.
	List(ctx context.Context) ([]*domain.User, error)

	// Update writes every field of user except ID and CreatedAt, and refreshes
	// UpdatedAt on user.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if the new email belongs to another user.
	Update(ctx context.Context, user *domain.User) error

	// Delete permanently removes a user.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore bound to tx so several operations can share
	// one transaction.
	WithTx(tx *sql.Tx) UserStore
}
