package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/service/auth"
	"github.com/phrazzld/userbase-api/internal/store"
)

// UserService manages user accounts.
//
// Lookups report an absent user as (nil, nil); operations that address an
// existing user return ErrUserNotFound instead.
type UserService interface {
	// CreateUser registers a new account. The password is stored hashed and
	// every other field is kept as given. Returns ErrEmailTaken if the email
	// belongs to an existing user.
	CreateUser(ctx context.Context, params domain.NewUserParams) (*domain.User, error)

	// GetUserByID returns the user with the given ID, or nil if there is none.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByEmail returns the user owning email, or nil if there is none.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateUserByID applies patch to an existing user and returns the stored
	// result. A new password is hashed. Returns ErrUserNotFound or, when the
	// new email belongs to someone else, ErrEmailTaken.
	UpdateUserByID(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)

	// DeleteUserByID removes a user on behalf of actingUserID and returns the
	// record as it was before deletion. Returns ErrSelfDelete when both IDs
	// match, whether or not the user exists, and ErrUserNotFound otherwise
	// if there is no such user.
	DeleteUserByID(ctx context.Context, id, actingUserID int64) (*domain.User, error)

	// ListUsers returns every user in ID order.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// IsPasswordMatch reports whether plaintext matches the user's stored
	// hash. A nil user never matches, but still costs one comparison.
	IsPasswordMatch(plaintext string, user *domain.User) bool
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	txRunner  store.TxRunner
	hasher    auth.PasswordHasher
	logger    *slog.Logger

	// placeholderHash is compared against when there is no user, so a
	// missing account costs as much hashing work as a wrong password.
	placeholderOnce sync.Once
	placeholderHash string
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	txRunner store.TxRunner,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		txRunner:  txRunner,
		hasher:    hasher,
		logger:    logger.With("component", "user_service"),
	}
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, params domain.NewUserParams) (*domain.User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.lookupByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if existing != nil {
		s.logger.Debug("attempted to create user with existing email",
			"email", params.Email)
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	role := params.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Email:           params.Email,
		PasswordHash:    hash,
		Name:            params.Name,
		Role:            role,
		IsEmailVerified: params.IsEmailVerified,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("unique index rejected new user email",
				"email", params.Email)
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID)

	return user, nil
}

// GetUserByID implements UserService.
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", id)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail implements UserService.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

func (s *UserServiceImpl) lookupByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, nil
	}
	return user, err
}

// UpdateUserByID implements UserService.
// The existence check, the email conflict check and the write share one
// transaction.
func (s *UserServiceImpl) UpdateUserByID(
	ctx context.Context,
	id int64,
	patch domain.UserPatch,
) (*domain.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	// Hash before opening the transaction so bcrypt does not hold it open.
	var newHash string
	if patch.Password != nil {
		h, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		newHash = h
	}

	var updated *domain.User
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		if patch.Email != nil {
			_, err := txStore.GetByEmailExcludingID(ctx, *patch.Email, id)
			switch {
			case err == nil:
				s.logger.Debug("attempted to update to an existing email",
					"user_id", id,
					"new_email", *patch.Email)
				return ErrEmailTaken
			case !errors.Is(err, store.ErrUserNotFound):
				return fmt.Errorf("failed to check email availability: %w", err)
			}
		}

		patch.ApplyTo(user)
		if newHash != "" {
			user.PasswordHash = newHash
		}

		if err := txStore.Update(ctx, user); err != nil {
			switch {
			case errors.Is(err, store.ErrEmailExists):
				return ErrEmailTaken
			case errors.Is(err, store.ErrUserNotFound):
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to save user: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrEmailTaken) {
			s.logger.Error("failed to update user",
				"error", err,
				"user_id", id)
		}
		return nil, err
	}

	s.logger.Info("user updated",
		"user_id", id,
		"password_changed", patch.Password != nil)

	return updated, nil
}

// DeleteUserByID implements UserService.
func (s *UserServiceImpl) DeleteUserByID(ctx context.Context, id, actingUserID int64) (*domain.User, error) {
	if id == actingUserID {
		return nil, ErrSelfDelete
	}

	var snapshot *domain.User
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to retrieve user for deletion: %w", err)
		}

		if err := txStore.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		snapshot = user
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", id,
				"acting_user_id", actingUserID)
		}
		return nil, err
	}

	s.logger.Info("user deleted",
		"user_id", id,
		"acting_user_id", actingUserID)

	return snapshot, nil
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// IsPasswordMatch implements UserService.
func (s *UserServiceImpl) IsPasswordMatch(plaintext string, user *domain.User) bool {
	if user == nil || user.PasswordHash == "" {
		s.comparePlaceholder(plaintext)
		return false
	}
	return s.hasher.Compare(user.PasswordHash, plaintext) == nil
}

func (s *UserServiceImpl) comparePlaceholder(plaintext string) {
	s.placeholderOnce.Do(func() {
		h, err := s.hasher.Hash("userbase-placeholder-password")
		if err != nil {
			s.logger.Warn("placeholder password hash unavailable", "error", err)
			return
		}
		s.placeholderHash = h
	})
	if s.placeholderHash != "" {
		_ = s.hasher.Compare(s.placeholderHash, plaintext)
	}
}
