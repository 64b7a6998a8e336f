package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/platform/logger"
	"github.com/phrazzld/userbase-api/internal/store"
)

const userColumns = `id, email, password_hash, name, role, is_email_verified, created_at, updated_at`

// UserStore implements store.UserStore on SQLite.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a SQLite-backed UserStore on a database handle or
// transaction. If logger is nil, the default logger is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_user_store")),
		now:    time.Now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&role,
		&u.IsEmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, name, role, is_email_verified, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Name, string(user.Role), user.IsEmailVerified, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			log.Debug("unique constraint rejected user email")
			return store.ErrEmailExists
		}
		log.Error("failed to insert user", slog.String("error", err.Error()))
		return fmt.Errorf("insert user: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	log.Debug("user inserted", slog.Int64("user_id", id))
	return nil
}

func (s *UserStore) getOne(ctx context.Context, what, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to query user", slog.String("by", what), slog.String("error", err.Error()))
		return nil, fmt.Errorf("query user by %s: %w", what, err)
	}
	return user, nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, "id",
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByIDForUpdate implements store.UserStore. SQLite has no row locks; the
// single-connection pool already runs transactions one at a time.
func (s *UserStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	return s.GetByID(ctx, id)
}

// GetByEmail implements store.UserStore.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email",
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY id LIMIT 1`, email)
}

// GetByEmailExcludingID implements store.UserStore.
func (s *UserStore) GetByEmailExcludingID(
	ctx context.Context,
	email string,
	excludeID int64,
) (*domain.User, error) {
	return s.getOne(ctx, "email",
		`SELECT `+userColumns+` FROM users WHERE email = ? AND id <> ? ORDER BY id LIMIT 1`,
		email, excludeID)
}

// List implements store.UserStore.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Update implements store.UserStore.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE users
		 SET email = ?, password_hash = ?, name = ?, role = ?, is_email_verified = ?, updated_at = ?
		 WHERE id = ?`,
		user.Email, user.PasswordHash, user.Name, string(user.Role), user.IsEmailVerified, now, user.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return fmt.Errorf("update user: %w", mapError(err))
	}

	if err := checkRowsAffected(result); err != nil {
		return err
	}

	user.UpdatedAt = now
	return nil
}

// Delete implements store.UserStore.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", mapError(err))
	}
	return checkRowsAffected(result)
}

// WithTx implements store.UserStore.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{
		db:     tx,
		logger: s.logger,
		now:    s.now,
	}
}

func checkRowsAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
