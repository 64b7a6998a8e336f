package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role is the access level of a user account.
type Role string

// Known roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// MaxPasswordBytes is the longest password bcrypt accepts. The limit is in
// bytes, so multibyte passwords reach it with fewer characters.
const MaxPasswordBytes = 72

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a stored user account.
// PasswordHash always holds a one-way hash and is never serialized.
type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Name            string    `json:"name"`
	Role            Role      `json:"role"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Clone returns a copy of the user so callers can mutate it without
// affecting the original.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// NewUserParams is the input for creating a user. Password is plaintext and
// must be hashed before anything is persisted.
type NewUserParams struct {
	Email           string
	Password        string
	Name            string
	Role            Role
	IsEmailVerified bool
}

// Validate checks the fields the store cannot express on its own.
func (p NewUserParams) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	if err := validatePassword(p.Password); err != nil {
		return err
	}
	if p.Role != "" && !p.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, p.Role)
	}
	return nil
}

// UserPatch lists the fields that may change on an existing user.
// A nil field is left untouched.
type UserPatch struct {
	Email           *string
	Password        *string
	Name            *string
	Role            *Role
	IsEmailVerified *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Password == nil && p.Name == nil &&
		p.Role == nil && p.IsEmailVerified == nil
}

// Validate rejects patches that would set a field to an unusable value.
func (p UserPatch) Validate() error {
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		return ErrEmptyEmail
	}
	if p.Password != nil {
		if err := validatePassword(*p.Password); err != nil {
			return err
		}
	}
	if p.Role != nil && !p.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, *p.Role)
	}
	return nil
}

func validatePassword(pw string) error {
	switch {
	case pw == "":
		return ErrEmptyPassword
	case len(pw) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

// ApplyTo copies every set field onto u. Password is not applied here: it is
// plaintext and the caller stores its hash instead.
func (p UserPatch) ApplyTo(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsEmailVerified != nil {
		u.IsEmailVerified = *p.IsEmailVerified
	}
}

// ParseUserID converts an external identifier into the store's numeric key.
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
