package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewUserParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  NewUserParams
		wantErr error
	}{
		{
			name:   "valid",
			params: NewUserParams{Email: "a@x.com", Password: "secret"},
		},
		{
			name:   "valid with admin role",
			params: NewUserParams{Email: "a@x.com", Password: "secret", Role: RoleAdmin},
		},
		{
			name:    "blank email",
			params:  NewUserParams{Email: "  ", Password: "secret"},
			wantErr: ErrEmptyEmail,
		},
		{
			name:    "missing password",
			params:  NewUserParams{Email: "a@x.com"},
			wantErr: ErrEmptyPassword,
		},
		{
			name:   "password at the byte limit",
			params: NewUserParams{Email: "a@x.com", Password: strings.Repeat("a", MaxPasswordBytes)},
		},
		{
			name:    "multibyte password over the byte limit",
			params:  NewUserParams{Email: "a@x.com", Password: strings.Repeat("é", 72)},
			wantErr: ErrPasswordTooLong,
		},
		{
			name:    "unknown role",
			params:  NewUserParams{Email: "a@x.com", Password: "secret", Role: "root"},
			wantErr: ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserPatch_ApplyTo(t *testing.T) {
	original := User{
		ID:           7,
		Email:        "old@x.com",
		PasswordHash: "$2a$08$hash",
		Name:         "Old",
		Role:         RoleUser,
	}

	t.Run("only set fields change", func(t *testing.T) {
		u := original
		UserPatch{Name: ptr("New")}.ApplyTo(&u)

		assert.Equal(t, "New", u.Name)
		assert.Equal(t, original.Email, u.Email)
		assert.Equal(t, original.PasswordHash, u.PasswordHash)
		assert.Equal(t, original.Role, u.Role)
		assert.Equal(t, original.ID, u.ID)
	})

	t.Run("password is never copied", func(t *testing.T) {
		u := original
		UserPatch{Password: ptr("plaintext")}.ApplyTo(&u)

		assert.Equal(t, original.PasswordHash, u.PasswordHash)
	})

	t.Run("all profile fields", func(t *testing.T) {
		u := original
		UserPatch{
			Email:           ptr("new@x.com"),
			Name:            ptr("N"),
			Role:            ptr(RoleAdmin),
			IsEmailVerified: ptr(true),
		}.ApplyTo(&u)

		assert.Equal(t, "new@x.com", u.Email)
		assert.Equal(t, "N", u.Name)
		assert.Equal(t, RoleAdmin, u.Role)
		assert.True(t, u.IsEmailVerified)
	})
}

func TestUserPatch_Validate(t *testing.T) {
	assert.NoError(t, UserPatch{}.Validate())
	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{Name: ptr("")}.IsEmpty())

	assert.ErrorIs(t, UserPatch{Email: ptr("")}.Validate(), ErrEmptyEmail)
	assert.ErrorIs(t, UserPatch{Password: ptr("")}.Validate(), ErrEmptyPassword)
	assert.ErrorIs(t, UserPatch{Role: ptr(Role("owner"))}.Validate(), ErrInvalidRole)
	assert.ErrorIs(t, UserPatch{Password: ptr(strings.Repeat("é", 37))}.Validate(), ErrPasswordTooLong)
	assert.NoError(t, UserPatch{Password: ptr(strings.Repeat("é", 36))}.Validate())
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = ParseUserID(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	for _, raw := range []string{"", "abc", "0", "-1", "1.5"} {
		_, err := ParseUserID(raw)
		assert.True(t, errors.Is(err, ErrInvalidID), "input %q", raw)
	}
}

func TestUser_Clone(t *testing.T) {
	var nilUser *User
	assert.Nil(t, nilUser.Clone())

	u := &User{ID: 1, Email: "a@x.com"}
	c := u.Clone()
	c.Email = "b@x.com"
	assert.Equal(t, "a@x.com", u.Email)
}
