package api

import (
	"time"

	"github.com/phrazzld/userbase-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name"     validate:"max=255"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID int64 `json:"user_id"`

	// AccessToken is the JWT used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CreateUserRequest defines the payload for creating a user on behalf of
// an authenticated caller.
type CreateUserRequest struct {
	Email           string `json:"email"             validate:"required,email"`
	Password        string `json:"password"          validate:"required,max=72"`
	Name            string `json:"name"              validate:"max=255"`
	Role            string `json:"role"              validate:"omitempty,oneof=user admin"`
	IsEmailVerified bool   `json:"is_email_verified"`
}

// Params converts the request into service input.
func (r CreateUserRequest) Params() domain.NewUserParams {
	return domain.NewUserParams{
		Email:           r.Email,
		Password:        r.Password,
		Name:            r.Name,
		Role:            domain.Role(r.Role),
		IsEmailVerified: r.IsEmailVerified,
	}
}

// UpdateUserRequest defines the payload for a partial update. Omitted
// fields are left unchanged.
type UpdateUserRequest struct {
	Email           *string `json:"email"             validate:"omitempty,email"`
	Password        *string `json:"password"          validate:"omitempty,max=72"`
	Name            *string `json:"name"              validate:"omitempty,max=255"`
	Role            *string `json:"role"              validate:"omitempty,oneof=user admin"`
	IsEmailVerified *bool   `json:"is_email_verified"`
}

// Patch converts the request into service input.
func (r UpdateUserRequest) Patch() domain.UserPatch {
	patch := domain.UserPatch{
		Email:           r.Email,
		Password:        r.Password,
		Name:            r.Name,
		IsEmailVerified: r.IsEmailVerified,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		patch.Role = &role
	}
	return patch
}

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"is_email_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewUserResponse builds the public view of u.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// HealthResponse reports service and database status.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
