package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/userbase-api/internal/api/shared"
	"github.com/phrazzld/userbase-api/internal/platform/logger"
	"github.com/phrazzld/userbase-api/internal/service"
)

// UserHandler serves the /users resource.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With("component", "user_handler"),
	}
}

func (h *UserHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Params())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	h.log(r).Info("user created", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	resp := UserListResponse{Users: make([]UserResponse, 0, len(users)), Count: len(users)}
	for _, u := range users {
		resp.Users = append(resp.Users, NewUserResponse(u))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.log(r))
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	if user == nil {
		HandleAPIError(w, r, service.ErrUserNotFound, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// GetUserByEmail handles GET /users/by-email?email=.
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameter email is required")
		return
	}

	user, err := h.userService.GetUserByEmail(r.Context(), email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	if user == nil {
		HandleAPIError(w, r, service.ErrUserNotFound, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateUser handles PATCH /users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.log(r))
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateUserByID(r.Context(), id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	h.log(r).Info("user updated", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// DeleteUser handles DELETE /users/{id} and responds with the deleted record.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actingUserID, id, ok := handleUserIDAndPathID(w, r, "id", h.log(r))
	if !ok {
		return
	}

	user, err := h.userService.DeleteUserByID(r.Context(), id, actingUserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	h.log(r).Info("user deleted",
		slog.Int64("user_id", user.ID),
		slog.Int64("acting_user_id", actingUserID))
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}
