package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/userbase-api/internal/api/shared"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/platform/logger"
	"github.com/phrazzld/userbase-api/internal/service"
	"github.com/phrazzld/userbase-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService   service.UserService
	jwtService    auth.JWTService
	tokenLifetime time.Duration
	timeFunc      func() time.Time
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// tokenLifetime is only used to report expires_at to clients.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	tokenLifetime time.Duration,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userService:   userService,
		jwtService:    jwtService,
		tokenLifetime: tokenLifetime,
		timeFunc:      time.Now,
		logger:        logger.With("component", "auth_handler"),
	}
}

// WithTimeFunc returns a copy of the handler that reads the clock from fn.
func (h *AuthHandler) WithTimeFunc(fn func() time.Time) *AuthHandler {
	c := *h
	c.timeFunc = fn
	return &c
}

// Register handles the /auth/register endpoint. Self-registered accounts
// always get the user role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), domain.NewUserParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.RoleUser,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user.ID)
}

// Login handles the /auth/login endpoint. Unknown emails and wrong passwords
// get the same response, and both pay for one password comparison.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, err := h.userService.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}
	if !h.userService.IsPasswordMatch(req.Password, user) {
		log.Debug("login rejected", slog.Bool("user_exists", user != nil))
		HandleAPIError(w, r, auth.ErrPasswordMismatch, "")
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user.ID)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, userID int64) {
	issuedAt := h.timeFunc()
	token, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	resp := AuthResponse{
		UserID:      userID,
		AccessToken: token,
	}
	if h.tokenLifetime > 0 {
		resp.ExpiresAt = issuedAt.Add(h.tokenLifetime).UTC().Format(time.RFC3339)
	}
	shared.RespondWithJSON(w, r, status, resp)
}
