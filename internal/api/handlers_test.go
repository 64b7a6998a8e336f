package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/userbase-api/internal/api"
	"github.com/phrazzld/userbase-api/internal/api/middleware"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/mocks"
	"github.com/phrazzld/userbase-api/internal/service"
	"github.com/phrazzld/userbase-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// testAPI serves the user and auth routes over the real UserService backed
// by the in-memory store. Bearer tokens have the form "token-for-<id>".
type testAPI struct {
	server *httptest.Server
	store  *mocks.MockUserStore
	svc    *service.UserServiceImpl
	jwt    *mocks.MockJWTService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := mocks.NewMockUserStore()
	st.Now = func() time.Time { return fixedNow }
	svc := service.NewUserService(st, &mocks.MockTxRunner{}, &mocks.MockPasswordHasher{}, log)

	jwtSvc := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-for-%d", &id); err != nil {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{UserID: id, TokenType: auth.TokenTypeAccess}, nil
		},
	}

	authHandler := api.NewAuthHandler(svc, jwtSvc, time.Hour, log).
		WithTimeFunc(func() time.Time { return fixedNow })
	userHandler := api.NewUserHandler(svc, log)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/users", userHandler.CreateUser)
			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/by-email", userHandler.GetUserByEmail)
			r.Get("/users/{id}", userHandler.GetUser)
			r.Patch("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testAPI{server: srv, store: st, svc: svc, jwt: jwtSvc}
}

// seedUser creates a user directly through the service.
func (a *testAPI) seedUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := a.svc.CreateUser(context.Background(), domain.NewUserParams{
		Email:    email,
		Password: "pw-" + email,
		Name:     "Seeded",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

// do sends a request as actingUserID (0 means anonymous) and returns the
// status and body.
func (a *testAPI) do(t *testing.T, method, path string, actingUserID int64, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actingUserID > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer token-for-%d", actingUserID))
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), "body: %s", data)
	return v
}

func errorMessage(t *testing.T, data []byte) string {
	t.Helper()
	return decode[map[string]any](t, data)["error"].(string)
}
