package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/userbase-api/internal/api/shared"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func requestWithIDParam(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9007199254740993", 9007199254740993, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := getPathID(requestWithIDParam(tt.raw), "id")
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidID)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleUserIDAndPathID(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		req := requestWithIDParam("12")
		req = req.WithContext(shared.WithUserID(req.Context(), 3))
		rec := httptest.NewRecorder()

		userID, pathID, ok := handleUserIDAndPathID(rec, req, "id", log)

		assert.True(t, ok)
		assert.Equal(t, int64(3), userID)
		assert.Equal(t, int64(12), pathID)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		rec := httptest.NewRecorder()

		_, _, ok := handleUserIDAndPathID(rec, requestWithIDParam("12"), "id", log)

		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad path id", func(t *testing.T) {
		req := requestWithIDParam("twelve")
		req = req.WithContext(shared.WithUserID(req.Context(), 3))
		rec := httptest.NewRecorder()

		_, _, ok := handleUserIDAndPathID(rec, req, "id", nil)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid ID")
	})
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
	}{
		{"valid", `{"email":"a@example.com","password":"pw"}`, true, 0},
		{"malformed", `{"email":`, false, http.StatusBadRequest},
		{"empty", ``, false, http.StatusBadRequest},
		{"fails validation", `{"email":"nope","password":"pw"}`, false, http.StatusBadRequest},
		{"unknown field", `{"email":"a@example.com","password":"pw","role":"admin"}`, false, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst LoginRequest
			ok := decodeAndValidate(rec, req, &dst)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.wantStatus, rec.Code)
			}
		})
	}
}
