package shared

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)

	traceID := GetTraceID(ctxWithTrace)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "Expected generated trace ID to be a UUID")
	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)))
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		keepIn bool
	}{
		{"plain id", "req-123", true},
		{"dotted id", "abc.def_ghi", true},
		{"empty", "", false},
		{"header injection", "abc\r\nX-Evil: 1", false},
		{"too long", strings.Repeat("a", 65), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := GetTraceID(WithTraceID(context.Background(), tc.in))
			if tc.keepIn {
				assert.Equal(t, tc.in, got)
				return
			}
			assert.NotEqual(t, tc.in, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123) // Not a string
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID when context has invalid type")
}

func TestUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = GetUserID(WithUserID(context.Background(), 0))
	assert.False(t, ok, "non-positive IDs are not authenticated users")

	_, ok = GetUserID(context.WithValue(context.Background(), UserIDContextKey, "42"))
	assert.False(t, ok, "wrong type")
}
