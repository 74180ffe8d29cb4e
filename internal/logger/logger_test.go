package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, log)
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, log)
	})

	t.Run("LOG_LEVEL overrides the default level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		Init("development")
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Test is silent", func(t *testing.T) {
		Init("test")
		assert.NotNil(t, log)
		assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
	})
}

func TestL(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	// Force nil to test lazy initialization
	log = nil
	t.Setenv("APP_ENV", "test")

	l := L()
	assert.NotNil(t, l)
	assert.NotNil(t, log)
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestID", func(t *testing.T) {
		assert.Equal(t, "req-1", RequestIDFrom(WithRequestID(ctx, "req-1")))
		assert.Equal(t, "", RequestIDFrom(ctx))
	})

	t.Run("UserID", func(t *testing.T) {
		assert.Equal(t, "user-1", UserIDFrom(WithUserID(ctx, "user-1")))
		assert.Equal(t, "", UserIDFrom(ctx))
	})
}

func TestFromCtx(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	originalLog := log
	log = zap.New(core)
	defer func() { log = originalLog }()

	t.Run("WithRequestAndUser", func(t *testing.T) {
		ctx := WithUserID(WithRequestID(context.Background(), "req-abc-123"), "user-42")

		FromCtx(ctx).Info("order confirmed")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, "user-42", fields["user_id"])
	})

	t.Run("Anonymous", func(t *testing.T) {
		FromCtx(context.Background()).Info("health")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		_, hasReq := fields["request_id"]
		_, hasUser := fields["user_id"]
		assert.False(t, hasReq)
		assert.False(t, hasUser)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
	})

	handler := RequestIDMiddleware(nextHandler)

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/orders", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("X-Request-ID", "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("Replaces malformed ID", func(t *testing.T) {
		for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("a", 65)} {
			req := httptest.NewRequest("GET", "/orders", nil)
			req.Header.Set("X-Request-ID", bad)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-ID")
			assert.NotEqual(t, bad, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		}
	})
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))

	L().Info("hello")
	assert.Equal(t, 1, logs.Len())

	restore()
	L().Info("not captured")
	assert.Equal(t, 1, logs.Len())
}
