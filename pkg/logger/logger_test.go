package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdir/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development logger with explicit level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")

		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("production logger with default level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")

		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("error on unknown level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "not-a-level")

		require.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestLoggerContext(t *testing.T) {
	t.Run("logger round trip through the context", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), log)

		extracted, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, extracted)
	})

	t.Run("error when the context has no logger", func(t *testing.T) {
		extracted, err := logger.FromContext(context.Background())

		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, extracted)
	})

	t.Run("error on nil context", func(t *testing.T) {
		extracted, err := logger.FromContext(nil) //nolint:staticcheck

		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, extracted)
	})
}

func TestLog(t *testing.T) {
	t.Run("context logger takes precedence", func(t *testing.T) {
		ctxLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), ctxLogger)

		assert.Same(t, ctxLogger, logger.Log(ctx))
	})

	t.Run("global logger is used when the context has none", func(t *testing.T) {
		globalLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)

		assert.Same(t, globalLogger, logger.Log(context.Background()))
	})

	t.Run("never returns nil", func(t *testing.T) {
		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestInitGlobalLogger(t *testing.T) {
	t.Run("initialization succeeds", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLogger(logger.Development, "info"))
	})

	t.Run("repeated initialization is a no-op", func(t *testing.T) {
		require.NoError(t, logger.InitGlobalLogger(logger.Development, "info"))
		require.NoError(t, logger.InitGlobalLogger(logger.Production, "warn"))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("explicit request id is preserved", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "my-request-id")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "my-request-id", id)
	})

	t.Run("empty request id is replaced with a generated one", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("bare context has no request id", func(t *testing.T) {
		id, ok := logger.GetRequestID(context.Background())

		assert.False(t, ok)
		assert.Empty(t, id)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})
}

func TestWithRequestID(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	t.Run("copy with request id field", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "my-request-id")

		withID := log.WithRequestID(ctx)
		assert.NotSame(t, log, withID)
	})

	t.Run("context without request id returns the same logger", func(t *testing.T) {
		withID := log.WithRequestID(context.Background())
		assert.Same(t, log, withID)
	})
}
