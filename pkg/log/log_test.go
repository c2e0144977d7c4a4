package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	t.Run("reaproveita o id recebido", func(t *testing.T) {
		ctx, id := WithCorrelationID(context.Background(), " abc-123 ")

		assert.Equal(t, "abc-123", id)
		assert.Equal(t, "abc-123", GetCorrelationID(ctx))
	})

	t.Run("gera um novo id", func(t *testing.T) {
		ctx, id := WithCorrelationID(context.Background(), "")

		assert.Len(t, id, 36)
		assert.Equal(t, id, GetCorrelationID(ctx))
	})

	t.Run("contexto sem id", func(t *testing.T) {
		assert.Empty(t, GetCorrelationID(context.Background()))
	})
}

func TestConfigure(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	defer SetupTestLogger()

	assert.Equal(t, logrus.WarnLevel, Configure("warn"))
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Equal(t, logrus.InfoLevel, Configure("barulhento"))
}
