package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

func newService(t *testing.T) *Service {
	t.Helper()

	ops, err := config.ParseOperators([]string{"Ana:1234", "admin:0000:admin"})
	require.NoError(t, err)

	return NewService(config.Auth{Secret: "segredo", TTLHours: 1, Parsed: ops})
}

func TestLogin(t *testing.T) {
	service := newService(t)

	t.Run("nome sem diferenciar caixa", func(t *testing.T) {
		token, op, err := service.Login(" ana ", "1234")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Ana", op.Name)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "Ana", claims.OperatorName)
		assert.Equal(t, domain.RoleOperator, claims.OperatorRole)
	})

	t.Run("pin errado", func(t *testing.T) {
		_, _, err := service.Login("Ana", "9999")

		var authErr *AuthError
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, apiErrors.ErrInvalidCredentials, authErr.Code)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("operador desconhecido", func(t *testing.T) {
		_, _, err := service.Login("Zé", "1234")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("campos vazios", func(t *testing.T) {
		_, _, err := service.Login("", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestValidateToken(t *testing.T) {
	service := newService(t)

	token, _, err := service.Login("admin", "0000")
	require.NoError(t, err)

	t.Run("expirado", func(t *testing.T) {
		later := *service
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := later.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("outro segredo", func(t *testing.T) {
		other := *service
		other.secret = []byte("outro")

		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("algoritmo inesperado", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{OperatorName: "x"})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestOperators(t *testing.T) {
	service := newService(t)

	ops := service.Operators()
	require.Len(t, ops, 2)
	for _, op := range ops {
		assert.Empty(t, op.PIN)
	}
}
