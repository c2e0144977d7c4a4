package authenticating

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

type Authenticator interface {
	Login(name, pin string) (string, *domain.Operator, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	Operators() []domain.Operator
}

type Service struct {
	operators map[string]domain.Operator
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(cfg config.Auth) *Service {
	operators := make(map[string]domain.Operator, len(cfg.Parsed))
	for _, op := range cfg.Parsed {
		operators[normalizeName(op.Name)] = op
	}

	ttl := time.Duration(cfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Service{
		operators: operators,
		secret:    []byte(cfg.Secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Login compara nome e PIN com os operadores configurados e emite o JWT
func (s *Service) Login(name, pin string) (string, *domain.Operator, error) {
	if strings.TrimSpace(name) == "" || pin == "" {
		return "", nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome e PIN são obrigatórios")
	}

	op, ok := s.operators[normalizeName(name)]
	if !ok || subtle.ConstantTimeCompare([]byte(op.PIN), []byte(pin)) != 1 {
		logrus.WithField("operator", name).Warn("Tentativa de login inválida")
		return "", nil, NewOperatorAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, name, "Nome ou PIN incorretos")
	}

	token, err := s.generateJWT(op)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, &op, nil
}

func (s *Service) generateJWT(op domain.Operator) (string, error) {
	now := s.now()
	claims := domain.Claims{
		OperatorName: op.Name,
		OperatorRole: op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}

// Operators lista os operadores configurados, sem PIN
func (s *Service) Operators() []domain.Operator {
	out := make([]domain.Operator, 0, len(s.operators))
	for _, op := range s.operators {
		op.PIN = ""
		out = append(out, op)
	}
	return out
}
