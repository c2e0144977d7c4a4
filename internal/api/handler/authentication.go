package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/middleware"
)

type LoginRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

type LoginResponse struct {
	Token    string           `json:"token"`
	Operator *domain.Operator `json:"operator"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, operator, err := service.Login(req.Name, req.PIN)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token, Operator: operator})
	}
}

// GetMe retorna o operador do token
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Operador não autenticado", nil)
			return
		}

		writeJSON(w, http.StatusOK, domain.Operator{
			Name: claims.OperatorName,
			Role: claims.OperatorRole,
		})
	}
}

// handleLoginError trata erros específicos de login e retorna a resposta apropriada
func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), map[string]any{
			"operator": authErr.Operator,
		})
		return
	}

	switch {
	case authenticating.IsCredentialsError(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)

	case errors.Is(err, authenticating.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome e PIN são obrigatórios", nil)

	default:
		logrus.WithError(err).Error("Erro ao realizar login")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
	}
}
