package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos papéis
// allowedRoles são os papéis que têm permissão para acessar a rota
func RoleMiddleware(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Operador não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, claims.OperatorRole) {
				logrus.Warningf("Acesso negado para operador=%s, papel=%s", claims.OperatorName, claims.OperatorRole)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext devolve as claims colocadas pelo AuthMiddleware
func ClaimsFromContext(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
	return claims, ok && claims != nil
}

// AdminOnly é um middleware que permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleOperator)
}
