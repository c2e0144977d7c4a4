package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
)

// Operator é quem usa o painel; identificado por nome + PIN
type Operator struct {
	Name string `json:"name"`
	PIN  string `json:"-"`
	Role string `json:"role"`
}

func (o Operator) IsAdmin() bool {
	return o.Role == RoleAdmin
}

type Claims struct {
	OperatorName string `json:"operator_name"`
	OperatorRole string `json:"operator_role"`
	jwt.RegisteredClaims
}
