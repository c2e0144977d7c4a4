package reporting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

// Erros específicos para o contexto de relatórios
var (
	ErrUnknownProfile    = errors.New("perfil de relatório não encontrado")
	ErrUnsupportedExport = errors.New("tipo de exportação não suportado")
	ErrEmptyUpload       = errors.New("arquivo vazio")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Profile string // Perfil envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, profile string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Profile: profile,
		Details: details,
	}
}

// classify associa erros do pipeline ao código da API
func classify(err error, profile string) *ReportError {
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return NewReportError(err, apiErrors.ErrReportParse, profile, "")
	}

	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		return NewReportError(err, apiErrors.ErrReportSchema, profile, "")
	}

	return NewReportError(err, apiErrors.ErrInternalServer, profile, "")
}
