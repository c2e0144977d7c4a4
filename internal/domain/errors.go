package domain

import (
	"fmt"
	"strings"
)

// Elementos estruturais que o Ingestor espera encontrar
const (
	ElementTable     = "table"
	ElementColumns   = "columns"
	ElementHeaderRow = "header row"
)

// ParseError indica que os bytes não contêm a estrutura de tabela esperada
type ParseError struct {
	Format   Format
	Element  string
	Expected string
	Found    string
	Err      error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("arquivo %s inválido: %s não encontrado", e.Format, e.Element)
	if e.Expected != "" || e.Found != "" {
		msg = fmt.Sprintf("%s (esperado: %s, encontrado: %s)", msg, e.Expected, e.Found)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indica que colunas canônicas obrigatórias não vieram no arquivo.
// Present lista tudo o que foi encontrado para diagnosticar mudança no export.
type SchemaError struct {
	Missing []string
	Present []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(
		"o arquivo não traz as colunas esperadas: [%s]; colunas encontradas: [%s]",
		strings.Join(e.Missing, ", "),
		strings.Join(e.Present, ", "),
	)
}

// ConversionWarning registra uma célula numérica que não pôde ser convertida.
// Não interrompe o processamento: a célula vira ausente.
type ConversionWarning struct {
	Column string `json:"column"`
	Row    int    `json:"row"`
	Value  string `json:"value"`
}

func (w ConversionWarning) String() string {
	return fmt.Sprintf("linha %d, coluna %q: valor %q não é numérico", w.Row, w.Column, w.Value)
}
