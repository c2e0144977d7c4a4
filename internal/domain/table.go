package domain

// Format é o formato declarado pelo usuário para o arquivo enviado
type Format string

const (
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat aceita os apelidos usados pelo front ("xls" do Erply é HTML)
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "html", "htm", "xls":
		return FormatHTML, true
	case "xlsx", "excel":
		return FormatXLSX, true
	case "csv":
		return FormatCSV, true
	default:
		return "", false
	}
}

// RawTable é a tabela como veio do arquivo, antes de qualquer limpeza.
// Headers[i] guarda os níveis do cabeçalho da coluna i, do mais externo ao
// mais específico.
type RawTable struct {
	Headers [][]string
	Rows    [][]string
}

// Width retorna a quantidade de colunas
func (t *RawTable) Width() int {
	return len(t.Headers)
}

// Table é a tabela normalizada: nomes canônicos e células tipadas.
// Toda linha tem exatamente len(Columns) valores.
type Table struct {
	Columns  []string            `json:"columns"`
	Rows     [][]Value           `json:"rows"`
	Warnings []ConversionWarning `json:"warnings,omitempty"`
}

// ColumnIndex retorna a posição da primeira coluna com esse nome, ou -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn informa se a coluna existe
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// MissingColumns retorna as colunas pedidas que não existem, na ordem pedida
func (t *Table) MissingColumns(names ...string) []string {
	missing := make([]string, 0)
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
