package domain

import "github.com/shopspring/decimal"

// SummaryRow é uma linha do resumo: um grupo por valor distinto da chave
type SummaryRow struct {
	Key     Value           `json:"key"`
	Amount  decimal.Decimal `json:"amount"`
	Tickets int             `json:"tickets"`
	Rows    int             `json:"rows"`
}

// SummaryLabels são os nomes das colunas do resumo na saída (CSV/XLSX)
type SummaryLabels struct {
	Key     string `yaml:"key" json:"key"`
	Amount  string `yaml:"amount" json:"amount"`
	Tickets string `yaml:"tickets" json:"tickets"`
}

// Columns retorna os rótulos na ordem de saída
func (l SummaryLabels) Columns() []string {
	return []string{l.Key, l.Amount, l.Tickets}
}

// ReportProfile descreve o conjunto canônico de colunas de um tipo de export
type ReportProfile struct {
	Name            string            `yaml:"name" json:"name"`
	Description     string            `yaml:"description" json:"description"`
	KeyColumn       string            `yaml:"key_column" json:"key_column"`
	MetricColumn    string            `yaml:"metric_column" json:"metric_column"`
	DistinctColumn  string            `yaml:"distinct_column" json:"distinct_column"`
	IdentityColumns []string          `yaml:"identity_columns" json:"identity_columns"`
	NumericColumns  []string          `yaml:"numeric_columns" json:"numeric_columns"`
	Renames         map[string]string `yaml:"renames" json:"renames,omitempty"`
	SentinelMarker  string            `yaml:"sentinel_marker" json:"sentinel_marker"`
	Output          SummaryLabels     `yaml:"output" json:"output"`
	SheetName       string            `yaml:"sheet_name" json:"sheet_name"`
	FileBaseName    string            `yaml:"file_base_name" json:"file_base_name"`

	// Parâmetros do Ingestor para planilhas reais e CSV
	InputSheet   string `yaml:"input_sheet" json:"input_sheet,omitempty"`
	HeaderOffset int    `yaml:"header_offset" json:"header_offset"`
	HeaderRows   int    `yaml:"header_rows" json:"header_rows"`
	MinColumns   int    `yaml:"min_columns" json:"min_columns"`
}

// RequiredColumns são as colunas sem as quais não há resumo
func (p ReportProfile) RequiredColumns() []string {
	return []string{p.KeyColumn, p.MetricColumn, p.DistinctColumn}
}

const DefaultSentinelMarker = "total ($)"

// ErplySalesBySeller é o perfil do relatório de vendas do Erply
// (o ".xls" exportado é uma tabela HTML)
var ErplySalesBySeller = ReportProfile{
	Name:            "erply-ventas-por-vendedor",
	Description:     "Ventas por vendedor (importe con IVA + tickets)",
	KeyColumn:       "Creador de factura",
	MetricColumn:    "Ventas totales con IVA ($)",
	DistinctColumn:  "Factura de ventas",
	IdentityColumns: []string{"Fecha", "Moneda", "Factura de ventas", "Creador de factura"},
	NumericColumns: []string{
		"Ventas totales con IVA ($)",
		"Ventas netas totales ($)",
		"IVA 16% ($)",
		"Cantidad vendida",
	},
	SentinelMarker: DefaultSentinelMarker,
	Output: SummaryLabels{
		Key:     "vendedor",
		Amount:  "importe_con_iva",
		Tickets: "tickets",
	},
	SheetName:    "Resumen",
	FileBaseName: "resumen_vendedores",
	HeaderRows:   1,
}
