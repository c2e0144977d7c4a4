package domain

import "time"

// Report é o resultado de um processamento: o resumo e o que foi descartado
type Report struct {
	ID          string              `json:"id"`
	Profile     string              `json:"profile"`
	Format      Format              `json:"format"`
	Fingerprint string              `json:"fingerprint"`
	Labels      SummaryLabels       `json:"labels"`
	Rows        []SummaryRow        `json:"rows"`
	Warnings    []ConversionWarning `json:"warnings"`
	RowsRead    int                 `json:"rows_read"`
	CreatedAt   time.Time           `json:"created_at"`

	Table *Table `json:"-"`
}

// ExportFile é um arquivo pronto para download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
