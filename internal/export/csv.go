// Package export serializa resumos e tabelas em CSV e XLSX
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/vfg2006/sales-report-api/internal/domain"
)

// BOM para o Excel reconhecer UTF-8 (acentos)
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SummaryCSV gera o CSV do resumo: cabeçalho + uma linha por grupo, sem total
func SummaryCSV(rows []domain.SummaryRow, labels domain.SummaryLabels) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Key.String(),
			r.Amount.StringFixed(2),
			fmt.Sprintf("%d", r.Tickets),
		})
	}
	return writeCSV(labels.Columns(), records)
}

// TableCSV gera o CSV de qualquer tabela normalizada
func TableCSV(table *domain.Table) ([]byte, error) {
	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = v.String()
		}
		records = append(records, record)
	}
	return writeCSV(table.Columns, records)
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
