package ingest

import (
	"bytes"
	"encoding/csv"

	"github.com/vfg2006/sales-report-api/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(data []byte, opts Options) (*domain.RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &domain.ParseError{Format: domain.FormatCSV, Element: domain.ElementTable, Err: err}
	}

	return fromGrid(domain.FormatCSV, rows, opts)
}
