package export

import (
	"fmt"

	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Resumen"

// SummaryXLSX gera uma pasta com uma aba e o cabeçalho congelado
func SummaryXLSX(rows []domain.SummaryRow, labels domain.SummaryLabels, sheet string) ([]byte, error) {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		amount, _ := r.Amount.Float64()
		records = append(records, []any{r.Key.String(), amount, r.Tickets})
	}
	return writeXLSX(sheet, labels.Columns(), records)
}

// TableXLSX gera a planilha de qualquer tabela; números saem como números
func TableXLSX(table *domain.Table, sheet string) ([]byte, error) {
	records := make([][]any, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make([]any, len(row))
		for i, v := range row {
			if f, ok := v.Float(); ok {
				record[i] = f
				continue
			}
			record[i] = v.String()
		}
		records = append(records, record)
	}
	return writeXLSX(sheet, table.Columns, records)
}

func writeXLSX(sheet string, headers []string, records [][]any) ([]byte, error) {
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("erro ao nomear aba: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %d: %w", i+1, err)
		}
	}

	if len(headers) > 0 {
		if err := styleHeader(f, sheet, len(headers)); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("erro ao congelar cabeçalho: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar xlsx: %w", err)
	}

	return buf.Bytes(), nil
}

func styleHeader(f *excelize.File, sheet string, width int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}
