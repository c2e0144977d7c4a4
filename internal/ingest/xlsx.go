package ingest

import (
	"bytes"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// parseXLSX lê uma planilha real. Alguns exports trazem o cabeçalho
// algumas linhas abaixo, por isso o HeaderOffset.
func parseXLSX(data []byte, opts Options) (*domain.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.ParseError{Format: domain.FormatXLSX, Element: domain.ElementTable, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.ParseError{
			Format:   domain.FormatXLSX,
			Element:  domain.ElementTable,
			Expected: "ao menos 1 aba",
			Found:    "0",
		}
	}

	sheet := sheets[0]
	if opts.Sheet != "" {
		sheet = opts.Sheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &domain.ParseError{
			Format:   domain.FormatXLSX,
			Element:  domain.ElementTable,
			Expected: "aba " + sheet,
			Err:      err,
		}
	}

	logrus.WithFields(logrus.Fields{
		"sheet": sheet,
		"rows":  len(rows),
	}).Debug("Aba da planilha carregada")

	return fromGrid(domain.FormatXLSX, rows, opts)
}
