// Package ingest lê os bytes enviados pelo usuário e produz uma RawTable
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

var ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")

// Options controla onde está o cabeçalho em planilhas e CSV
type Options struct {
	Sheet        string
	HeaderOffset int
	HeaderRows   int
	MinColumns   int
}

// OptionsFromProfile extrai os parâmetros de leitura de um perfil
func OptionsFromProfile(profile domain.ReportProfile) Options {
	return Options{
		Sheet:        profile.InputSheet,
		HeaderOffset: profile.HeaderOffset,
		HeaderRows:   profile.HeaderRows,
		MinColumns:   profile.MinColumns,
	}
}

// Ingest converte os bytes no formato declarado em uma RawTable.
// Não depende de nenhum estado anterior.
func Ingest(data []byte, format domain.Format, opts Options) (*domain.RawTable, error) {
	if opts.HeaderRows <= 0 {
		opts.HeaderRows = 1
	}

	var (
		table *domain.RawTable
		err   error
	)

	switch format {
	case domain.FormatHTML:
		table, err = parseHTML(data)
	case domain.FormatXLSX:
		table, err = parseXLSX(data, opts)
	case domain.FormatCSV:
		table, err = parseCSV(data, opts)
	default:
		return nil, &domain.ParseError{Format: format, Element: ElementFormat, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return nil, err
	}

	if opts.MinColumns > 0 && table.Width() < opts.MinColumns {
		return nil, &domain.ParseError{
			Format:   format,
			Element:  domain.ElementColumns,
			Expected: fmt.Sprintf("ao menos %d colunas", opts.MinColumns),
			Found:    strconv.Itoa(table.Width()),
		}
	}

	logrus.WithFields(logrus.Fields{
		"format":  format,
		"columns": table.Width(),
		"rows":    len(table.Rows),
	}).Debug("Tabela lida do arquivo")

	return table, nil
}

// ElementFormat é usado quando o próprio formato declarado é inválido
const ElementFormat = "format"

// fromGrid monta a RawTable a partir de linhas já lidas (planilha ou CSV)
func fromGrid(format domain.Format, rows [][]string, opts Options) (*domain.RawTable, error) {
	if opts.HeaderOffset < 0 {
		opts.HeaderOffset = 0
	}

	headerEnd := opts.HeaderOffset + opts.HeaderRows
	if headerEnd > len(rows) {
		return nil, &domain.ParseError{
			Format:   format,
			Element:  domain.ElementHeaderRow,
			Expected: fmt.Sprintf("cabeçalho na linha %d", opts.HeaderOffset+1),
			Found:    fmt.Sprintf("%d linhas", len(rows)),
		}
	}

	headerRows := rows[opts.HeaderOffset:headerEnd]
	dataRows := rows[headerEnd:]

	width := 0
	for _, r := range headerRows {
		width = max(width, len(r))
	}
	for _, r := range dataRows {
		width = max(width, len(r))
	}

	if width == 0 {
		return nil, &domain.ParseError{
			Format:   format,
			Element:  domain.ElementHeaderRow,
			Expected: "cabeçalho com colunas",
			Found:    "linha vazia",
		}
	}

	return buildRawTable(headerRows, dataRows, width), nil
}

// buildRawTable completa linhas curtas e descarta linhas totalmente vazias
func buildRawTable(headerRows, dataRows [][]string, width int) *domain.RawTable {
	table := &domain.RawTable{
		Headers: make([][]string, width),
		Rows:    make([][]string, 0, len(dataRows)),
	}

	for col := 0; col < width; col++ {
		levels := make([]string, len(headerRows))
		for level, r := range headerRows {
			if col < len(r) {
				levels[level] = strings.TrimSpace(r[col])
			}
		}
		table.Headers[col] = levels
	}

	for _, r := range dataRows {
		if isBlankRow(r) {
			continue
		}
		row := make([]string, width)
		copy(row, r)
		table.Rows = append(table.Rows, row)
	}

	return table
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
