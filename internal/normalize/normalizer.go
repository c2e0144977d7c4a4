// Package normalize transforma a RawTable na tabela canônica de um perfil
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

// prefixo que o pandas/Erply usa para níveis de cabeçalho vazios
const placeholderPrefix = "unnamed"

// Normalize achata o cabeçalho, remove linhas de total, converte as colunas
// numéricas e valida as colunas obrigatórias do perfil
func Normalize(raw *domain.RawTable, profile domain.ReportProfile) (*domain.Table, error) {
	columns := FlattenHeaders(raw.Headers)
	for i, c := range columns {
		if renamed, ok := profile.Renames[c]; ok {
			columns[i] = renamed
		}
	}

	table := &domain.Table{
		Columns:  columns,
		Rows:     make([][]domain.Value, 0, len(raw.Rows)),
		Warnings: make([]domain.ConversionWarning, 0),
	}

	if missing := table.MissingColumns(profile.RequiredColumns()...); len(missing) > 0 {
		return nil, &domain.SchemaError{
			Missing: missing,
			Present: append([]string(nil), columns...),
		}
	}

	marker := profile.SentinelMarker
	if marker == "" {
		marker = domain.DefaultSentinelMarker
	}

	identity := indexesOf(columns, profile.IdentityColumns)
	numeric := make(map[int]bool)
	for _, idx := range indexesOf(columns, profile.NumericColumns) {
		numeric[idx] = true
	}

	dropped := 0
	for rowIndex, cells := range raw.Rows {
		if isSentinelRow(cells, identity, marker) {
			dropped++
			continue
		}

		row := make([]domain.Value, len(columns))
		for col := range columns {
			cell := ""
			if col < len(cells) {
				cell = cells[col]
			}

			if !numeric[col] {
				row[col] = domain.TextOrMissing(strings.TrimSpace(cell))
				continue
			}

			value, ok := ParseNumber(cell)
			if !ok {
				table.Warnings = append(table.Warnings, domain.ConversionWarning{
					Column: columns[col],
					Row:    rowIndex + 1,
					Value:  cell,
				})
			}
			row[col] = value
		}

		table.Rows = append(table.Rows, row)
	}

	logrus.WithFields(logrus.Fields{
		"profile":       profile.Name,
		"rows":          len(table.Rows),
		"sentinel_rows": dropped,
		"not_a_number":  len(table.Warnings),
		"column_count":  len(columns),
	}).Debug("Tabela normalizada")

	return table, nil
}

// FlattenHeaders escolhe um nome por coluna: o nível mais específico que não
// seja vazio nem placeholder; senão o último nível cru; senão Column_<n>
func FlattenHeaders(headers [][]string) []string {
	columns := make([]string, len(headers))

	for i, levels := range headers {
		name := ""
		for j := len(levels) - 1; j >= 0; j-- {
			part := strings.TrimSpace(levels[j])
			if part != "" && !isPlaceholder(part) {
				name = part
				break
			}
		}

		if name == "" && len(levels) > 0 {
			name = strings.TrimSpace(levels[len(levels)-1])
		}
		if name == "" {
			name = fmt.Sprintf("Column_%d", i+1)
		}

		columns[i] = name
	}

	return columns
}

func isPlaceholder(label string) bool {
	return strings.HasPrefix(strings.ToLower(label), placeholderPrefix)
}

// ParseNumber converte uma célula numérica. Vazio vira ausente sem falha;
// texto não numérico vira ausente e retorna false.
func ParseNumber(cell string) (domain.Value, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return domain.Missing(), true
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.Missing(), false
	}

	return domain.Number(f), true
}

func isSentinelRow(row []string, identity []int, marker string) bool {
	for _, idx := range identity {
		if idx < len(row) && strings.EqualFold(strings.TrimSpace(row[idx]), marker) {
			return true
		}
	}
	return false
}

// indexesOf retorna as posições das colunas que existem na tabela
func indexesOf(columns []string, names []string) []int {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	indexes := make([]int, 0, len(names))
	for i, c := range columns {
		if wanted[c] {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
