// Package aggregate agrupa a tabela normalizada por uma coluna chave
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

// casas decimais do valor somado
const amountPlaces = 2

type groupKey struct {
	missing bool
	kind    domain.ValueKind
	text    string
}

type group struct {
	key      domain.Value
	amount   decimal.Decimal
	distinct map[groupKey]struct{}
	rows     int
}

func keyOf(v domain.Value) groupKey {
	if v.IsMissing() {
		return groupKey{missing: true}
	}
	return groupKey{kind: v.Kind(), text: v.String()}
}

// Summarize agrupa por key somando metric e contando valores distintos de
// distinct. Nenhuma linha é descartada: chave ausente forma o próprio grupo.
// Ordem: valor desc, depois chave asc (chave ausente por último).
func Summarize(table *domain.Table, key, metric, distinct string) ([]domain.SummaryRow, error) {
	if missing := table.MissingColumns(key, metric, distinct); len(missing) > 0 {
		return nil, &domain.SchemaError{
			Missing: missing,
			Present: append([]string(nil), table.Columns...),
		}
	}

	keyIdx := table.ColumnIndex(key)
	metricIdx := table.ColumnIndex(metric)
	distinctIdx := table.ColumnIndex(distinct)

	groups := make(map[groupKey]*group)
	order := make([]groupKey, 0)

	for _, row := range table.Rows {
		k := keyOf(row[keyIdx])

		g, ok := groups[k]
		if !ok {
			g = &group{
				key:      row[keyIdx],
				amount:   decimal.Zero,
				distinct: make(map[groupKey]struct{}),
			}
			groups[k] = g
			order = append(order, k)
		}

		g.rows++

		if f, ok := row[metricIdx].Float(); ok {
			g.amount = g.amount.Add(decimal.NewFromFloat(f))
		}

		if id := row[distinctIdx]; !id.IsMissing() {
			g.distinct[keyOf(id)] = struct{}{}
		}
	}

	summary := make([]domain.SummaryRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		summary = append(summary, domain.SummaryRow{
			Key:     g.key,
			Amount:  g.amount.Round(amountPlaces),
			Tickets: len(g.distinct),
			Rows:    g.rows,
		})
	}

	sort.SliceStable(summary, func(i, j int) bool {
		if c := summary[i].Amount.Cmp(summary[j].Amount); c != 0 {
			return c > 0
		}
		return keyLess(summary[i].Key, summary[j].Key)
	})

	return summary, nil
}

func keyLess(a, b domain.Value) bool {
	if a.Kind() != b.Kind() {
		return kindRank(a.Kind()) < kindRank(b.Kind())
	}

	if af, ok := a.Float(); ok {
		bf, _ := b.Float()
		return af < bf
	}

	return a.String() < b.String()
}

// números antes de texto, ausente por último
func kindRank(k domain.ValueKind) int {
	switch k {
	case domain.KindNumber:
		return 0
	case domain.KindText:
		return 1
	default:
		return 2
	}
}
