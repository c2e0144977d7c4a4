package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Schema define as colunas fixas de uma coleção mantida em sessão
type Schema struct {
	Name    string
	Key     string
	Columns []string
	Numeric []string
}

// IsNumeric informa se a coluna deve ser exportada como número
func (s Schema) IsNumeric(column string) bool {
	for _, c := range s.Numeric {
		if c == column {
			return true
		}
	}
	return false
}

// Record é uma linha de uma coleção: chave + campos nomeados pelo Schema
type Record struct {
	Key       string            `json:"key"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewRecord cria um registro vazio para a chave
func NewRecord(key string) *Record {
	return &Record{
		Key:    key,
		Fields: make(map[string]string),
	}
}

// Get retorna o campo ou string vazia
func (r *Record) Get(column string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[column]
}

// Set define um campo
func (r *Record) Set(column, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[column] = value
}

// Clone copia o registro para que o chamador não altere o armazenado
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := NewRecord(r.Key)
	for k, v := range r.Fields {
		c.Fields[k] = v
	}
	c.UpdatedAt = r.UpdatedAt
	return c
}

// Table monta a tabela da coleção na ordem das colunas do schema.
// Colunas numéricas com valor inválido ficam ausentes.
func (s Schema) Table(records []*Record) *Table {
	table := &Table{
		Columns: append([]string(nil), s.Columns...),
		Rows:    make([][]Value, 0, len(records)),
	}

	for _, r := range records {
		row := make([]Value, len(s.Columns))
		for i, col := range s.Columns {
			raw := r.Get(col)
			if col == s.Key {
				raw = r.Key
			}

			if !s.IsNumeric(col) {
				row[i] = TextOrMissing(raw)
				continue
			}

			f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				row[i] = Missing()
				continue
			}
			row[i] = Number(f)
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
