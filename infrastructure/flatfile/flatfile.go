// Package flatfile grava e lê coleções como CSV (UTF-8 com BOM)
package flatfile

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/export"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Save reescreve o arquivo inteiro com a tabela (última escrita vence).
// Grava em arquivo temporário e renomeia para não deixar CSV pela metade.
func Save(path string, table *domain.Table) error {
	data, err := export.TableCSV(table)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar tabela")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "erro ao criar arquivo temporário")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "erro ao gravar arquivo temporário")
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return errors.Wrapf(os.Rename(tmp.Name(), path), "erro ao substituir %s", path)
}

// Load lê o CSV da coleção. Arquivo inexistente retorna lista vazia.
// Colunas desconhecidas são ignoradas; linhas sem chave são descartadas.
func Load(path string, schema domain.Schema) ([]*domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "csv inválido em %s", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}

	keyIdx, ok := index[schema.Key]
	if !ok {
		return nil, &domain.SchemaError{Missing: []string{schema.Key}, Present: rows[0]}
	}

	now := time.Now()
	records := make([]*domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if keyIdx >= len(row) || strings.TrimSpace(row[keyIdx]) == "" {
			continue
		}

		rec := domain.NewRecord(strings.TrimSpace(row[keyIdx]))
		for _, col := range schema.Columns {
			if i, ok := index[col]; ok && i < len(row) {
				rec.Set(col, row[i])
			}
		}
		rec.Set(schema.Key, rec.Key)
		rec.UpdatedAt = now

		records = append(records, rec)
	}

	return records, nil
}

// PathFor é o arquivo padrão de uma coleção dentro do diretório de dados
func PathFor(dir string, schema domain.Schema) string {
	return filepath.Join(dir, schema.Name+".csv")
}
