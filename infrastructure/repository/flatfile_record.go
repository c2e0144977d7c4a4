package repository

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-report-api/infrastructure/flatfile"
)

// Flusher grava uma coleção inteira em disco
type Flusher interface {
	Name() string
	Flush() error
}

type fileFlusher struct {
	repo RecordRepository
	path string
}

// NewFileFlusher reescreve o CSV da coleção a partir do snapshot atual
func NewFileFlusher(repo RecordRepository, path string) Flusher {
	return &fileFlusher{repo: repo, path: path}
}

func (f *fileFlusher) Name() string {
	return f.repo.Schema().Name
}

func (f *fileFlusher) Flush() error {
	table, err := f.repo.Snapshot()
	if err != nil {
		return errors.Wrapf(err, "erro ao gerar snapshot de %s", f.Name())
	}
	return flatfile.Save(f.path, table)
}

// LoadFromFile popula o repositório com o CSV da coleção e retorna quantos
// registros foram carregados
func LoadFromFile(repo RecordRepository, path string) (int, error) {
	records, err := flatfile.Load(path, repo.Schema())
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		if err := repo.Put(rec); err != nil {
			return 0, errors.Wrapf(err, "erro ao carregar registro %s", rec.Key)
		}
	}

	return len(records), nil
}
