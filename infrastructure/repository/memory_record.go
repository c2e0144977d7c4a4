package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/sales-report-api/internal/domain"
)

type memoryRecordRepository struct {
	schema  domain.Schema
	mu      sync.RWMutex
	records map[string]*domain.Record
	now     func() time.Time
}

func NewMemoryRecordRepository(schema domain.Schema) RecordRepository {
	return &memoryRecordRepository{
		schema:  schema,
		records: make(map[string]*domain.Record),
		now:     time.Now,
	}
}

func (r *memoryRecordRepository) Schema() domain.Schema {
	return r.schema
}

func (r *memoryRecordRepository) Get(key string) (*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.records[key].Clone(), nil
}

func (r *memoryRecordRepository) Put(record *domain.Record) error {
	if record == nil || record.Key == "" {
		return ErrEmptyKey
	}

	stored := record.Clone()
	stored.Set(r.schema.Key, stored.Key)
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[stored.Key] = stored
	return nil
}

func (r *memoryRecordRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, key)
	return nil
}

// List devolve cópias ordenadas pela chave
func (r *memoryRecordRepository) List() ([]*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*domain.Record, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec.Clone())
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Key < records[j].Key
	})

	return records, nil
}

func (r *memoryRecordRepository) Snapshot() (*domain.Table, error) {
	records, err := r.List()
	if err != nil {
		return nil, err
	}
	return r.schema.Table(records), nil
}
