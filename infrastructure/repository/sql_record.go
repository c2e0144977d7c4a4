package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-report-api/infrastructure/database"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

const recordsTable = "records"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// payload é o que vai na coluna payload (campos + data de atualização)
type payload struct {
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type sqlRecordRepository struct {
	conn   database.Queryer
	schema domain.Schema
	format squirrel.PlaceholderFormat
	now    func() time.Time
}

// NewSQLRecordRepository guarda a coleção na tabela records (Postgres ou SQLite)
func NewSQLRecordRepository(conn database.Conn, schema domain.Schema) RecordRepository {
	return &sqlRecordRepository{
		conn:   conn,
		schema: schema,
		format: conn.Placeholder(),
		now:    time.Now,
	}
}

// NewSQLRecordRepositoryTx opera dentro de uma transação já aberta
func NewSQLRecordRepositoryTx(tx database.Queryer, format squirrel.PlaceholderFormat, schema domain.Schema) RecordRepository {
	return &sqlRecordRepository{
		conn:   tx,
		schema: schema,
		format: format,
		now:    time.Now,
	}
}

func (r *sqlRecordRepository) Schema() domain.Schema {
	return r.schema
}

func (r *sqlRecordRepository) Get(key string) (*domain.Record, error) {
	query, args, err := squirrel.
		Select("record_key", "payload").
		From(recordsTable).
		Where(squirrel.Eq{"collection": r.schema.Name, "record_key": key}).
		PlaceholderFormat(r.format).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record, err := r.scan(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear registro: %w", err)
	}

	return record, nil
}

func (r *sqlRecordRepository) Put(record *domain.Record) error {
	if record == nil || record.Key == "" {
		return ErrEmptyKey
	}

	stored := record.Clone()
	stored.Set(r.schema.Key, stored.Key)
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = r.now()
	}

	body, err := json.Marshal(payload{Fields: stored.Fields, UpdatedAt: stored.UpdatedAt})
	if err != nil {
		return fmt.Errorf("erro ao serializar registro: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert(recordsTable).
		Columns("collection", "record_key", "payload", "updated_at").
		Values(r.schema.Name, stored.Key, string(body), stored.UpdatedAt.UTC()).
		Suffix(`
		ON CONFLICT (collection, record_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`).
		PlaceholderFormat(r.format)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *sqlRecordRepository) Delete(key string) error {
	query, args, err := squirrel.
		Delete(recordsTable).
		Where(squirrel.Eq{"collection": r.schema.Name, "record_key": key}).
		PlaceholderFormat(r.format).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao remover registro: %w", err)
	}

	return nil
}

func (r *sqlRecordRepository) List() ([]*domain.Record, error) {
	query, args, err := squirrel.
		Select("record_key", "payload").
		From(recordsTable).
		Where(squirrel.Eq{"collection": r.schema.Name}).
		OrderBy("record_key ASC").
		PlaceholderFormat(r.format).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.Record, 0)
	for rows.Next() {
		record, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *sqlRecordRepository) Snapshot() (*domain.Table, error) {
	records, err := r.List()
	if err != nil {
		return nil, err
	}
	return r.schema.Table(records), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *sqlRecordRepository) scan(row scanner) (*domain.Record, error) {
	var (
		key  string
		body string
	)

	if err := row.Scan(&key, &body); err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, err
	}

	record := domain.NewRecord(key)
	for k, v := range p.Fields {
		record.Fields[k] = v
	}
	record.UpdatedAt = p.UpdatedAt

	return record, nil
}
