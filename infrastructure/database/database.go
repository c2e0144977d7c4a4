// Package database reúne o que é comum às conexões SQL (Postgres e SQLite)
package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type Conn interface {
	Queryer
	Close() error
	Ping(ctx context.Context) error
	// Placeholder é o formato de parâmetros do driver ($1 ou ?)
	Placeholder() squirrel.PlaceholderFormat
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// RunInTransaction executa fn numa transação; erro ou panic desfazem tudo
func RunInTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rollback falhou: %v", rbErr)
		}
		return err
	}

	return tx.Commit()
}

const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	record_key TEXT NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, record_key)
)`

// EnsureSchema cria a tabela de registros se ainda não existir
func EnsureSchema(conn Queryer) error {
	if _, err := conn.Exec(recordsSchema); err != nil {
		return errors.Wrap(err, "erro ao criar tabela records")
	}
	return nil
}
