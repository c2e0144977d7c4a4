// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"errors"

	"github.com/vfg2006/sales-report-api/internal/domain"
)

var ErrEmptyKey = errors.New("registro sem chave")

// RecordRepository guarda as linhas de uma coleção (inventário, contatos, lista).
// Get devolve (nil, nil) quando a chave não existe.
type RecordRepository interface {
	Schema() domain.Schema
	Get(key string) (*domain.Record, error)
	Put(record *domain.Record) error
	Delete(key string) error
	List() ([]*domain.Record, error)
	Snapshot() (*domain.Table, error)
}
