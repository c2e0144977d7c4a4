package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/infrastructure/database"
	"github.com/vfg2006/sales-report-api/infrastructure/database/sqlite"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

func newSQLiteRepository(t *testing.T, schema domain.Schema) RecordRepository {
	t.Helper()

	conn, err := sqlite.NewConnection(context.Background(), config.Database{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, database.EnsureSchema(conn))

	return NewSQLRecordRepository(conn, schema)
}

func TestRecordRepository(t *testing.T) {
	backends := map[string]func(t *testing.T, schema domain.Schema) RecordRepository{
		"memory": func(t *testing.T, schema domain.Schema) RecordRepository {
			return NewMemoryRecordRepository(schema)
		},
		"sqlite": newSQLiteRepository,
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			t.Run("get de chave inexistente", func(t *testing.T) {
				repo := newRepo(t, domain.InventorySchema)

				rec, err := repo.Get("nada")
				require.NoError(t, err)
				assert.Nil(t, rec)
			})

			t.Run("put, get e sobrescrita", func(t *testing.T) {
				repo := newRepo(t, domain.InventorySchema)

				item := &domain.InventoryItem{SKU: "A-1", Name: "Camiseta", OnHand: 3}
				require.NoError(t, repo.Put(item.ToRecord()))

				item.OnHand = 5
				require.NoError(t, repo.Put(item.ToRecord()))

				rec, err := repo.Get("A-1")
				require.NoError(t, err)
				require.NotNil(t, rec)
				assert.Equal(t, "5", rec.Get("existencia"))
				assert.Equal(t, "A-1", rec.Get("sku"))
				assert.False(t, rec.UpdatedAt.IsZero())
			})

			t.Run("registro devolvido é uma cópia", func(t *testing.T) {
				repo := newRepo(t, domain.ContactSchema)

				require.NoError(t, repo.Put((&domain.Contact{ID: "1", Name: "Ana"}).ToRecord()))

				rec, err := repo.Get("1")
				require.NoError(t, err)
				rec.Set("nombre", "Outra")

				again, err := repo.Get("1")
				require.NoError(t, err)
				assert.Equal(t, "Ana", again.Get("nombre"))
			})

			t.Run("delete", func(t *testing.T) {
				repo := newRepo(t, domain.ContactSchema)

				require.NoError(t, repo.Put((&domain.Contact{ID: "1", Name: "Ana"}).ToRecord()))
				require.NoError(t, repo.Delete("1"))
				require.NoError(t, repo.Delete("1"))

				rec, err := repo.Get("1")
				require.NoError(t, err)
				assert.Nil(t, rec)
			})

			t.Run("chave vazia", func(t *testing.T) {
				repo := newRepo(t, domain.ContactSchema)
				assert.ErrorIs(t, repo.Put(domain.NewRecord("")), ErrEmptyKey)
			})

			t.Run("snapshot ordenado pela chave", func(t *testing.T) {
				repo := newRepo(t, domain.InventorySchema)

				require.NoError(t, repo.Put((&domain.InventoryItem{SKU: "B", Name: "Gorra", OnHand: 1}).ToRecord()))
				require.NoError(t, repo.Put((&domain.InventoryItem{SKU: "A", Name: "Camiseta", OnHand: 2.5}).ToRecord()))

				table, err := repo.Snapshot()
				require.NoError(t, err)

				assert.Equal(t, domain.InventorySchema.Columns, table.Columns)
				require.Len(t, table.Rows, 2)
				assert.Equal(t, "A", table.Rows[0][0].String())
				onHand, ok := table.Rows[0][2].Float()
				require.True(t, ok)
				assert.Equal(t, 2.5, onHand)
			})

			t.Run("coleções não se misturam", func(t *testing.T) {
				repo := newRepo(t, domain.ContactSchema)
				require.NoError(t, repo.Put((&domain.Contact{ID: "1", Name: "Ana"}).ToRecord()))

				records, err := repo.List()
				require.NoError(t, err)
				assert.Len(t, records, 1)
			})
		})
	}
}

func TestSQLRecordRepository_SharedTable(t *testing.T) {
	conn, err := sqlite.NewConnection(context.Background(), config.Database{DSN: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, database.EnsureSchema(conn))

	contacts := NewSQLRecordRepository(conn, domain.ContactSchema)
	attendance := NewSQLRecordRepository(conn, domain.AttendanceSchema)

	require.NoError(t, contacts.Put((&domain.Contact{ID: "1", Name: "Ana"}).ToRecord()))
	require.NoError(t, attendance.Put((&domain.AttendanceEntry{ID: "1", Name: "Bob"}).ToRecord()))

	rec, err := contacts.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", rec.Get("nombre"))

	rec, err = attendance.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Bob", rec.Get("nombre"))
}

func TestMemoryRecordRepository_KeepsUpdatedAt(t *testing.T) {
	repo := NewMemoryRecordRepository(domain.ContactSchema)

	when := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	contact := &domain.Contact{ID: "1", Name: "Ana", UpdatedAt: when}
	require.NoError(t, repo.Put(contact.ToRecord()))

	rec, err := repo.Get("1")
	require.NoError(t, err)
	assert.Equal(t, when, rec.UpdatedAt)
}

func TestFileFlusher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.csv")

	repo := NewMemoryRecordRepository(domain.InventorySchema)
	require.NoError(t, repo.Put((&domain.InventoryItem{SKU: "A-1", Name: "Camiseta", OnHand: 3}).ToRecord()))

	flusher := NewFileFlusher(repo, path)
	assert.Equal(t, "inventario", flusher.Name())
	require.NoError(t, flusher.Flush())

	restored := NewMemoryRecordRepository(domain.InventorySchema)
	n, err := LoadFromFile(restored, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := restored.Get("A-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "3", rec.Get("existencia"))
}
