package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/infrastructure/database/sqlite"
	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

func TestImportAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventario.csv"),
		[]byte("\ufeffsku,nombre,existencia,vendido_30d,vendido_anual\nSKU-1,Camisa,4,10,100\nSKU-2,Gorra,0,3,20\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contactos.csv"),
		[]byte("id,nombre,telefono,seccion,estatus,notas\nc1,María,555,12,confirmado,\n"), 0o644))

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, config.Database{DSN: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	imported, err := importAll(ctx, conn, dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"inventario": 2, "contactos": 1, "lista": 0}, imported)

	inventory := repository.NewSQLRecordRepository(conn, domain.InventorySchema)
	rec, err := inventory.Get("SKU-2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Gorra", rec.Get("nombre"))

	contacts := repository.NewSQLRecordRepository(conn, domain.ContactSchema)
	list, err := contacts.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "confirmado", list[0].Get("estatus"))
}

func TestImportAll_Reimport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lista.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,nombre,grupo,presente,hora\np1,Juan,A,false,\n"), 0o644))

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, config.Database{DSN: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	_, err = importAll(ctx, conn, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("id,nombre,grupo,presente,hora\np1,Juan Pérez,A,false,\n"), 0o644))
	imported, err := importAll(ctx, conn, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, imported["lista"])

	repo := repository.NewSQLRecordRepository(conn, domain.AttendanceSchema)
	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Juan Pérez", list[0].Get("nombre"))
}
