package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

const salesHTML = `<table>
<tr><th>Fecha</th><th>Factura de ventas</th><th>Creador de factura</th><th>Ventas totales con IVA ($)</th></tr>
<tr><td>2024-01-01</td><td>INV-1</td><td>Ana</td><td>100.00</td></tr>
<tr><td>2024-01-01</td><td>INV-2</td><td>Ana</td><td>50.00</td></tr>
<tr><td>2024-01-02</td><td>INV-3</td><td>Bob</td><td>n/a</td></tr>
<tr><td>TOTAL ($)</td><td></td><td></td><td>150.00</td></tr>
</table>`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResumen(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ventas.xls")
	require.NoError(t, os.WriteFile(input, []byte(salesHTML), 0o644))

	t.Run("gera csv e xlsx", func(t *testing.T) {
		out := filepath.Join(dir, "both")

		_, stderr, err := execute(t, input, "--out-dir", out)
		require.NoError(t, err)

		csvData, err := os.ReadFile(filepath.Join(out, "resumen_vendedores.csv"))
		require.NoError(t, err)
		assert.Equal(t, "\ufeffvendedor,importe_con_iva,tickets\nAna,150.00,2\nBob,0.00,1\n", string(csvData))

		assert.FileExists(t, filepath.Join(out, "resumen_vendedores.xlsx"))
		assert.Contains(t, stderr, "aviso:")
	})

	t.Run("json no stdout", func(t *testing.T) {
		stdout, _, err := execute(t, input, "--json", "--type", "csv", "--out-dir", filepath.Join(dir, "json"))
		require.NoError(t, err)

		assert.Contains(t, stdout, `"profile": "erply-ventas-por-vendedor"`)
		assert.NoFileExists(t, filepath.Join(dir, "json", "resumen_vendedores.xlsx"))
	})

	t.Run("tipo inválido", func(t *testing.T) {
		_, _, err := execute(t, input, "--type", "pdf")
		assert.Error(t, err)
	})

	t.Run("arquivo inexistente", func(t *testing.T) {
		_, _, err := execute(t, filepath.Join(dir, "nada.xls"))
		assert.Error(t, err)
	})
}

func TestResolveFormat(t *testing.T) {
	format, err := resolveFormat("", "reporte.XLS")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatHTML, format)

	format, err = resolveFormat("csv", "reporte.xls")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatCSV, format)

	_, err = resolveFormat("", "reporte.pdf")
	assert.Error(t, err)
}
