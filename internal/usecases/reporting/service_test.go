package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

const erplyHeader = `<tr><th>Fecha</th><th>Factura de ventas</th><th>Creador de factura</th><th>Ventas totales con IVA ($)</th></tr>`

func erplyHTML(rows ...[4]string) []byte {
	var b strings.Builder
	b.WriteString("<html><body><table><thead>" + erplyHeader + "</thead><tbody>")
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>", r[0], r[1], r[2], r[3])
	}
	b.WriteString("</tbody></table></body></html>")
	return []byte(b.String())
}

func anaBob() []byte {
	return erplyHTML(
		[4]string{"2024-01-01", "INV-1", "Ana", "100.00"},
		[4]string{"2024-01-01", "INV-2", "Ana", "50.00"},
		[4]string{"2024-01-02", "INV-3", "Bob", "75.00"},
	)
}

func TestBuildReport(t *testing.T) {
	service := NewService()

	t.Run("resumo por vendedor", func(t *testing.T) {
		report, err := service.BuildReport(anaBob(), domain.FormatHTML, domain.ErplySalesBySeller.Name)
		require.NoError(t, err)

		require.Len(t, report.Rows, 2)
		assert.Equal(t, "Ana", report.Rows[0].Key.String())
		assert.Equal(t, "150.00", report.Rows[0].Amount.StringFixed(2))
		assert.Equal(t, 2, report.Rows[0].Tickets)
		assert.Equal(t, "Bob", report.Rows[1].Key.String())
		assert.Equal(t, 1, report.Rows[1].Tickets)

		assert.Equal(t, 3, report.RowsRead)
		assert.NotEmpty(t, report.ID)
		assert.Equal(t, Fingerprint(anaBob()), report.Fingerprint)
		assert.Empty(t, report.Warnings)
	})

	t.Run("linha de total não entra no resumo", func(t *testing.T) {
		data := erplyHTML(
			[4]string{"2024-01-01", "INV-1", "Ana", "100.00"},
			[4]string{"2024-01-02", "INV-3", "Bob", "75.00"},
			[4]string{"TOTAL ($)", "", "", "175.00"},
		)

		report, err := service.BuildReport(data, domain.FormatHTML, domain.ErplySalesBySeller.Name)
		require.NoError(t, err)

		require.Len(t, report.Rows, 2)
		for _, row := range report.Rows {
			assert.False(t, row.Key.IsMissing())
		}
	})

	t.Run("valor não numérico gera aviso", func(t *testing.T) {
		data := erplyHTML(
			[4]string{"2024-01-01", "INV-1", "Ana", "n/a"},
			[4]string{"2024-01-01", "INV-2", "Ana", "10"},
		)

		report, err := service.BuildReport(data, domain.FormatHTML, domain.ErplySalesBySeller.Name)
		require.NoError(t, err)

		require.Len(t, report.Rows, 1)
		assert.Equal(t, "10.00", report.Rows[0].Amount.StringFixed(2))
		assert.Equal(t, 2, report.Rows[0].Tickets)
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "n/a", report.Warnings[0].Value)
	})

	t.Run("perfil desconhecido", func(t *testing.T) {
		_, err := service.BuildReport(anaBob(), domain.FormatHTML, "nao-existe")

		var repErr *ReportError
		require.True(t, errors.As(err, &repErr))
		assert.Equal(t, apiErrors.ErrUnknownProfile, repErr.Code)
		assert.True(t, errors.Is(err, ErrUnknownProfile))
	})

	t.Run("arquivo vazio", func(t *testing.T) {
		_, err := service.BuildReport(nil, domain.FormatHTML, domain.ErplySalesBySeller.Name)
		assert.True(t, errors.Is(err, ErrEmptyUpload))
	})

	t.Run("html sem tabela", func(t *testing.T) {
		_, err := service.BuildReport([]byte("<html><body><p>nada</p></body></html>"), domain.FormatHTML, domain.ErplySalesBySeller.Name)

		var repErr *ReportError
		require.True(t, errors.As(err, &repErr))
		assert.Equal(t, apiErrors.ErrReportParse, repErr.Code)

		var parseErr *domain.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, domain.ElementTable, parseErr.Element)
	})

	t.Run("coluna de vendedor ausente", func(t *testing.T) {
		data := []byte(`<table><tr><th>Fecha</th><th>Factura de ventas</th><th>Ventas totales con IVA ($)</th></tr>` +
			`<tr><td>2024-01-01</td><td>INV-1</td><td>10</td></tr></table>`)

		_, err := service.BuildReport(data, domain.FormatHTML, domain.ErplySalesBySeller.Name)

		var repErr *ReportError
		require.True(t, errors.As(err, &repErr))
		assert.Equal(t, apiErrors.ErrReportSchema, repErr.Code)

		var schemaErr *domain.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, []string{"Creador de factura"}, schemaErr.Missing)
	})
}

func TestBuildReport_CSVProfile(t *testing.T) {
	profile := domain.ReportProfile{
		Name:           "ventas-csv",
		KeyColumn:      "vendedor",
		MetricColumn:   "total",
		DistinctColumn: "ticket",
		NumericColumns: []string{"total"},
		Output:         domain.SummaryLabels{Key: "vendedor", Amount: "total", Tickets: "tickets"},
		FileBaseName:   "ventas",
		HeaderOffset:   1,
	}
	service := NewService(profile)

	data := []byte("Reporte generado\nvendedor,ticket,total\nAna,1,\"1,000.50\"\nBob,2,3\n")

	report, err := service.BuildReport(data, domain.FormatCSV, "ventas-csv")
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "1000.50", report.Rows[0].Amount.StringFixed(2))
	assert.Len(t, service.Profiles(), 2)
}

func TestExport(t *testing.T) {
	service := NewService()

	report, err := service.BuildReport(anaBob(), domain.FormatHTML, domain.ErplySalesBySeller.Name)
	require.NoError(t, err)

	t.Run("csv", func(t *testing.T) {
		file, err := service.Export(report, ExportCSV)
		require.NoError(t, err)

		assert.Equal(t, "resumen_vendedores.csv", file.Filename)
		body := string(bytes.TrimPrefix(file.Data, []byte{0xEF, 0xBB, 0xBF}))
		assert.Equal(t, "vendedor,importe_con_iva,tickets\nAna,150.00,2\nBob,75.00,1\n", body)
	})

	t.Run("csv é determinístico", func(t *testing.T) {
		again, err := service.BuildReport(anaBob(), domain.FormatHTML, domain.ErplySalesBySeller.Name)
		require.NoError(t, err)

		first, err := service.Export(report, ExportCSV)
		require.NoError(t, err)
		second, err := service.Export(again, ExportCSV)
		require.NoError(t, err)

		assert.Equal(t, first.Data, second.Data)
	})

	t.Run("xlsx", func(t *testing.T) {
		file, err := service.Export(report, "XLSX")
		require.NoError(t, err)

		assert.Equal(t, "resumen_vendedores.xlsx", file.Filename)
		assert.True(t, bytes.HasPrefix(file.Data, []byte("PK")))
	})

	t.Run("tipo não suportado", func(t *testing.T) {
		_, err := service.Export(report, "pdf")
		assert.True(t, errors.Is(err, ErrUnsupportedExport))
	})
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint([]byte("a")), Fingerprint([]byte("a")))
	assert.NotEqual(t, Fingerprint([]byte("a")), Fingerprint([]byte("b")))
	assert.Len(t, Fingerprint(nil), 16)
}
