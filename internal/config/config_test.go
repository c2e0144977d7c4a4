package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

func TestParseOperators(t *testing.T) {
	t.Run("papel padrão é operador", func(t *testing.T) {
		ops, err := ParseOperators([]string{"ana:1234", " admin:0000:admin "})
		require.NoError(t, err)

		require.Len(t, ops, 2)
		assert.Equal(t, domain.Operator{Name: "ana", PIN: "1234", Role: domain.RoleOperator}, ops[0])
		assert.True(t, ops[1].IsAdmin())
	})

	t.Run("entrada sem pin", func(t *testing.T) {
		_, err := ParseOperators([]string{"ana"})
		assert.Error(t, err)
	})

	t.Run("entradas vazias são ignoradas", func(t *testing.T) {
		ops, err := ParseOperators([]string{"", "  "})
		require.NoError(t, err)
		assert.Empty(t, ops)
	})
}

func TestConfigFinish(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database:  Database{Driver: DriverPostgres, User: "u", Password: "p", URL: "db:5432/ventas"},
			Auth:      Auth{Operators: []string{"ana:1"}},
			Store:     Store{Backend: BackendCSV},
			Inventory: Inventory{RecentWeight: 0.6},
			Contacts:  Contacts{ScriptArms: []string{" A ", "", "B"}},
			Server:    Server{AllowedOrigins: []string{" http://localhost:5173", ""}},
		}
	}

	t.Run("postgres monta dsn", func(t *testing.T) {
		c := base()
		require.NoError(t, c.finish())
		assert.Equal(t, "postgres://u:p@db:5432/ventas", c.Database.DSN)
		assert.Equal(t, []string{"A", "B"}, c.Contacts.ScriptArms)
		assert.Equal(t, []string{"http://localhost:5173"}, c.Server.AllowedOrigins)
		assert.Equal(t, defaultTTLHours, c.Auth.TTLHours)
		require.Len(t, c.Auth.Parsed, 1)
	})

	t.Run("sqlite usa o caminho", func(t *testing.T) {
		c := base()
		c.Database.Driver = DriverSQLite
		c.Database.Path = "data/x.db"
		require.NoError(t, c.finish())
		assert.Equal(t, "data/x.db", c.Database.DSN)
	})

	t.Run("driver inválido", func(t *testing.T) {
		c := base()
		c.Database.Driver = "mysql"
		assert.Error(t, c.finish())
	})

	t.Run("backend inválido", func(t *testing.T) {
		c := base()
		c.Store.Backend = "redis"
		assert.Error(t, c.finish())
	})

	t.Run("peso fora do intervalo", func(t *testing.T) {
		c := base()
		c.Inventory.RecentWeight = 1.5
		assert.Error(t, c.finish())
	})
}

func TestParseProfiles(t *testing.T) {
	data := []byte(`
profiles:
  - name: ventas-por-sucursal
    key_column: Sucursal
    metric_column: Total
    distinct_column: Ticket
    identity_columns: [Sucursal]
    header_offset: 2
`)

	profiles, err := ParseProfiles(data)
	require.NoError(t, err)

	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, "Sucursal", p.KeyColumn)
	assert.Equal(t, 2, p.HeaderOffset)
	assert.Equal(t, domain.DefaultSentinelMarker, p.SentinelMarker)
	assert.Equal(t, []string{"Total"}, p.NumericColumns)
	assert.Equal(t, domain.SummaryLabels{Key: "Sucursal", Amount: "Total", Tickets: "tickets"}, p.Output)
	assert.Equal(t, "ventas-por-sucursal", p.FileBaseName)
}

func TestParseProfiles_Invalid(t *testing.T) {
	_, err := ParseProfiles([]byte("profiles:\n  - name: x\n"))
	assert.Error(t, err)

	_, err = ParseProfiles([]byte("profiles: ["))
	assert.Error(t, err)

	dup := []byte(`
profiles:
  - {name: a, key_column: k, metric_column: m, distinct_column: d}
  - {name: a, key_column: k, metric_column: m, distinct_column: d}
`)
	_, err = ParseProfiles(dup)
	assert.Error(t, err)
}

func TestLoadProfiles(t *testing.T) {
	profiles, err := LoadProfiles("")
	require.NoError(t, err)
	assert.Nil(t, profiles)

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  - {name: a, key_column: k, metric_column: m, distinct_column: d}\n"), 0o644))

	profiles, err = LoadProfiles(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	_, err = LoadProfiles(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.Error(t, err)
}
