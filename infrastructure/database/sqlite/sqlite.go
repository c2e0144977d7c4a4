package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-report-api/infrastructure/database"
	"github.com/vfg2006/sales-report-api/internal/config"
	_ "modernc.org/sqlite"
)

type Connection struct {
	*sql.DB
}

// NewConnection abre (ou cria) o arquivo do banco. ":memory:" também é aceito.
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	if cfg.DSN != ":memory:" {
		if dir := filepath.Dir(cfg.DSN); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrapf(err, "erro ao criar diretório %s", dir)
			}
		}
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}

	// sqlite aceita um escritor por vez
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return database.RunInTransaction(ctx, c.DB, fn)
}
