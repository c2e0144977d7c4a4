// Carga inicial: importa os CSV das coleções (STORE_DIR) para a tabela
// records do banco configurado. Registros com a mesma chave são sobrescritos.
package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/infrastructure/database"
	"github.com/vfg2006/sales-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-report-api/infrastructure/database/sqlite"
	"github.com/vfg2006/sales-report-api/infrastructure/flatfile"
	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

var collections = []domain.Schema{
	domain.InventorySchema,
	domain.ContactSchema,
	domain.AttendanceSchema,
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Iniciando script de migração...")
}

func connect(ctx context.Context, cfg config.Database) (database.Conn, error) {
	if cfg.Driver == config.DriverPostgres {
		return postgres.NewConnection(ctx, cfg)
	}
	return sqlite.NewConnection(ctx, cfg)
}

// importCollection grava os registros de um CSV usando a transação aberta
func importCollection(tx *sql.Tx, conn database.Conn, dir string, schema domain.Schema) (int, error) {
	path := flatfile.PathFor(dir, schema)

	records, err := flatfile.Load(path, schema)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		logrus.Warnf("nenhum registro em %s", path)
		return 0, nil
	}

	repo := repository.NewSQLRecordRepositoryTx(tx, conn.Placeholder(), schema)

	startTime := time.Now()
	for i, rec := range records {
		if err := repo.Put(rec); err != nil {
			logrus.Errorf("ERRO ao inserir %s [%d/%d] %s: %v", schema.Name, i+1, len(records), rec.Key, err)
			return i, err
		}
		if i > 0 && i%100 == 0 {
			logrus.Infof("Progresso: %d/%d registros de %s", i+1, len(records), schema.Name)
		}
	}

	logrus.Infof("Coleção %s importada em %v: %d registros", schema.Name, time.Since(startTime), len(records))
	return len(records), nil
}

// importAll importa todas as coleções numa única transação
func importAll(ctx context.Context, conn database.Conn, dir string) (map[string]int, error) {
	if err := database.EnsureSchema(conn); err != nil {
		return nil, err
	}

	imported := make(map[string]int, len(collections))
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, schema := range collections {
			n, err := importCollection(tx, conn, dir, schema)
			if err != nil {
				return err
			}
			imported[schema.Name] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return imported, nil
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx := context.Background()

	logrus.Infof("Conectando ao banco de dados (%s)...", cfg.Database.Driver)
	conn, err := connect(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	startTime := time.Now()
	imported, err := importAll(ctx, conn, cfg.Store.Dir)
	if err != nil {
		logrus.Errorf("ERRO na importação, transação revertida: %v", err)
		conn.Close()
		os.Exit(1)
	}

	for name, n := range imported {
		logrus.Infof("%s: %d registros", name, n)
	}
	logrus.Infof("Carga inicial concluída em %v!", time.Since(startTime))
}
