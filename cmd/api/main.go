package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/infrastructure/database"
	"github.com/vfg2006/sales-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-report-api/infrastructure/database/sqlite"
	"github.com/vfg2006/sales-report-api/infrastructure/flatfile"
	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/api"
	"github.com/vfg2006/sales-report-api/internal/api/handler"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/scheduler"
	"github.com/vfg2006/sales-report-api/internal/usecases/attendance"
	"github.com/vfg2006/sales-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-report-api/internal/usecases/contacts"
	"github.com/vfg2006/sales-report-api/internal/usecases/inventory"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-report-api/pkg/log"
)

// stores são os repositórios das coleções e quem os grava em disco
type stores struct {
	inventory  repository.RecordRepository
	contacts   repository.RecordRepository
	attendance repository.RecordRepository
	flushers   []repository.Flusher
	checks     map[string]handler.HealthCheck
	close      func()
}

func main() {
	configureWorkdir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profiles, err := config.LoadProfiles(cfg.Report.ProfilesFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar perfis de relatório")
	}

	st := openStores(ctx, cfg)
	defer st.close()

	reporter := reporting.NewService(profiles...)
	authenticator := authenticating.NewService(cfg.Auth)
	inventoryService := inventory.NewService(st.inventory, cfg.Inventory)
	contactsService := contacts.NewService(st.contacts, cfg.Contacts.ScriptArms)
	attendanceService := attendance.NewService(st.attendance)

	logrus.WithFields(logrus.Fields{
		"profiles":  len(reporter.Profiles()),
		"operators": len(authenticator.Operators()),
		"backend":   cfg.Store.Backend,
	}).Info("Serviços inicializados")

	storeFlushService := scheduler.NewStoreFlushService(cfg, st.flushers...)
	if err := storeFlushService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de gravação das coleções")
	} else {
		logrus.Info("Agendador de gravação das coleções iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Reporter:      reporter,
		Inventory:     inventoryService,
		Contacts:      contactsService,
		Attendance:    attendanceService,
		Authenticator: authenticator,
		StoreFlush:    storeFlushService,
		HealthChecks:  st.checks,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	if err := storeFlushService.Shutdown(); err != nil {
		logrus.WithError(err).Error("Erro na gravação final das coleções")
	}
}

// configureWorkdir executa a partir do diretório do binário em dev (go run)
func configureWorkdir() {
	if !log.IsDevelopment() {
		return
	}
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)
}

func openStores(ctx context.Context, cfg *config.Config) *stores {
	schemas := []domain.Schema{domain.InventorySchema, domain.ContactSchema, domain.AttendanceSchema}
	repos := make([]repository.RecordRepository, len(schemas))

	st := &stores{
		checks: map[string]handler.HealthCheck{},
		close:  func() {},
	}

	switch cfg.Store.Backend {
	case config.BackendSQL:
		conn := dbconn(ctx, cfg.Database)
		if err := database.EnsureSchema(conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao preparar o banco")
		}
		for i, schema := range schemas {
			repos[i] = repository.NewSQLRecordRepository(conn, schema)
		}
		st.checks["database"] = conn.Ping
		st.close = func() { conn.Close() }

	case config.BackendCSV:
		for i, schema := range schemas {
			repos[i] = repository.NewMemoryRecordRepository(schema)
			path := flatfile.PathFor(cfg.Store.Dir, schema)

			loaded, err := repository.LoadFromFile(repos[i], path)
			if err != nil {
				logrus.WithError(err).WithField("collection", schema.Name).Fatal("Erro ao carregar coleção")
			}
			logrus.WithFields(logrus.Fields{
				"collection": schema.Name,
				"records":    loaded,
				"path":       path,
			}).Info("Coleção carregada")

			st.flushers = append(st.flushers, repository.NewFileFlusher(repos[i], path))
		}

	default:
		for i, schema := range schemas {
			repos[i] = repository.NewMemoryRecordRepository(schema)
		}
	}

	st.inventory, st.contacts, st.attendance = repos[0], repos[1], repos[2]
	return st
}

// dbconn cria a conexão com o banco configurado
func dbconn(ctx context.Context, dbConfig config.Database) database.Conn {
	var (
		conn database.Conn
		err  error
	)

	switch dbConfig.Driver {
	case config.DriverPostgres:
		conn, err = postgres.NewConnection(ctx, dbConfig)
	default:
		conn, err = sqlite.NewConnection(ctx, dbConfig)
	}
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com o banco")
	}

	logrus.WithField("driver", dbConfig.Driver).Info("Conexão com o banco estabelecida com sucesso")
	return conn
}
