package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/api/handler"
	"github.com/vfg2006/sales-report-api/internal/api/handler/router"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/scheduler"
	"github.com/vfg2006/sales-report-api/internal/usecases/attendance"
	"github.com/vfg2006/sales-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-report-api/internal/usecases/contacts"
	"github.com/vfg2006/sales-report-api/internal/usecases/inventory"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	httpServer *http.Server
}

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Reporter      reporting.Reporter
	Inventory     inventory.InventoryService
	Contacts      contacts.ContactsService
	Attendance    attendance.AttendanceService
	Authenticator authenticating.Authenticator
	StoreFlush    *scheduler.StoreFlushService
	HealthChecks  map[string]handler.HealthCheck
}

func New(config *config.Config, services Services) (*Server, error) {
	cronServices := handler.CronJobServices{}
	if services.StoreFlush != nil {
		cronServices[handler.CronJobTypeFlush] = services.StoreFlush
	}

	collections := map[string]handler.Snapshotter{
		domain.InventorySchema.Name:  services.Inventory,
		domain.ContactSchema.Name:    services.Contacts,
		domain.AttendanceSchema.Name: services.Attendance,
	}

	maxUploadBytes := int64(config.Report.MaxUploadMB) << 20

	rt := router.New(
		router.WithNotFound(notFound(), methodNotAllowed()),
		router.WithRoutes(handler.Healthcheck(services.HealthChecks)...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Reports(services.Reporter, maxUploadBytes)...),
		router.WithRoutes(handler.Inventory(services.Inventory)...),
		router.WithRoutes(handler.Contacts(services.Contacts)...),
		router.WithRoutes(handler.Attendance(services.Attendance)...),
		router.WithRoutes(handler.Exports(collections)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa (middlewares + rotas)
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Rota não encontrada: "+r.URL.Path, nil)
	})
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Método não permitido: "+r.Method, nil)
	})
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
