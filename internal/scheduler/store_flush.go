// Package scheduler contém os serviços de agendamento
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/config"
)

var storeFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sales_report",
	Name:      "store_flushes_total",
	Help:      "Gravações das coleções em disco por coleção e resultado.",
}, []string{"collection", "result"})

type StoreFlushConfig struct {
	CronSchedule string
	Enabled      bool
}

// StoreFlushService grava periodicamente cada coleção no seu CSV
type StoreFlushService struct {
	scheduler            *gocron.Scheduler
	flushers             []repository.Flusher
	config               StoreFlushConfig
	flushRunning         bool
	flushMutex           sync.Mutex
	// preso durante toda a gravação
	flushLock            sync.Mutex
	lastFlushStartedAt   time.Time
	lastFlushCompletedAt time.Time
	lastErrors           map[string]string
}

func NewStoreFlushService(cfg *config.Config, flushers ...repository.Flusher) *StoreFlushService {
	flushConfig := StoreFlushConfig{
		CronSchedule: cfg.Store.FlushCron,
		Enabled:      cfg.Store.FlushEnabled && len(flushers) > 0,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": flushConfig.CronSchedule,
		"collections":   len(flushers),
	}).Info("Configuração do agendador de gravação das coleções carregada")

	return &StoreFlushService{
		scheduler:  gocron.NewScheduler(time.Local),
		flushers:   flushers,
		config:     flushConfig,
		lastErrors: map[string]string{},
	}
}

func (s *StoreFlushService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de gravação das coleções desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de gravação das coleções")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.FlushAll(); err != nil {
			logrus.WithError(err).Error("Erro na gravação das coleções")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar gravação das coleções: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de gravação das coleções")
		s.scheduler.Stop()
	}()

	return nil
}

// FlushAll grava todas as coleções. Uma falha não impede as demais;
// o erro devolvido informa quantas falharam. Se já houver uma gravação
// em andamento, não faz nada.
func (s *StoreFlushService) FlushAll() error {
	if !s.flushLock.TryLock() {
		logrus.Warn("Gravação das coleções já está em execução")
		return nil
	}
	defer s.flushLock.Unlock()

	return s.flush()
}

// Shutdown para o cron, espera a gravação em andamento terminar e grava
// uma última vez com o estado atual das coleções.
func (s *StoreFlushService) Shutdown() error {
	s.scheduler.Stop()

	s.flushLock.Lock()
	defer s.flushLock.Unlock()

	logrus.Info("Gravação final das coleções")
	return s.flush()
}

func (s *StoreFlushService) flush() error {
	s.flushMutex.Lock()
	s.flushRunning = true
	s.lastFlushStartedAt = time.Now()
	s.flushMutex.Unlock()

	failures := map[string]string{}
	for _, f := range s.flushers {
		if err := f.Flush(); err != nil {
			logrus.WithError(err).WithField("collection", f.Name()).Error("Erro ao gravar coleção")
			failures[f.Name()] = err.Error()
			storeFlushes.WithLabelValues(f.Name(), "error").Inc()
			continue
		}
		storeFlushes.WithLabelValues(f.Name(), "ok").Inc()
	}

	s.flushMutex.Lock()
	s.flushRunning = false
	s.lastFlushCompletedAt = time.Now()
	s.lastErrors = failures
	s.flushMutex.Unlock()

	if len(failures) > 0 {
		return fmt.Errorf("%d de %d coleções não foram gravadas", len(failures), len(s.flushers))
	}

	logrus.WithField("collections", len(s.flushers)).Debug("Coleções gravadas")
	return nil
}

// TriggerManualSync inicia manualmente uma gravação
func (s *StoreFlushService) TriggerManualSync() {
	s.flushMutex.Lock()
	if s.flushRunning {
		s.flushMutex.Unlock()
		logrus.Info("Gravação das coleções já em andamento, ignorando solicitação manual")
		return
	}
	s.flushMutex.Unlock()

	logrus.Info("Iniciando gravação manual das coleções")
	go func() {
		if err := s.FlushAll(); err != nil {
			logrus.WithError(err).Error("Erro na gravação manual das coleções")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *StoreFlushService) GetStatus() map[string]any {
	s.flushMutex.Lock()
	defer s.flushMutex.Unlock()

	collections := make([]string, 0, len(s.flushers))
	for _, f := range s.flushers {
		collections = append(collections, f.Name())
	}

	lastErrors := make(map[string]string, len(s.lastErrors))
	for k, v := range s.lastErrors {
		lastErrors[k] = v
	}

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.flushRunning,
		"collections":            collections,
		"last_sync_started_at":   s.lastFlushStartedAt,
		"last_sync_completed_at": s.lastFlushCompletedAt,
		"last_errors":            lastErrors,
	}
}
