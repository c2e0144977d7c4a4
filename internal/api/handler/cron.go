package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/middleware"
)

const CronJobTypeFlush = "flush"

// CronJob é um serviço agendado que também aceita execução manual
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron por tipo
type CronJobServices map[string]CronJob

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Operador não autenticado", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		job, ok := services[cronType]
		if !ok || job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido: "+cronType, nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"type":     cronType,
			"operator": claims.OperatorName,
		}).Info("Execução manual de cron job")

		job.TriggerManualSync()

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			if job == nil {
				continue
			}
			status[name] = job.GetStatus()
		}
		writeJSON(w, http.StatusOK, status)
	}
}
