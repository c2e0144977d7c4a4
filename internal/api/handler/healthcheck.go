package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthCheck verifica uma dependência (ex.: ping do banco)
type HealthCheck func(ctx context.Context) error

func HealthcheckHandler(checks map[string]HealthCheck) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logrus.WithError(err).WithField("check", name).Warn("error responding to healthcheck")
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		writeJSON(w, status, map[string]any{
			"time":   time.Now().Format(time.RFC3339),
			"checks": results,
		})
	})
}
