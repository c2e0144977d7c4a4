package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
)

const (
	// CorrelationIDHeader liga os logs do painel aos da API
	CorrelationIDHeader = "X-Correlation-ID"
	// ReportFingerprintHeader carrega o fingerprint do arquivo processado
	ReportFingerprintHeader = "X-Report-Fingerprint"
)

const slowRequest = 2 * time.Second

// LoggingMiddleware registra cada requisição. Em rotas de relatório o log
// leva o perfil, o formato e o fingerprint; em exportações, a coleção.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(CorrelationIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			fields := requestFields(r)
			fields["correlation_id"] = correlationID
			log.L.WithFields(fields).Debug("Requisição iniciada")

			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(start)
			fields["status_code"] = lrw.statusCode
			fields["duration_ms"] = elapsed.Milliseconds()
			fields["bytes_out"] = lrw.written
			if fingerprint := lrw.Header().Get(ReportFingerprintHeader); fingerprint != "" {
				fields["fingerprint"] = fingerprint
			}

			logger := log.L.WithFields(fields)
			msg := fmt.Sprintf("%s %s → %d em %s", r.Method, r.URL.Path, lrw.statusCode, formatDuration(elapsed))

			switch {
			case lrw.statusCode >= 500:
				logger.Error(msg)
			case lrw.statusCode >= 400:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}

			if elapsed > slowRequest {
				logger.Warnf("Requisição lenta: %s", formatDuration(elapsed))
			}
		})
	}
}

// requestFields monta os campos comuns a partir do caminho:
// /v1/reports/:profile[/export] e /v1/exports/:collection
func requestFields(r *http.Request) log.Fields {
	fields := log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}

	if !log.IsDevelopment() {
		fields["remote_addr"] = r.RemoteAddr
		fields["user_agent"] = r.UserAgent()
		fields["query"] = r.URL.RawQuery
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < 3 || segments[0] != "v1" {
		return fields
	}

	switch segments[1] {
	case "reports":
		fields["profile"] = segments[2]
		fields["upload_bytes"] = r.ContentLength
		if format := r.URL.Query().Get("format"); format != "" {
			fields["format"] = format
		}
		if kind := r.URL.Query().Get("type"); kind != "" {
			fields["export_type"] = kind
		}
	case "exports":
		fields["collection"] = segments[2]
	}

	return fields
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter guarda o status e o tamanho da resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	n, err := lrw.ResponseWriter.Write(b)
	lrw.written += n
	return n, err
}

// LogPanicMiddleware registra o panic com a pilha e responde SRV_001
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				logger := log.L.WithFields(log.Fields{
					"correlation_id": w.Header().Get(CorrelationIDHeader),
					"error":          recovered,
					"method":         r.Method,
					"path":           r.URL.Path,
				})

				if log.IsDevelopment() {
					logger.Error("PANIC na aplicação")
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stack)
				} else {
					logger.WithField("stack_trace", string(stack)).Error("Erro não tratado na aplicação")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
