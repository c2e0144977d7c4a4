package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// cabeçalhos que o painel precisa ler no download do relatório
var exposedHeaders = strings.Join([]string{
	"Content-Disposition",
	CorrelationIDHeader,
	ReportFingerprintHeader,
}, ", ")

// Cors libera as origens configuradas (CORS_ALLOWED_ORIGINS). Preflight
// responde 204 sem passar pela autenticação.
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && slices.Contains(allowedOrigins, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, "+CorrelationIDHeader)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				h.Set("Access-Control-Max-Age", "86400")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
