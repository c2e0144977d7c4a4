package reporting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

var (
	reportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_report",
		Name:      "report_runs_total",
		Help:      "Relatórios processados por perfil e resultado.",
	}, []string{"profile", "result"})

	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales_report",
		Name:      "report_duration_seconds",
		Help:      "Tempo de ingestão, normalização e agregação.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"profile"})

	conversionWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_report",
		Name:      "conversion_warnings_total",
		Help:      "Células numéricas que não puderam ser convertidas.",
	}, []string{"profile"})
)

const (
	resultOK          = "ok"
	resultParseError  = "parse_error"
	resultSchemaError = "schema_error"
	resultError       = "error"
)

func resultOf(err *ReportError) string {
	if err == nil {
		return resultOK
	}

	switch err.Code {
	case apiErrors.ErrReportParse:
		return resultParseError
	case apiErrors.ErrReportSchema:
		return resultSchemaError
	default:
		return resultError
	}
}
