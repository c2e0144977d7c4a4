package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/middleware"
)

const uploadField = "file"

// ReportResponse é o relatório sem a tabela normalizada
type ReportResponse struct {
	*domain.Report
	Totals ReportTotals `json:"totals"`
}

// ReportTotals é a linha de totais do painel; não entra nos arquivos
type ReportTotals struct {
	Amount  decimal.Decimal `json:"amount"`
	Tickets int             `json:"tickets"`
	Rows    int             `json:"rows"`
}

// upload é o arquivo recebido: corpo cru ou campo "file" de um multipart
type upload struct {
	data     []byte
	filename string
}

func ListProfiles(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Profiles())
	}
}

// BuildReport processa o arquivo e devolve o resumo em JSON
func BuildReport(service reporting.Reporter, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := buildReport(w, r, service, maxUploadBytes)
		if !ok {
			return
		}

		w.Header().Set(middleware.ReportFingerprintHeader, report.Fingerprint)
		writeJSON(w, http.StatusOK, ReportResponse{Report: report, Totals: totalsOf(report)})
	}
}

// ExportReport processa o arquivo e devolve o resumo como anexo csv/xlsx
func ExportReport(service reporting.Reporter, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := strings.ToLower(r.URL.Query().Get("type"))
		if kind != "" && kind != reporting.ExportCSV && kind != reporting.ExportXLSX {
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedExport, "Tipo de exportação não suportado: "+kind, nil)
			return
		}

		report, ok := buildReport(w, r, service, maxUploadBytes)
		if !ok {
			return
		}

		file, err := service.Export(report, kind)
		if err != nil {
			handleReportError(w, err)
			return
		}

		w.Header().Set(middleware.ReportFingerprintHeader, report.Fingerprint)
		writeFile(w, file)
	}
}

func buildReport(w http.ResponseWriter, r *http.Request, service reporting.Reporter, maxUploadBytes int64) (*domain.Report, bool) {
	profile := httprouter.ParamsFromContext(r.Context()).ByName("profile")

	in, err := readUpload(w, r, maxUploadBytes)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, fmt.Sprintf("Arquivo excede o limite de %d bytes", maxErr.Limit), nil)
			return nil, false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler arquivo: "+err.Error(), nil)
		return nil, false
	}

	formatParam := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if formatParam == "" && in.filename != "" {
		formatParam = strings.TrimPrefix(strings.ToLower(filepath.Ext(in.filename)), ".")
	}
	if formatParam == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro format é obrigatório (html, xlsx ou csv)", nil)
		return nil, false
	}

	format, ok := domain.ParseFormat(formatParam)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato não suportado: "+formatParam, nil)
		return nil, false
	}

	report, err := service.BuildReport(in.data, format, profile)
	if err != nil {
		handleReportError(w, err)
		return nil, false
	}

	return report, true
}

func readUpload(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, err
		}
		return &upload{data: data, filename: header.Filename}, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return &upload{data: data}, nil
}

func totalsOf(report *domain.Report) ReportTotals {
	total := ReportTotals{Amount: decimal.Zero}
	for _, row := range report.Rows {
		total.Amount = total.Amount.Add(row.Amount)
		total.Tickets += row.Tickets
		total.Rows += row.Rows
	}
	return total
}

func handleReportError(w http.ResponseWriter, err error) {
	var reportErr *reporting.ReportError
	if !errors.As(err, &reportErr) {
		logrus.WithError(err).Error("Erro ao processar relatório")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar relatório", nil)
		return
	}

	var details map[string]any

	var parseErr *domain.ParseError
	var schemaErr *domain.SchemaError
	switch {
	case errors.As(err, &parseErr):
		details = map[string]any{
			"format":   parseErr.Format,
			"element":  parseErr.Element,
			"expected": parseErr.Expected,
			"found":    parseErr.Found,
		}
	case errors.As(err, &schemaErr):
		details = map[string]any{
			"missing": schemaErr.Missing,
			"present": schemaErr.Present,
		}
	case reportErr.Profile != "":
		details = map[string]any{"profile": reportErr.Profile}
	}

	apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), details)
}

func writeFile(w http.ResponseWriter, file *domain.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		logrus.WithError(err).Error("Erro ao enviar arquivo")
	}
}
