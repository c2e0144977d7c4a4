package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/sales-report-api/internal/aggregate"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/export"
	"github.com/vfg2006/sales-report-api/internal/ingest"
	"github.com/vfg2006/sales-report-api/internal/normalize"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

type Reporter interface {
	Profiles() []domain.ReportProfile
	Profile(name string) (domain.ReportProfile, error)
	BuildReport(data []byte, format domain.Format, profileName string) (*domain.Report, error)
	Export(report *domain.Report, kind string) (*domain.ExportFile, error)
}

type Service struct {
	profiles map[string]domain.ReportProfile
	now      func() time.Time
}

// NewService registra os perfis; o perfil do Erply está sempre disponível
// e pode ser sobrescrito por um perfil de mesmo nome.
func NewService(profiles ...domain.ReportProfile) *Service {
	s := &Service{
		profiles: map[string]domain.ReportProfile{
			domain.ErplySalesBySeller.Name: domain.ErplySalesBySeller,
		},
		now: time.Now,
	}

	for _, p := range profiles {
		s.profiles[p.Name] = p
	}

	return s
}

func (s *Service) Profiles() []domain.ReportProfile {
	profiles := make([]domain.ReportProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	return profiles
}

func (s *Service) Profile(name string) (domain.ReportProfile, error) {
	profile, ok := s.profiles[name]
	if !ok {
		return domain.ReportProfile{}, NewReportError(ErrUnknownProfile, apiErrors.ErrUnknownProfile, name, name)
	}
	return profile, nil
}

// BuildReport roda Ingestor → Normalizer → Aggregator sobre os bytes enviados.
// O resumo é recalculado do zero a cada chamada.
func (s *Service) BuildReport(data []byte, format domain.Format, profileName string) (*domain.Report, error) {
	start := s.now()

	profile, err := s.Profile(profileName)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, NewReportError(ErrEmptyUpload, apiErrors.ErrMissingRequiredData, profile.Name, "")
	}

	report, repErr := s.run(data, format, profile)

	reportRuns.WithLabelValues(profile.Name, resultOf(repErr)).Inc()
	reportDuration.WithLabelValues(profile.Name).Observe(s.now().Sub(start).Seconds())

	if repErr != nil {
		log.L.WithFields(log.Fields{
			"profile": profile.Name,
			"format":  string(format),
			"code":    repErr.Code,
			"error":   repErr.Error(),
		}).Warn("Falha ao processar relatório")
		return nil, repErr
	}

	if len(report.Warnings) > 0 {
		conversionWarnings.WithLabelValues(profile.Name).Add(float64(len(report.Warnings)))
	}

	log.L.WithFields(log.Fields{
		"profile":     profile.Name,
		"report_id":   report.ID,
		"groups":      len(report.Rows),
		"rows_read":   report.RowsRead,
		"warnings":    len(report.Warnings),
		"fingerprint": report.Fingerprint,
	}).Info("Relatório processado")

	return report, nil
}

func (s *Service) run(data []byte, format domain.Format, profile domain.ReportProfile) (*domain.Report, *ReportError) {
	raw, err := ingest.Ingest(data, format, ingest.OptionsFromProfile(profile))
	if err != nil {
		return nil, classify(err, profile.Name)
	}

	table, err := normalize.Normalize(raw, profile)
	if err != nil {
		return nil, classify(err, profile.Name)
	}

	rows, err := aggregate.Summarize(table, profile.KeyColumn, profile.MetricColumn, profile.DistinctColumn)
	if err != nil {
		return nil, classify(err, profile.Name)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, NewReportError(err, apiErrors.ErrInternalServer, profile.Name, "erro ao gerar id do relatório")
	}

	warnings := table.Warnings
	if warnings == nil {
		warnings = []domain.ConversionWarning{}
	}

	return &domain.Report{
		ID:          id,
		Profile:     profile.Name,
		Format:      format,
		Fingerprint: Fingerprint(data),
		Labels:      profile.Output,
		Rows:        rows,
		Warnings:    warnings,
		RowsRead:    len(table.Rows),
		CreatedAt:   s.now(),
		Table:       table,
	}, nil
}

// Export serializa o resumo no tipo pedido (csv ou xlsx)
func (s *Service) Export(report *domain.Report, kind string) (*domain.ExportFile, error) {
	profile, err := s.Profile(report.Profile)
	if err != nil {
		return nil, err
	}

	base := profile.FileBaseName
	if base == "" {
		base = "resumen"
	}

	switch strings.ToLower(kind) {
	case ExportCSV, "":
		data, err := export.SummaryCSV(report.Rows, report.Labels)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrInternalServer, profile.Name, "erro ao gerar csv")
		}
		return &domain.ExportFile{
			Filename:    base + ".csv",
			ContentType: export.ContentTypeCSV,
			Data:        data,
		}, nil

	case ExportXLSX:
		data, err := export.SummaryXLSX(report.Rows, report.Labels, profile.SheetName)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrInternalServer, profile.Name, "erro ao gerar xlsx")
		}
		return &domain.ExportFile{
			Filename:    base + ".xlsx",
			ContentType: export.ContentTypeXLSX,
			Data:        data,
		}, nil
	}

	return nil, NewReportError(ErrUnsupportedExport, apiErrors.ErrUnsupportedExport, profile.Name, kind)
}

// Fingerprint identifica os bytes enviados (mesmo nome de arquivo, conteúdo novo)
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
