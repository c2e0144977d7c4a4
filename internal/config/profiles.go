package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"gopkg.in/yaml.v3"
)

type profilesFile struct {
	Profiles []domain.ReportProfile `yaml:"profiles"`
}

// LoadProfiles lê perfis extras de relatório. Caminho vazio não é erro.
func LoadProfiles(path string) ([]domain.ReportProfile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler perfis de %s", path)
	}

	return ParseProfiles(data)
}

// ParseProfiles decodifica o YAML e completa os campos opcionais
func ParseProfiles(data []byte) ([]domain.ReportProfile, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "yaml de perfis inválido")
	}

	seen := make(map[string]bool, len(file.Profiles))
	for i := range file.Profiles {
		p := &file.Profiles[i]

		if p.Name == "" || p.KeyColumn == "" || p.MetricColumn == "" || p.DistinctColumn == "" {
			return nil, fmt.Errorf("perfil %d: name, key_column, metric_column e distinct_column são obrigatórios", i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("perfil duplicado: %s", p.Name)
		}
		seen[p.Name] = true

		if p.SentinelMarker == "" {
			p.SentinelMarker = domain.DefaultSentinelMarker
		}
		if p.Output.Key == "" {
			p.Output.Key = p.KeyColumn
		}
		if p.Output.Amount == "" {
			p.Output.Amount = p.MetricColumn
		}
		if p.Output.Tickets == "" {
			p.Output.Tickets = "tickets"
		}
		if p.SheetName == "" {
			p.SheetName = "Resumen"
		}
		if p.FileBaseName == "" {
			p.FileBaseName = p.Name
		}
		if !contains(p.NumericColumns, p.MetricColumn) {
			p.NumericColumns = append(p.NumericColumns, p.MetricColumn)
		}
	}

	return file.Profiles, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
