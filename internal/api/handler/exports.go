package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/export"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

// Snapshotter é qualquer coleção que sabe gerar sua tabela atual
type Snapshotter interface {
	Snapshot() (*domain.Table, error)
}

// ExportCollection baixa a coleção :collection como csv (padrão) ou xlsx
func ExportCollection(collections map[string]Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("collection")

		collection, ok := collections[name]
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Coleção não encontrada: "+name, nil)
			return
		}

		table, err := collection.Snapshot()
		if err != nil {
			handleRecordError(w, err, "gerar snapshot da coleção")
			return
		}

		var file *domain.ExportFile
		switch kind := strings.ToLower(r.URL.Query().Get("type")); kind {
		case "", "csv":
			data, err := export.TableCSV(table)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar csv", nil)
				return
			}
			file = &domain.ExportFile{Filename: name + ".csv", ContentType: export.ContentTypeCSV, Data: data}

		case "xlsx":
			data, err := export.TableXLSX(table, name)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar xlsx", nil)
				return
			}
			file = &domain.ExportFile{Filename: name + ".xlsx", ContentType: export.ContentTypeXLSX, Data: data}

		default:
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedExport, "Tipo de exportação não suportado: "+kind, nil)
			return
		}

		writeFile(w, file)
	}
}
