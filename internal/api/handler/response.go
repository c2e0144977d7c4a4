package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
		return false
	}
	return true
}

// handleRecordError traduz erros das coleções; notFound são os erros de
// "não encontrado" do serviço chamado
func handleRecordError(w http.ResponseWriter, err error, action string, notFound ...error) {
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, validationErr.Error(), map[string]any{
			"fields": validationErr.Fields,
		})
		return
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, err.Error(), nil)
			return
		}
	}

	logrus.WithError(err).Errorf("Erro ao %s", action)
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao "+action, nil)
}
