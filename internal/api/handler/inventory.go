package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/inventory"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
)

func ListInventory(service inventory.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := service.List()
		if err != nil {
			handleRecordError(w, err, "listar inventário")
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func GetInventoryItem(service inventory.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := httprouter.ParamsFromContext(r.Context()).ByName("sku")

		item, err := service.Get(sku)
		if err != nil {
			handleRecordError(w, err, "consultar item", inventory.ErrItemNotFound)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

// PutInventoryItem cria ou substitui o item; o SKU da URL prevalece
func PutInventoryItem(service inventory.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item domain.InventoryItem
		if !decodeBody(w, r, &item) {
			return
		}
		item.SKU = httprouter.ParamsFromContext(r.Context()).ByName("sku")

		saved, err := service.Put(&item)
		if err != nil {
			if errors.Is(err, inventory.ErrSKURequired) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}
			handleRecordError(w, err, "salvar item")
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func DeleteInventoryItem(service inventory.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := httprouter.ParamsFromContext(r.Context()).ByName("sku")

		if err := service.Delete(sku); err != nil {
			handleRecordError(w, err, "remover item", inventory.ErrItemNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReorderInventory(service inventory.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := service.Reorder()
		if err != nil {
			handleRecordError(w, err, "calcular sugestão de compra")
			return
		}
		writeJSON(w, http.StatusOK, suggestions)
	}
}
