package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/contacts"
)

func ListContacts(service contacts.ContactsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := domain.ContactStatus(r.URL.Query().Get("status"))

		list, err := service.List(status)
		if err != nil {
			handleRecordError(w, err, "listar contatos")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetContact(service contacts.ContactsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		contact, err := service.Get(id)
		if err != nil {
			handleRecordError(w, err, "consultar contato", contacts.ErrContactNotFound)
			return
		}
		writeJSON(w, http.StatusOK, contact)
	}
}

// SaveContact atende POST (id novo) e PUT (id da URL)
func SaveContact(service contacts.ContactsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact domain.Contact
		if !decodeBody(w, r, &contact) {
			return
		}
		contact.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		saved, err := service.Put(&contact)
		if err != nil {
			handleRecordError(w, err, "salvar contato")
			return
		}

		status := http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
		writeJSON(w, status, saved)
	}
}

func DeleteContact(service contacts.ContactsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(id); err != nil {
			handleRecordError(w, err, "remover contato", contacts.ErrContactNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
