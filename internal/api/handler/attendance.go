package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/attendance"
)

type AttendanceListResponse struct {
	Entries []*domain.AttendanceEntry `json:"entries"`
	Summary domain.AttendanceSummary  `json:"summary"`
}

type MarkRequest struct {
	Present bool `json:"present"`
}

func ListAttendance(service attendance.AttendanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, summary, err := service.List(r.URL.Query().Get("group"))
		if err != nil {
			handleRecordError(w, err, "listar toma de lista")
			return
		}
		writeJSON(w, http.StatusOK, AttendanceListResponse{Entries: entries, Summary: summary})
	}
}

// SaveAttendanceEntry atende POST (id novo) e PUT (id da URL)
func SaveAttendanceEntry(service attendance.AttendanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry domain.AttendanceEntry
		if !decodeBody(w, r, &entry) {
			return
		}
		entry.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		saved, err := service.Put(&entry)
		if err != nil {
			handleRecordError(w, err, "salvar pessoa na lista")
			return
		}

		status := http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
		writeJSON(w, status, saved)
	}
}

func MarkAttendance(service attendance.AttendanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkRequest
		if !decodeBody(w, r, &req) {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		entry, err := service.Mark(id, req.Present)
		if err != nil {
			handleRecordError(w, err, "marcar presença", attendance.ErrEntryNotFound)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

func DeleteAttendanceEntry(service attendance.AttendanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(id); err != nil {
			handleRecordError(w, err, "remover pessoa da lista", attendance.ErrEntryNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ResetAttendance(service attendance.AttendanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reset, err := service.Reset()
		if err != nil {
			handleRecordError(w, err, "reiniciar toma de lista")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"reset": reset})
	}
}
