package domain

import (
	"strconv"
	"time"
)

var AttendanceSchema = Schema{
	Name:    "lista",
	Key:     "id",
	Columns: []string{"id", "nombre", "grupo", "presente", "hora"},
}

// AttendanceEntry é uma pessoa na toma de lista
type AttendanceEntry struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" validate:"required"`
	Group     string     `json:"group"`
	Present   bool       `json:"present"`
	CheckedAt *time.Time `json:"checked_at"`
}

func (a *AttendanceEntry) ToRecord() *Record {
	rec := NewRecord(a.ID)
	rec.Set("id", a.ID)
	rec.Set("nombre", a.Name)
	rec.Set("grupo", a.Group)
	rec.Set("presente", strconv.FormatBool(a.Present))
	if a.CheckedAt != nil {
		rec.Set("hora", a.CheckedAt.Format(time.RFC3339))
	} else {
		rec.Set("hora", "")
	}
	return rec
}

func AttendanceEntryFromRecord(rec *Record) *AttendanceEntry {
	entry := &AttendanceEntry{
		ID:    rec.Key,
		Name:  rec.Get("nombre"),
		Group: rec.Get("grupo"),
	}

	entry.Present, _ = strconv.ParseBool(rec.Get("presente"))

	if raw := rec.Get("hora"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			entry.CheckedAt = &t
		}
	}

	return entry
}

// AttendanceSummary são as contagens da lista
type AttendanceSummary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
}
