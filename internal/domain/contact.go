package domain

import "time"

type ContactStatus string

const (
	ContactStatusPending   ContactStatus = "pendiente"
	ContactStatusContacted ContactStatus = "contactado"
	ContactStatusConfirmed ContactStatus = "confirmado"
	ContactStatusRejected  ContactStatus = "rechazado"
)

var ContactSchema = Schema{
	Name:    "contactos",
	Key:     "id",
	Columns: []string{"id", "nombre", "telefono", "seccion", "estatus", "notas"},
}

type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name" validate:"required"`
	Phone     string        `json:"phone"`
	Section   string        `json:"section"`
	Status    ContactStatus `json:"status" validate:"omitempty,oneof=pendiente contactado confirmado rechazado"`
	Notes     string        `json:"notes"`
	ScriptArm string        `json:"script_arm,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (c *Contact) ToRecord() *Record {
	rec := NewRecord(c.ID)
	rec.Set("id", c.ID)
	rec.Set("nombre", c.Name)
	rec.Set("telefono", c.Phone)
	rec.Set("seccion", c.Section)
	rec.Set("estatus", string(c.Status))
	rec.Set("notas", c.Notes)
	rec.UpdatedAt = c.UpdatedAt
	return rec
}

func ContactFromRecord(rec *Record) *Contact {
	return &Contact{
		ID:        rec.Key,
		Name:      rec.Get("nombre"),
		Phone:     rec.Get("telefono"),
		Section:   rec.Get("seccion"),
		Status:    ContactStatus(rec.Get("estatus")),
		Notes:     rec.Get("notas"),
		UpdatedAt: rec.UpdatedAt,
	}
}
