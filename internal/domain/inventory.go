package domain

import (
	"strconv"
	"time"
)

var InventorySchema = Schema{
	Name:    "inventario",
	Key:     "sku",
	Columns: []string{"sku", "nombre", "existencia", "vendido_30d", "vendido_anual"},
	Numeric: []string{"existencia", "vendido_30d", "vendido_anual"},
}

type InventoryItem struct {
	SKU       string    `json:"sku" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	OnHand    float64   `json:"on_hand" validate:"gte=0"`
	Sold30    float64   `json:"sold_30d" validate:"gte=0"`
	SoldYTD   float64   `json:"sold_ytd" validate:"gte=0"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *InventoryItem) ToRecord() *Record {
	rec := NewRecord(i.SKU)
	rec.Set("sku", i.SKU)
	rec.Set("nombre", i.Name)
	rec.Set("existencia", formatQuantity(i.OnHand))
	rec.Set("vendido_30d", formatQuantity(i.Sold30))
	rec.Set("vendido_anual", formatQuantity(i.SoldYTD))
	rec.UpdatedAt = i.UpdatedAt
	return rec
}

// InventoryItemFromRecord converte um registro; campos numéricos inválidos viram zero
func InventoryItemFromRecord(rec *Record) *InventoryItem {
	return &InventoryItem{
		SKU:       rec.Key,
		Name:      rec.Get("nombre"),
		OnHand:    parseQuantity(rec.Get("existencia")),
		Sold30:    parseQuantity(rec.Get("vendido_30d")),
		SoldYTD:   parseQuantity(rec.Get("vendido_anual")),
		UpdatedAt: rec.UpdatedAt,
	}
}

// ReorderSuggestion é a sugestão de compra para um SKU
type ReorderSuggestion struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	OnHand        float64 `json:"on_hand"`
	DailyVelocity float64 `json:"daily_velocity"`
	Quantity      int     `json:"quantity"`
}

func formatQuantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseQuantity(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
