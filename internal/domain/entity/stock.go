package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia actual de un formato de producto en una bodega.
// La celda se crea en la primera mutación y nunca se elimina: una celda en cero
// se conserva porque futuras mutaciones referencian la misma clave.
// Invariante: Quantity >= 0 siempre, garantizado por el mutador de stock.
type Stock struct {
	FormatID    string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
