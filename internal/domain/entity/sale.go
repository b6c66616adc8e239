package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusActive = "active"
)

// Sale cabecera de una venta. Si proviene de la conversión de un pedido,
// ConvertedFromOrderID lo referencia: el efecto de stock pertenece a esta venta
// y el pedido original ya no puede eliminarse.
type Sale struct {
	ID                   string
	CustomerID           string
	Date                 time.Time
	NetTotal             decimal.Decimal
	TaxTotal             decimal.Decimal
	GrandTotal           decimal.Decimal
	Note                 string
	Status               string
	ConvertedFromOrderID *string
	CreatedAt            time.Time
	CreatedBy            string
}

// SaleLine línea de venta. WarehouseID se conserva siempre en la línea para que la
// reversión devuelva el stock a la bodega original y no a una bodega por defecto.
type SaleLine struct {
	ID          string
	SaleID      string
	FormatID    string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
	LotID       *string
}
