package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase cabecera de una compra a proveedor. Crear una compra suma stock por cada
// línea en la bodega de la línea; eliminarla aplica exactamente la negación.
type Purchase struct {
	ID         string
	SupplierID string
	Date       time.Time
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Note       string
	CreatedAt  time.Time
	CreatedBy  string
}

// PurchaseLine línea de compra. WarehouseID registra la bodega donde entró el stock
// para que la reversión opere sobre la misma celda.
type PurchaseLine struct {
	ID         string
	PurchaseID string
	FormatID   string
	WarehouseID string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	LotID      *string
}
