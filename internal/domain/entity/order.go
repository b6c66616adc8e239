package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusOpen      = "open"      // stock ya descontado (reserva)
	OrderStatusConverted = "converted" // convertido en venta; el efecto de stock pertenece a la venta
)

// Order pedido de cliente. Al crearse descuenta stock igual que una venta (reserva);
// al convertirse en venta NO vuelve a tocar el stock.
type Order struct {
	ID         string
	CustomerID string
	Date       time.Time
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Note       string
	Status     string
	CreatedAt  time.Time
	CreatedBy  string
}

// OrderLine línea de pedido; conserva bodega y lote para la conversión a venta.
type OrderLine struct {
	ID          string
	OrderID     string
	FormatID    string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LotID       *string
}
