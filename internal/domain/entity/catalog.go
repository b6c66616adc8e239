package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductFormat formato (presentación) vendible de un producto: unidad, caja, lote de
// producción, etc. Es la unidad sobre la que se lleva stock por bodega.
// Cost es promedio ponderado, actualizado por compras en la misma transacción.
type ProductFormat struct {
	ID        string
	ProductID string
	SKU       string
	Name      string
	Price     decimal.Decimal // precio de venta
	Cost      decimal.Decimal // costo promedio ponderado
	TaxRate   decimal.Decimal // 0, 0.05, 0.19
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Warehouse bodega o ubicación donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier proveedor (contraparte de compras).
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer cliente (contraparte de ventas y pedidos).
type Customer struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lot lote de compra; registra el costo unitario con que entró la mercancía.
// La conversión pedido→venta resuelve el costo de cada línea desde su lote.
type Lot struct {
	ID         string
	FormatID   string
	UnitCost   decimal.Decimal
	ReceivedAt time.Time
}
