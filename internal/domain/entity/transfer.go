package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer traslado de stock entre dos bodegas. La suma por formato sobre todas las
// bodegas no cambia: lo que sale de origen entra exacto en destino.
type Transfer struct {
	ID              string
	FromWarehouseID string
	ToWarehouseID   string
	Date            time.Time
	Note            string
	CreatedAt       time.Time
	CreatedBy       string
}

// TransferLine línea de traslado.
type TransferLine struct {
	ID         string
	TransferID string
	FormatID   string
	Quantity   decimal.Decimal
}
