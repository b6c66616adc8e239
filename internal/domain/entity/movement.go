package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindIN                = "IN"                 // entrada (compras)
	MovementKindOUT               = "OUT"                // salida (ventas, pedidos)
	MovementKindTRANSFEROut       = "TRANSFER_OUT"       // salida por traslado en bodega origen
	MovementKindTRANSFERIn        = "TRANSFER_IN"        // entrada por traslado en bodega destino
	MovementKindPRODUCTIONConsume = "PRODUCTION_CONSUME" // consumo de insumos en producción
	MovementKindPRODUCTIONOutput  = "PRODUCTION_OUTPUT"  // producto terminado en producción
)

// Tipos de línea de movimiento.
const (
	MovementLineIN      = "IN"
	MovementLineOUT     = "OUT"
	MovementLineConsume = "CONSUME"
	MovementLineOutput  = "OUTPUT"
)

// Movement cabecera de un movimiento lógico de inventario. Siempre se escribe en la
// misma transacción que las mutaciones de stock que describe; se elimina solo al
// reversar el documento que lo originó.
type Movement struct {
	ID                string
	DocumentID        *string // compra/venta/pedido/traslado/producción que lo originó
	Kind              string
	SourceWarehouseID *string
	DestWarehouseID   *string
	Note              string
	OccurredAt        time.Time
	CreatedAt         time.Time
	CreatedBy         string
	Lines             []MovementLine
}

// MovementLine detalle por formato de producto dentro de un movimiento.
type MovementLine struct {
	ID         string
	MovementID string
	FormatID   string
	Quantity   decimal.Decimal // con signo: positivo entrada, negativo salida
	LineKind   string
}
