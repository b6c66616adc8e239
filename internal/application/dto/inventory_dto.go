package dto

import "github.com/shopspring/decimal"

// TransferLineRequest línea de traslado (formato + cantidad).
type TransferLineRequest struct {
	FormatID string          `json:"format_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Note            string                `json:"note,omitempty"`
	Lines           []TransferLineRequest `json:"lines"`
}

// TransferResponse traslado con detalle.
type TransferResponse struct {
	ID              string                `json:"id"`
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Date            string                `json:"date"`
	Note            string                `json:"note,omitempty"`
	Lines           []TransferLineRequest `json:"lines"`
}

// RunProductionRequest body para POST /api/production/runs.
// Multiplier = lotes producidos; los consumos y salidas de la receta se escalan por él.
// Las bodegas son opcionales: si van vacías se usan las configuradas.
type RunProductionRequest struct {
	RecipeID            string          `json:"recipe_id"`
	Multiplier          decimal.Decimal `json:"multiplier"`
	RawWarehouseID      string          `json:"raw_warehouse_id,omitempty"`
	FinishedWarehouseID string          `json:"finished_warehouse_id,omitempty"`
	Note                string          `json:"note,omitempty"`
}

// RunProductionResponse identifica la corrida y sus movimientos.
type RunProductionResponse struct {
	ProductionID      string `json:"production_id"`
	ConsumeMovementID string `json:"consume_movement_id"`
	OutputMovementID  string `json:"output_movement_id"`
}

// StockResponse celda de stock en respuestas.
type StockResponse struct {
	FormatID    string          `json:"format_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   string          `json:"updated_at"`
}

// MovementLineResponse línea de movimiento en respuestas.
type MovementLineResponse struct {
	FormatID string          `json:"format_id"`
	Quantity decimal.Decimal `json:"quantity"`
	LineKind string          `json:"line_kind"`
}

// MovementResponse movimiento con líneas para el historial.
type MovementResponse struct {
	ID                string                 `json:"id"`
	DocumentID        string                 `json:"document_id,omitempty"`
	Kind              string                 `json:"kind"`
	SourceWarehouseID string                 `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   string                 `json:"dest_warehouse_id,omitempty"`
	Note              string                 `json:"note,omitempty"`
	OccurredAt        string                 `json:"occurred_at"`
	Lines             []MovementLineResponse `json:"lines"`
}
