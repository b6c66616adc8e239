package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// StockRepository define el puerto de la tabla stock (formato × bodega).
// ApplyDelta es la ÚNICA escritura permitida sobre stock: un UPDATE condicional
// atómico cuyo WHERE re-verifica quantity + delta >= 0, de modo que dos
// descuentos concurrentes no pueden pasar ambos con una lectura vieja.
type StockRepository interface {
	// Get lee la celda; si no existe devuelve una celda en cero (no nil).
	Get(formatID, warehouseID string) (*entity.Stock, error)
	// ApplyDelta suma delta (con signo) a la celda, creándola si no existe y
	// delta >= 0. Devuelve InsufficientStockError si el resultado sería negativo.
	ApplyDelta(formatID, warehouseID string, delta decimal.Decimal) (*entity.Stock, error)
	// ListByWarehouse lista las celdas de una bodega (consulta de existencias).
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error)
}
