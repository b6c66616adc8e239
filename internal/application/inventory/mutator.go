package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// StockMutator es el único punto por el que los orquestadores mutan stock.
// Delega en StockRepository.ApplyDelta (UPDATE condicional atómico): la verificación
// cantidad-suficiente y la escritura son una sola operación en la BD, así que dos
// descuentos concurrentes sobre la misma celda no pueden pasar ambos.
type StockMutator struct{}

// Apply suma delta (con signo) a la celda (formatID, warehouseID). Crea la celda si
// no existe y delta >= 0; retorna InsufficientStockError si el resultado quedaría
// negativo. delta cero es entrada inválida.
func (StockMutator) Apply(stockRepo repository.StockRepository, formatID, warehouseID string, delta decimal.Decimal) (*entity.Stock, error) {
	if formatID == "" || warehouseID == "" || delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	return stockRepo.ApplyDelta(formatID, warehouseID, delta)
}

// Increase suma qty (> 0) a la celda.
func (m StockMutator) Increase(stockRepo repository.StockRepository, formatID, warehouseID string, qty decimal.Decimal) (*entity.Stock, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return m.Apply(stockRepo, formatID, warehouseID, qty)
}

// Decrease resta qty (> 0) de la celda; falla con InsufficientStockError si la celda
// no alcanza, dejándola intacta.
func (m StockMutator) Decrease(stockRepo repository.StockRepository, formatID, warehouseID string, qty decimal.Decimal) (*entity.Stock, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	return m.Apply(stockRepo, formatID, warehouseID, qty.Neg())
}
