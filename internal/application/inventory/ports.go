package inventory

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción de BD.
// TxRunner los construye sobre la tx para que todo lo escrito por un orquestador
// sea atómico (Commit o Rollback completo).
type Repos struct {
	Stock    repository.StockRepository
	Movement repository.MovementRepository
	Purchase repository.PurchaseRepository
	Sale     repository.SaleRepository
	Order    repository.OrderRepository
	Transfer repository.TransferRepository
	Recipe   repository.RecipeRepository
	Lot      repository.LotRepository
	Format   repository.ProductFormatRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de inventario: si fn retorna
// error se hace Rollback de todo; si retorna nil se hace Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
