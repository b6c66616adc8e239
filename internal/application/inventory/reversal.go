package inventory

import (
	"github.com/shopspring/decimal"
)

// ReversalLine celda afectada por un documento, con la cantidad TAL COMO se aplicó
// al stock en la creación (positiva para compras, negativa para ventas/pedidos).
type ReversalLine struct {
	FormatID    string
	WarehouseID string
	Applied     decimal.Decimal
}

// ReversalOrchestrator deshace el efecto de stock de un documento: aplica a cada
// celda la negación exacta de lo que la creación aplicó, elimina los movimientos del
// documento y por último sus filas. La lógica de invertir signo vive solo aquí; cada
// tipo de documento aporta sus líneas y su función de borrado.
//
// Si la negación de una línea dejaría una celda negativa (p. ej. eliminar una compra
// cuyo stock ya se vendió), ApplyDelta falla con InsufficientStockError y el caller
// hace Rollback: la eliminación se rechaza completa, nunca se aplica a medias.
type ReversalOrchestrator struct {
	mutator StockMutator
}

// NewReversalOrchestrator construye el orquestador de reversión.
func NewReversalOrchestrator() *ReversalOrchestrator {
	return &ReversalOrchestrator{}
}

// Reverse ejecuta la reversión dentro de la transacción representada por r.
// deleteRows elimina líneas y cabecera del documento (en ese orden).
func (o *ReversalOrchestrator) Reverse(r Repos, documentID string, lines []ReversalLine, deleteRows func() error) error {
	for _, l := range lines {
		if _, err := o.mutator.Apply(r.Stock, l.FormatID, l.WarehouseID, l.Applied.Neg()); err != nil {
			return err
		}
	}
	if err := r.Movement.DeleteByDocument(documentID); err != nil {
		return err
	}
	return deleteRows()
}
