package repository

import (
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de inventario
// (cabecera + líneas). La cabecera y sus líneas se escriben juntas, en la misma
// transacción que las mutaciones de stock que describen.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByFormat(formatID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// DeleteByDocument elimina los movimientos (y sus líneas) ligados a un documento,
	// como parte de la reversión de ese documento.
	DeleteByDocument(documentID string) error
}
