package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateLine(line *entity.PurchaseLine) error
	GetByID(id string) (*entity.Purchase, error)
	ListLines(purchaseID string) ([]*entity.PurchaseLine, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	DeleteLines(purchaseID string) error
	Delete(id string) error
}
