package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	// GetByConvertedFromOrder devuelve la venta creada al convertir un pedido,
	// o nil si el pedido no ha sido convertido. Guarda contra doble reversión.
	GetByConvertedFromOrder(orderID string) (*entity.Sale, error)
	ListLines(saleID string) ([]*entity.SaleLine, error)
	List(limit, offset int) ([]*entity.Sale, error)
	DeleteLines(saleID string) error
	Delete(id string) error
}
