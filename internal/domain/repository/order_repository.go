package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateLine(line *entity.OrderLine) error
	GetByID(id string) (*entity.Order, error)
	ListLines(orderID string) ([]*entity.OrderLine, error)
	List(limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
	DeleteLines(orderID string) error
	Delete(id string) error
}
