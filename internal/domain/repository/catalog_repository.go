package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ProductFormatRepository puerto del catálogo de formatos de producto.
type ProductFormatRepository interface {
	GetByID(id string) (*entity.ProductFormat, error)
	// UpdateCost actualiza el costo promedio ponderado (lo escribe la compra dentro
	// de su transacción).
	UpdateCost(id string, cost decimal.Decimal) error
}

// WarehouseRepository puerto del catálogo de bodegas.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
}

// SupplierRepository puerto del catálogo de proveedores.
type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
}

// CustomerRepository puerto del catálogo de clientes.
type CustomerRepository interface {
	GetByID(id string) (*entity.Customer, error)
}

// LotRepository puerto de lotes de compra (fuente del costo unitario).
type LotRepository interface {
	GetByID(id string) (*entity.Lot, error)
}
