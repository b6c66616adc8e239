package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// ProductFormatRepository implementa repository.ProductFormatRepository sobre PostgreSQL.
type ProductFormatRepository struct {
	q Querier
}

func NewProductFormatRepository(q Querier) *ProductFormatRepository {
	return &ProductFormatRepository{q: q}
}

func (r *ProductFormatRepository) GetByID(id string) (*entity.ProductFormat, error) {
	ctx := context.Background()

	query := `
		SELECT id, product_id, sku, name, price, cost, tax_rate, created_at, updated_at
		FROM product_formats
		WHERE id = $1`

	var f entity.ProductFormat
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.ProductID, &f.SKU, &f.Name, &f.Price, &f.Cost, &f.TaxRate,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar formato: %w", err)
	}
	return &f, nil
}

// UpdateCost escribe el costo promedio ponderado; lo invoca la compra dentro de su
// transacción para que stock y costo avancen juntos.
func (r *ProductFormatRepository) UpdateCost(id string, cost decimal.Decimal) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx,
		`UPDATE product_formats SET cost = $2, updated_at = NOW() WHERE id = $1`, id, cost)
	if err != nil {
		return fmt.Errorf("error al actualizar costo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// WarehouseRepository implementa repository.WarehouseRepository sobre PostgreSQL.
type WarehouseRepository struct {
	q Querier
}

func NewWarehouseRepository(q Querier) *WarehouseRepository {
	return &WarehouseRepository{q: q}
}

func (r *WarehouseRepository) GetByID(id string) (*entity.Warehouse, error) {
	ctx := context.Background()

	var w entity.Warehouse
	err := r.q.QueryRow(ctx,
		`SELECT id, name, address, created_at, updated_at FROM warehouses WHERE id = $1`, id,
	).Scan(&w.ID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar bodega: %w", err)
	}
	return &w, nil
}

// SupplierRepository implementa repository.SupplierRepository sobre PostgreSQL.
type SupplierRepository struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepository {
	return &SupplierRepository{q: q}
}

func (r *SupplierRepository) GetByID(id string) (*entity.Supplier, error) {
	ctx := context.Background()

	var s entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT id, name, tax_id, email, phone, created_at, updated_at FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar proveedor: %w", err)
	}
	return &s, nil
}

// CustomerRepository implementa repository.CustomerRepository sobre PostgreSQL.
type CustomerRepository struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepository {
	return &CustomerRepository{q: q}
}

func (r *CustomerRepository) GetByID(id string) (*entity.Customer, error) {
	ctx := context.Background()

	var c entity.Customer
	err := r.q.QueryRow(ctx,
		`SELECT id, name, tax_id, email, phone, created_at, updated_at FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar cliente: %w", err)
	}
	return &c, nil
}

// LotRepository implementa repository.LotRepository sobre PostgreSQL.
type LotRepository struct {
	q Querier
}

func NewLotRepository(q Querier) *LotRepository {
	return &LotRepository{q: q}
}

func (r *LotRepository) GetByID(id string) (*entity.Lot, error) {
	ctx := context.Background()

	var l entity.Lot
	err := r.q.QueryRow(ctx,
		`SELECT id, format_id, unit_cost, received_at FROM lots WHERE id = $1`, id,
	).Scan(&l.ID, &l.FormatID, &l.UnitCost, &l.ReceivedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar lote: %w", err)
	}
	return &l, nil
}

var (
	_ repository.ProductFormatRepository = (*ProductFormatRepository)(nil)
	_ repository.WarehouseRepository     = (*WarehouseRepository)(nil)
	_ repository.SupplierRepository      = (*SupplierRepository)(nil)
	_ repository.CustomerRepository      = (*CustomerRepository)(nil)
	_ repository.LotRepository           = (*LotRepository)(nil)
)
