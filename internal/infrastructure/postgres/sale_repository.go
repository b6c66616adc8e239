package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// SaleRepository implementa repository.SaleRepository sobre PostgreSQL.
type SaleRepository struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepository {
	return &SaleRepository{q: q}
}

func (r *SaleRepository) Create(sale *entity.Sale) error {
	ctx := context.Background()

	query := `
		INSERT INTO sales (id, customer_id, date, net_total, tax_total, grand_total,
			note, status, converted_from_order_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CustomerID, sale.Date,
		sale.NetTotal, sale.TaxTotal, sale.GrandTotal,
		sale.Note, sale.Status, sale.ConvertedFromOrderID,
		sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("error al crear venta: %w", err)
	}
	return nil
}

func (r *SaleRepository) CreateLine(line *entity.SaleLine) error {
	ctx := context.Background()

	query := `
		INSERT INTO sale_lines (id, sale_id, format_id, warehouse_id,
			quantity, unit_price, unit_cost, lot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.q.Exec(ctx, query,
		line.ID, line.SaleID, line.FormatID, line.WarehouseID,
		line.Quantity, line.UnitPrice, line.UnitCost, line.LotID,
	)
	if err != nil {
		return fmt.Errorf("error al crear línea de venta: %w", err)
	}
	return nil
}

const saleColumns = `id, customer_id, date, net_total, tax_total, grand_total,
	note, status, converted_from_order_id, created_at, created_by`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.Date, &s.NetTotal, &s.TaxTotal, &s.GrandTotal,
		&s.Note, &s.Status, &s.ConvertedFromOrderID, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepository) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()

	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar venta: %w", err)
	}
	return s, nil
}

// GetByConvertedFromOrder busca la venta que se originó convirtiendo el pedido.
// Retorna (nil, nil) cuando el pedido no tiene venta asociada.
func (r *SaleRepository) GetByConvertedFromOrder(orderID string) (*entity.Sale, error) {
	ctx := context.Background()

	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE converted_from_order_id = $1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar venta por pedido: %w", err)
	}
	return s, nil
}

func (r *SaleRepository) ListLines(saleID string) ([]*entity.SaleLine, error) {
	ctx := context.Background()

	query := `
		SELECT id, sale_id, format_id, warehouse_id, quantity, unit_price, unit_cost, lot_id
		FROM sale_lines
		WHERE sale_id = $1
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("error al listar líneas de venta: %w", err)
	}
	defer rows.Close()

	var lines []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.FormatID, &l.WarehouseID,
			&l.Quantity, &l.UnitPrice, &l.UnitCost, &l.LotID); err != nil {
			return nil, fmt.Errorf("error al leer línea de venta: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *SaleRepository) List(limit, offset int) ([]*entity.Sale, error) {
	ctx := context.Background()

	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al listar ventas: %w", err)
	}
	defer rows.Close()

	var result []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("error al leer venta: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *SaleRepository) DeleteLines(saleID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_lines WHERE sale_id = $1`, saleID); err != nil {
		return fmt.Errorf("error al eliminar líneas de venta: %w", err)
	}
	return nil
}

func (r *SaleRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.SaleRepository = (*SaleRepository)(nil)
