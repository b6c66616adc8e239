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

// OrderRepository implementa repository.OrderRepository sobre PostgreSQL.
type OrderRepository struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepository {
	return &OrderRepository{q: q}
}

func (r *OrderRepository) Create(order *entity.Order) error {
	ctx := context.Background()

	query := `
		INSERT INTO orders (id, customer_id, date, net_total, tax_total, grand_total,
			note, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.q.Exec(ctx, query,
		order.ID, order.CustomerID, order.Date,
		order.NetTotal, order.TaxTotal, order.GrandTotal,
		order.Note, order.Status, order.CreatedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("error al crear pedido: %w", err)
	}
	return nil
}

func (r *OrderRepository) CreateLine(line *entity.OrderLine) error {
	ctx := context.Background()

	query := `
		INSERT INTO order_lines (id, order_id, format_id, warehouse_id,
			quantity, unit_price, lot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		line.ID, line.OrderID, line.FormatID, line.WarehouseID,
		line.Quantity, line.UnitPrice, line.LotID,
	)
	if err != nil {
		return fmt.Errorf("error al crear línea de pedido: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()

	query := `
		SELECT id, customer_id, date, net_total, tax_total, grand_total,
			note, status, created_at, created_by
		FROM orders
		WHERE id = $1`

	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.Date, &o.NetTotal, &o.TaxTotal, &o.GrandTotal,
		&o.Note, &o.Status, &o.CreatedAt, &o.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar pedido: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) ListLines(orderID string) ([]*entity.OrderLine, error) {
	ctx := context.Background()

	query := `
		SELECT id, order_id, format_id, warehouse_id, quantity, unit_price, lot_id
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("error al listar líneas de pedido: %w", err)
	}
	defer rows.Close()

	var lines []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.FormatID, &l.WarehouseID,
			&l.Quantity, &l.UnitPrice, &l.LotID); err != nil {
			return nil, fmt.Errorf("error al leer línea de pedido: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *OrderRepository) List(limit, offset int) ([]*entity.Order, error) {
	ctx := context.Background()

	query := `
		SELECT id, customer_id, date, net_total, tax_total, grand_total,
			note, status, created_at, created_by
		FROM orders
		ORDER BY date DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al listar pedidos: %w", err)
	}
	defer rows.Close()

	var result []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Date, &o.NetTotal, &o.TaxTotal,
			&o.GrandTotal, &o.Note, &o.Status, &o.CreatedAt, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("error al leer pedido: %w", err)
		}
		result = append(result, &o)
	}
	return result, rows.Err()
}

func (r *OrderRepository) UpdateStatus(id, status string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error al actualizar estado de pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) DeleteLines(orderID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("error al eliminar líneas de pedido: %w", err)
	}
	return nil
}

func (r *OrderRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
