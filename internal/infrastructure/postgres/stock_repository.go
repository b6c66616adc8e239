package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// StockRepository implementa repository.StockRepository sobre PostgreSQL.
type StockRepository struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepository {
	return &StockRepository{q: q}
}

// Get retorna la celda de stock para (formato, bodega). Si no existe fila todavía,
// retorna una celda con cantidad cero: ausencia de fila equivale a stock cero.
func (r *StockRepository) Get(formatID, warehouseID string) (*entity.Stock, error) {
	ctx := context.Background()

	query := `
		SELECT format_id, warehouse_id, quantity, updated_at
		FROM stock
		WHERE format_id = $1 AND warehouse_id = $2`

	var s entity.Stock
	err := r.q.QueryRow(ctx, query, formatID, warehouseID).Scan(
		&s.FormatID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &entity.Stock{
			FormatID:    formatID,
			WarehouseID: warehouseID,
			Quantity:    decimal.Zero,
			UpdatedAt:   time.Now(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar stock: %w", err)
	}
	return &s, nil
}

// ApplyDelta aplica un delta a la celda de forma atómica.
//
// Para deltas negativos usa un UPDATE condicional: la fila solo se modifica si la
// cantidad resultante es >= 0. Cero filas afectadas significa stock insuficiente
// (la celda nunca se elimina, así que fila ausente también implica stock cero).
// La condición se evalúa bajo el row lock del UPDATE, por lo que dos descuentos
// concurrentes nunca dejan la celda negativa.
//
// Para deltas no negativos usa un upsert: crea la celda si no existe o suma el
// delta sobre la cantidad vigente.
func (r *StockRepository) ApplyDelta(formatID, warehouseID string, delta decimal.Decimal) (*entity.Stock, error) {
	ctx := context.Background()

	var s entity.Stock
	if delta.IsNegative() {
		query := `
			UPDATE stock
			SET quantity = quantity + $3, updated_at = NOW()
			WHERE format_id = $1 AND warehouse_id = $2 AND quantity + $3 >= 0
			RETURNING format_id, warehouse_id, quantity, updated_at`

		err := r.q.QueryRow(ctx, query, formatID, warehouseID, delta).Scan(
			&s.FormatID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewInsufficientStockError(formatID, warehouseID)
		}
		if err != nil {
			return nil, fmt.Errorf("error al descontar stock: %w", err)
		}
		return &s, nil
	}

	query := `
		INSERT INTO stock (format_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (format_id, warehouse_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING format_id, warehouse_id, quantity, updated_at`

	err := r.q.QueryRow(ctx, query, formatID, warehouseID, delta).Scan(
		&s.FormatID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error al incrementar stock: %w", err)
	}
	return &s, nil
}

// ListByWarehouse retorna las celdas de una bodega ordenadas por formato.
func (r *StockRepository) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	ctx := context.Background()

	query := `
		SELECT format_id, warehouse_id, quantity, updated_at
		FROM stock
		WHERE warehouse_id = $1
		ORDER BY format_id
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al listar stock: %w", err)
	}
	defer rows.Close()

	var result []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.FormatID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error al leer stock: %w", err)
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

var _ repository.StockRepository = (*StockRepository)(nil)
