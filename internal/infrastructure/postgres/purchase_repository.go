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

// PurchaseRepository implementa repository.PurchaseRepository sobre PostgreSQL.
type PurchaseRepository struct {
	q Querier
}

func NewPurchaseRepository(q Querier) *PurchaseRepository {
	return &PurchaseRepository{q: q}
}

func (r *PurchaseRepository) Create(purchase *entity.Purchase) error {
	ctx := context.Background()

	query := `
		INSERT INTO purchases (id, supplier_id, date, net_total, tax_total, grand_total,
			note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.SupplierID, purchase.Date,
		purchase.NetTotal, purchase.TaxTotal, purchase.GrandTotal,
		purchase.Note, purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("error al crear compra: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) CreateLine(line *entity.PurchaseLine) error {
	ctx := context.Background()

	query := `
		INSERT INTO purchase_lines (id, purchase_id, format_id, warehouse_id,
			quantity, unit_price, lot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		line.ID, line.PurchaseID, line.FormatID, line.WarehouseID,
		line.Quantity, line.UnitPrice, line.LotID,
	)
	if err != nil {
		return fmt.Errorf("error al crear línea de compra: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) GetByID(id string) (*entity.Purchase, error) {
	ctx := context.Background()

	query := `
		SELECT id, supplier_id, date, net_total, tax_total, grand_total,
			note, created_at, created_by
		FROM purchases
		WHERE id = $1`

	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SupplierID, &p.Date, &p.NetTotal, &p.TaxTotal, &p.GrandTotal,
		&p.Note, &p.CreatedAt, &p.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar compra: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepository) ListLines(purchaseID string) ([]*entity.PurchaseLine, error) {
	ctx := context.Background()

	query := `
		SELECT id, purchase_id, format_id, warehouse_id, quantity, unit_price, lot_id
		FROM purchase_lines
		WHERE purchase_id = $1
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("error al listar líneas de compra: %w", err)
	}
	defer rows.Close()

	var lines []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.FormatID, &l.WarehouseID,
			&l.Quantity, &l.UnitPrice, &l.LotID); err != nil {
			return nil, fmt.Errorf("error al leer línea de compra: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *PurchaseRepository) List(limit, offset int) ([]*entity.Purchase, error) {
	ctx := context.Background()

	query := `
		SELECT id, supplier_id, date, net_total, tax_total, grand_total,
			note, created_at, created_by
		FROM purchases
		ORDER BY date DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al listar compras: %w", err)
	}
	defer rows.Close()

	var result []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Date, &p.NetTotal, &p.TaxTotal,
			&p.GrandTotal, &p.Note, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("error al leer compra: %w", err)
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *PurchaseRepository) DeleteLines(purchaseID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_lines WHERE purchase_id = $1`, purchaseID); err != nil {
		return fmt.Errorf("error al eliminar líneas de compra: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.PurchaseRepository = (*PurchaseRepository)(nil)
