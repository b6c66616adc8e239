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

// TransferRepository implementa repository.TransferRepository sobre PostgreSQL.
type TransferRepository struct {
	q Querier
}

func NewTransferRepository(q Querier) *TransferRepository {
	return &TransferRepository{q: q}
}

func (r *TransferRepository) Create(transfer *entity.Transfer) error {
	ctx := context.Background()

	query := `
		INSERT INTO transfers (id, from_warehouse_id, to_warehouse_id, date, note,
			created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Date, transfer.Note, transfer.CreatedAt, transfer.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("error al crear traslado: %w", err)
	}
	return nil
}

func (r *TransferRepository) CreateLine(line *entity.TransferLine) error {
	ctx := context.Background()

	query := `
		INSERT INTO transfer_lines (id, transfer_id, format_id, quantity)
		VALUES ($1, $2, $3, $4)`

	_, err := r.q.Exec(ctx, query, line.ID, line.TransferID, line.FormatID, line.Quantity)
	if err != nil {
		return fmt.Errorf("error al crear línea de traslado: %w", err)
	}
	return nil
}

func (r *TransferRepository) GetByID(id string) (*entity.Transfer, error) {
	ctx := context.Background()

	query := `
		SELECT id, from_warehouse_id, to_warehouse_id, date, note, created_at, created_by
		FROM transfers
		WHERE id = $1`

	var t entity.Transfer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Date, &t.Note,
		&t.CreatedAt, &t.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar traslado: %w", err)
	}
	return &t, nil
}

func (r *TransferRepository) ListLines(transferID string) ([]*entity.TransferLine, error) {
	ctx := context.Background()

	query := `
		SELECT id, transfer_id, format_id, quantity
		FROM transfer_lines
		WHERE transfer_id = $1
		ORDER BY id`

	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("error al listar líneas de traslado: %w", err)
	}
	defer rows.Close()

	var lines []*entity.TransferLine
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.FormatID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("error al leer línea de traslado: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *TransferRepository) List(limit, offset int) ([]*entity.Transfer, error) {
	ctx := context.Background()

	query := `
		SELECT id, from_warehouse_id, to_warehouse_id, date, note, created_at, created_by
		FROM transfers
		ORDER BY date DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al listar traslados: %w", err)
	}
	defer rows.Close()

	var result []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Date,
			&t.Note, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("error al leer traslado: %w", err)
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

func (r *TransferRepository) DeleteLines(transferID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM transfer_lines WHERE transfer_id = $1`, transferID); err != nil {
		return fmt.Errorf("error al eliminar líneas de traslado: %w", err)
	}
	return nil
}

func (r *TransferRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar traslado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.TransferRepository = (*TransferRepository)(nil)
