package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository sobre PostgreSQL.
type MovementRepository struct {
	q Querier
}

func NewMovementRepository(q Querier) *MovementRepository {
	return &MovementRepository{q: q}
}

// Create inserta la cabecera del movimiento y todas sus líneas.
func (r *MovementRepository) Create(movement *entity.Movement) error {
	ctx := context.Background()

	query := `
		INSERT INTO movements (id, document_id, kind, source_warehouse_id, dest_warehouse_id,
			note, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.DocumentID, movement.Kind,
		movement.SourceWarehouseID, movement.DestWarehouseID,
		movement.Note, movement.OccurredAt, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("error al crear movimiento: %w", err)
	}

	lineQuery := `
		INSERT INTO movement_lines (id, movement_id, format_id, quantity, line_kind)
		VALUES ($1, $2, $3, $4, $5)`

	for _, l := range movement.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, l.ID, movement.ID, l.FormatID, l.Quantity, l.LineKind); err != nil {
			return fmt.Errorf("error al crear línea de movimiento: %w", err)
		}
	}
	return nil
}

// GetByID retorna un movimiento con sus líneas.
func (r *MovementRepository) GetByID(id string) (*entity.Movement, error) {
	ctx := context.Background()

	query := `
		SELECT id, document_id, kind, source_warehouse_id, dest_warehouse_id,
			note, occurred_at, created_at, created_by
		FROM movements
		WHERE id = $1`

	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.DocumentID, &m.Kind, &m.SourceWarehouseID, &m.DestWarehouseID,
		&m.Note, &m.OccurredAt, &m.CreatedAt, &m.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar movimiento: %w", err)
	}

	if err := r.loadLines([]*entity.Movement{&m}); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByWarehouse retorna los movimientos donde la bodega participa como origen o
// destino, del más reciente al más antiguo, con filtro opcional por fecha.
func (r *MovementRepository) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, document_id, kind, source_warehouse_id, dest_warehouse_id,
			note, occurred_at, created_at, created_by
		FROM movements
		WHERE (source_warehouse_id = $1 OR dest_warehouse_id = $1)
			AND ($2::timestamptz IS NULL OR occurred_at >= $2)
			AND ($3::timestamptz IS NULL OR occurred_at <= $3)
		ORDER BY occurred_at DESC, id DESC
		LIMIT $4 OFFSET $5`

	return r.list(query, warehouseID, from, to, limit, offset)
}

// ListByFormat retorna los movimientos que incluyen al menos una línea del formato.
func (r *MovementRepository) ListByFormat(formatID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT DISTINCT m.id, m.document_id, m.kind, m.source_warehouse_id, m.dest_warehouse_id,
			m.note, m.occurred_at, m.created_at, m.created_by
		FROM movements m
		JOIN movement_lines ml ON ml.movement_id = m.id
		WHERE ml.format_id = $1
			AND ($2::timestamptz IS NULL OR m.occurred_at >= $2)
			AND ($3::timestamptz IS NULL OR m.occurred_at <= $3)
		ORDER BY m.occurred_at DESC, m.id DESC
		LIMIT $4 OFFSET $5`

	return r.list(query, formatID, from, to, limit, offset)
}

// DeleteByDocument elimina los movimientos del documento junto con sus líneas.
func (r *MovementRepository) DeleteByDocument(documentID string) error {
	ctx := context.Background()

	if _, err := r.q.Exec(ctx,
		`DELETE FROM movement_lines
		 WHERE movement_id IN (SELECT id FROM movements WHERE document_id = $1)`,
		documentID,
	); err != nil {
		return fmt.Errorf("error al eliminar líneas de movimiento: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM movements WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("error al eliminar movimientos: %w", err)
	}
	return nil
}

func (r *MovementRepository) list(query, key string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	ctx := context.Background()

	rows, err := r.q.Query(ctx, query, key, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al listar movimientos: %w", err)
	}
	defer rows.Close()

	var result []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.DocumentID, &m.Kind, &m.SourceWarehouseID, &m.DestWarehouseID,
			&m.Note, &m.OccurredAt, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("error al leer movimiento: %w", err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadLines(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MovementRepository) loadLines(movements []*entity.Movement) error {
	ctx := context.Background()

	byID := make(map[string]*entity.Movement, len(movements))
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT id, movement_id, format_id, quantity, line_kind
		FROM movement_lines
		WHERE movement_id = ANY($1)
		ORDER BY movement_id, format_id`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error al listar líneas de movimiento: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.MovementID, &l.FormatID, &l.Quantity, &l.LineKind); err != nil {
			return fmt.Errorf("error al leer línea de movimiento: %w", err)
		}
		if m, ok := byID[l.MovementID]; ok {
			m.Lines = append(m.Lines, l)
		}
	}
	return rows.Err()
}

var _ repository.MovementRepository = (*MovementRepository)(nil)
