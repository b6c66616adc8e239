package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// RecordLine línea de un movimiento a registrar.
type RecordLine struct {
	FormatID string
	Quantity decimal.Decimal // con signo, como se aplicó al stock
	LineKind string
}

// RecordInput datos de un movimiento lógico de inventario.
type RecordInput struct {
	DocumentID        *string
	Kind              string
	SourceWarehouseID *string
	DestWarehouseID   *string
	Note              string
	OccurredAt        time.Time
	CreatedBy         string
	Lines             []RecordLine
}

// MovementRecorder escribe cabecera + líneas de movimiento. Se invoca siempre junto a
// las llamadas al StockMutator correspondientes, dentro de la misma transacción: un
// movimiento sin efecto en el ledger (o al revés) es un bug de consistencia que este
// diseño prohíbe por construcción.
type MovementRecorder struct{}

// Record persiste el movimiento y devuelve su ID.
func (MovementRecorder) Record(movRepo repository.MovementRepository, in RecordInput) (string, error) {
	if in.Kind == "" || len(in.Lines) == 0 {
		return "", domain.ErrInvalidInput
	}
	id := uuid.New().String()
	now := time.Now()
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}
	mov := &entity.Movement{
		ID:                id,
		DocumentID:        in.DocumentID,
		Kind:              in.Kind,
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
		Note:              in.Note,
		OccurredAt:        occurred,
		CreatedAt:         now,
		CreatedBy:         in.CreatedBy,
	}
	for _, l := range in.Lines {
		mov.Lines = append(mov.Lines, entity.MovementLine{
			ID:         uuid.New().String(),
			MovementID: id,
			FormatID:   l.FormatID,
			Quantity:   l.Quantity,
			LineKind:   l.LineKind,
		})
	}
	if err := movRepo.Create(mov); err != nil {
		return "", err
	}
	return id, nil
}
