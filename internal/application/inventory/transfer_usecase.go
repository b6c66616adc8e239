package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// TransferUseCase crea y reversa traslados de stock entre bodegas, todo dentro de
// una transacción: resta en origen (falla si no alcanza), suma en destino y registra
// dos movimientos (TRANSFER_OUT en origen, TRANSFER_IN en destino) consultables desde
// la perspectiva de cualquiera de las dos bodegas.
type TransferUseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository // atado al pool, solo lecturas
	warehouseRepo repository.WarehouseRepository
	formatRepo    repository.ProductFormatRepository
	mutator       StockMutator
	recorder      MovementRecorder
	reversal      *ReversalOrchestrator
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, transferRepo repository.TransferRepository, warehouseRepo repository.WarehouseRepository, formatRepo repository.ProductFormatRepository) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		formatRepo:    formatRepo,
		reversal:      NewReversalOrchestrator(),
	}
}

// CreateTransfer valida el payload, y en una transacción escribe cabecera y líneas,
// mueve el stock línea a línea (orden del arreglo, determinista) y registra los dos
// movimientos. Cualquier falla hace Rollback completo.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, userID string, in dto.CreateTransferRequest) (string, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Lines) == 0 {
		return "", domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return "", domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.FormatID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
	}

	// Validar que bodegas y formatos existan (solo lectura, fuera de la tx)
	fromWh, _ := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	toWh, _ := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if fromWh == nil || toWh == nil {
		return "", domain.ErrNotFound
	}
	for _, l := range in.Lines {
		format, err := uc.formatRepo.GetByID(l.FormatID)
		if err != nil || format == nil {
			return "", domain.ErrNotFound
		}
	}

	now := time.Now()
	transferID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		transfer := &entity.Transfer{
			ID:              transferID,
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			Date:            now,
			Note:            in.Note,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		if err := r.Transfer.Create(transfer); err != nil {
			return err
		}

		outLines := make([]RecordLine, 0, len(in.Lines))
		inLines := make([]RecordLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			line := &entity.TransferLine{
				ID:         uuid.New().String(),
				TransferID: transferID,
				FormatID:   l.FormatID,
				Quantity:   l.Quantity,
			}
			if err := r.Transfer.CreateLine(line); err != nil {
				return err
			}
			// Resta en origen (falla la transacción completa si no alcanza) y suma en destino
			if _, err := uc.mutator.Decrease(r.Stock, l.FormatID, in.FromWarehouseID, l.Quantity); err != nil {
				return err
			}
			if _, err := uc.mutator.Increase(r.Stock, l.FormatID, in.ToWarehouseID, l.Quantity); err != nil {
				return err
			}
			outLines = append(outLines, RecordLine{FormatID: l.FormatID, Quantity: l.Quantity.Neg(), LineKind: entity.MovementLineOUT})
			inLines = append(inLines, RecordLine{FormatID: l.FormatID, Quantity: l.Quantity, LineKind: entity.MovementLineIN})
		}

		if _, err := uc.recorder.Record(r.Movement, RecordInput{
			DocumentID:        &transferID,
			Kind:              entity.MovementKindTRANSFEROut,
			SourceWarehouseID: &in.FromWarehouseID,
			DestWarehouseID:   &in.ToWarehouseID,
			Note:              in.Note,
			OccurredAt:        now,
			CreatedBy:         userID,
			Lines:             outLines,
		}); err != nil {
			return err
		}
		_, err := uc.recorder.Record(r.Movement, RecordInput{
			DocumentID:        &transferID,
			Kind:              entity.MovementKindTRANSFERIn,
			SourceWarehouseID: &in.FromWarehouseID,
			DestWarehouseID:   &in.ToWarehouseID,
			Note:              in.Note,
			OccurredAt:        now,
			CreatedBy:         userID,
			Lines:             inLines,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return transferID, nil
}

// DeleteTransfer reversa el traslado: devuelve cada cantidad a la bodega origen y la
// retira de la destino (puede fallar con InsufficientStockError si el destino ya no
// la tiene), elimina movimientos, líneas y cabecera. Todo o nada.
func (uc *TransferUseCase) DeleteTransfer(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r Repos) error {
		transfer, err := r.Transfer.GetByID(id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		lines, err := r.Transfer.ListLines(id)
		if err != nil {
			return err
		}
		revLines := make([]ReversalLine, 0, len(lines)*2)
		for _, l := range lines {
			revLines = append(revLines,
				ReversalLine{FormatID: l.FormatID, WarehouseID: transfer.FromWarehouseID, Applied: l.Quantity.Neg()},
				ReversalLine{FormatID: l.FormatID, WarehouseID: transfer.ToWarehouseID, Applied: l.Quantity},
			)
		}
		return uc.reversal.Reverse(r, id, revLines, func() error {
			if err := r.Transfer.DeleteLines(id); err != nil {
				return err
			}
			return r.Transfer.Delete(id)
		})
	})
}

// GetTransfer devuelve el traslado con sus líneas (lectura fuera de transacción).
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.transferRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	resp := &dto.TransferResponse{
		ID:              transfer.ID,
		FromWarehouseID: transfer.FromWarehouseID,
		ToWarehouseID:   transfer.ToWarehouseID,
		Date:            transfer.Date.Format(time.RFC3339),
		Note:            transfer.Note,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.TransferLineRequest{FormatID: l.FormatID, Quantity: l.Quantity})
	}
	return resp, nil
}
