package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre existencias y movimientos.
// Opera con repositorios atados al pool; no abre transacciones.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(stockRepo repository.StockRepository, movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// GetStock devuelve la existencia actual de un formato en una bodega (cero si la
// celda aún no existe).
func (uc *QueryUseCase) GetStock(ctx context.Context, formatID, warehouseID string) (*dto.StockResponse, error) {
	if formatID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Get(formatID, warehouseID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// ListStockByWarehouse lista las existencias de una bodega.
func (uc *QueryUseCase) ListStockByWarehouse(ctx context.Context, warehouseID string, page dto.PageRequest) ([]dto.StockResponse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	cells, err := uc.stockRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(cells))
	for _, c := range cells {
		out = append(out, *toStockResponse(c))
	}
	return out, nil
}

// ListMovementsByWarehouse historial de movimientos de una bodega en un rango de fechas.
func (uc *QueryUseCase) ListMovementsByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movRepo.ListByWarehouse(warehouseID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// ListMovementsByFormat historial de movimientos de un formato en un rango de fechas.
func (uc *QueryUseCase) ListMovementsByFormat(ctx context.Context, formatID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if formatID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movRepo.ListByFormat(formatID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	resp := &dto.StockResponse{
		FormatID:    s.FormatID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func toMovementResponses(movements []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := dto.MovementResponse{
			ID:         m.ID,
			Kind:       m.Kind,
			Note:       m.Note,
			OccurredAt: m.OccurredAt.Format(time.RFC3339),
		}
		if m.DocumentID != nil {
			resp.DocumentID = *m.DocumentID
		}
		if m.SourceWarehouseID != nil {
			resp.SourceWarehouseID = *m.SourceWarehouseID
		}
		if m.DestWarehouseID != nil {
			resp.DestWarehouseID = *m.DestWarehouseID
		}
		for _, l := range m.Lines {
			resp.Lines = append(resp.Lines, dto.MovementLineResponse{
				FormatID: l.FormatID,
				Quantity: l.Quantity,
				LineKind: l.LineKind,
			})
		}
		out = append(out, resp)
	}
	return out
}
