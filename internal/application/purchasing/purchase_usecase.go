package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	appinventory "github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	dominventory "github.com/jhoicas/Gestion-api/internal/domain/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// PurchaseUseCase crea y reversa compras a proveedor. Crear una compra escribe
// cabecera y líneas, suma stock por cada línea en la bodega de la línea, actualiza el
// costo promedio ponderado del formato y registra un movimiento IN, todo en una
// transacción. Eliminarla aplica exactamente la negación.
type PurchaseUseCase struct {
	txRunner      appinventory.TxRunner
	purchaseRepo  repository.PurchaseRepository // atado al pool, solo lecturas
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	formatRepo    repository.ProductFormatRepository
	mutator       appinventory.StockMutator
	recorder      appinventory.MovementRecorder
	reversal      *appinventory.ReversalOrchestrator
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner appinventory.TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	formatRepo repository.ProductFormatRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:      txRunner,
		purchaseRepo:  purchaseRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		formatRepo:    formatRepo,
		reversal:      appinventory.NewReversalOrchestrator(),
	}
}

// taxRateDecimal normaliza tasas expresadas como porcentaje (19) a fracción (0.19).
func taxRateDecimal(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

// CreatePurchase valida el payload (proveedor, bodegas, formatos, cantidades
// positivas), y en una transacción escribe la compra, suma el stock línea a línea,
// actualiza el costo promedio y registra el movimiento IN. Rollback completo ante
// cualquier falla.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (string, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return "", domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.FormatID == "" || l.WarehouseID == "" {
			return "", domain.ErrInvalidInput
		}
		if !l.Quantity.GreaterThan(decimal.Zero) || l.UnitPrice.LessThan(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
	}

	// Validaciones de catálogo (solo lectura, fuera de la tx)
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil || supplier == nil {
		return "", domain.ErrNotFound
	}
	formatsByID := make(map[string]*entity.ProductFormat)
	for _, l := range in.Lines {
		if wh, _ := uc.warehouseRepo.GetByID(l.WarehouseID); wh == nil {
			return "", domain.ErrNotFound
		}
		format, err := uc.formatRepo.GetByID(l.FormatID)
		if err != nil || format == nil {
			return "", domain.ErrNotFound
		}
		formatsByID[l.FormatID] = format
	}

	now := time.Now()
	purchaseID := uuid.New().String()

	err = uc.txRunner.Run(ctx, func(r appinventory.Repos) error {
		var netTotal, taxTotal decimal.Decimal
		for _, l := range in.Lines {
			format := formatsByID[l.FormatID]
			subtotal := l.Quantity.Mul(l.UnitPrice)
			netTotal = netTotal.Add(subtotal)
			taxTotal = taxTotal.Add(subtotal.Mul(taxRateDecimal(format.TaxRate)))
		}
		purchase := &entity.Purchase{
			ID:         purchaseID,
			SupplierID: in.SupplierID,
			Date:       now,
			NetTotal:   netTotal,
			TaxTotal:   taxTotal,
			GrandTotal: netTotal.Add(taxTotal),
			Note:       in.Note,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if err := r.Purchase.Create(purchase); err != nil {
			return err
		}

		movLines := make([]appinventory.RecordLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			line := &entity.PurchaseLine{
				ID:          uuid.New().String(),
				PurchaseID:  purchaseID,
				FormatID:    l.FormatID,
				WarehouseID: l.WarehouseID,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
			}
			if l.LotID != "" {
				lotID := l.LotID
				line.LotID = &lotID
			}
			if err := r.Purchase.CreateLine(line); err != nil {
				return err
			}
			// Suma el stock en la bodega de la línea
			stock, err := uc.mutator.Increase(r.Stock, l.FormatID, l.WarehouseID, l.Quantity)
			if err != nil {
				return err
			}
			// Costo promedio ponderado sobre el stock previo a la entrada
			format := formatsByID[l.FormatID]
			prevQty := stock.Quantity.Sub(l.Quantity)
			newCost := dominventory.CostCalculator(prevQty, format.Cost, l.Quantity, l.UnitPrice)
			if err := r.Format.UpdateCost(l.FormatID, newCost); err != nil {
				return err
			}
			// Si otra línea trae el mismo formato, parte del costo recién calculado
			format.Cost = newCost
			movLines = append(movLines, appinventory.RecordLine{
				FormatID: l.FormatID,
				Quantity: l.Quantity,
				LineKind: entity.MovementLineIN,
			})
		}

		_, err := uc.recorder.Record(r.Movement, appinventory.RecordInput{
			DocumentID: &purchaseID,
			Kind:       entity.MovementKindIN,
			Note:       in.Note,
			OccurredAt: now,
			CreatedBy:  userID,
			Lines:      movLines,
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return purchaseID, nil
}

// DeletePurchase reversa la compra: resta de cada bodega lo que la compra sumó.
// Si una bodega ya no tiene esa cantidad (el stock se vendió o trasladó después),
// falla con InsufficientStockError y la compra queda intacta: nunca se aplica a
// medias.
func (uc *PurchaseUseCase) DeletePurchase(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinventory.Repos) error {
		purchase, err := r.Purchase.GetByID(id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		lines, err := r.Purchase.ListLines(id)
		if err != nil {
			return err
		}
		revLines := make([]appinventory.ReversalLine, 0, len(lines))
		for _, l := range lines {
			revLines = append(revLines, appinventory.ReversalLine{
				FormatID:    l.FormatID,
				WarehouseID: l.WarehouseID,
				Applied:     l.Quantity,
			})
		}
		return uc.reversal.Reverse(r, id, revLines, func() error {
			if err := r.Purchase.DeleteLines(id); err != nil {
				return err
			}
			return r.Purchase.Delete(id)
		})
	})
}

// GetPurchase devuelve la compra con sus líneas.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.purchaseRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, lines), nil
}

// ListPurchases lista compras paginadas (solo cabeceras).
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	page.DefaultPage()
	purchases, err := uc.purchaseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, *toPurchaseResponse(p, nil))
	}
	return out, nil
}

func toPurchaseResponse(p *entity.Purchase, lines []*entity.PurchaseLine) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		Date:       p.Date.Format(time.RFC3339),
		NetTotal:   p.NetTotal,
		TaxTotal:   p.TaxTotal,
		GrandTotal: p.GrandTotal,
		Note:       p.Note,
	}
	for _, l := range lines {
		lineResp := dto.DocumentLineResponse{
			ID:          l.ID,
			FormatID:    l.FormatID,
			WarehouseID: l.WarehouseID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
		if l.LotID != nil {
			lineResp.LotID = *l.LotID
		}
		resp.Lines = append(resp.Lines, lineResp)
	}
	return resp
}
