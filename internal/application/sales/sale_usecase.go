package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	appinventory "github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// SaleUseCase crea y reversa ventas. Crear una venta descuenta stock por cada línea
// en la bodega de la línea y registra un movimiento OUT, todo en una transacción;
// eliminarla devuelve el stock a la bodega registrada en cada línea (no a una bodega
// por defecto).
type SaleUseCase struct {
	txRunner      appinventory.TxRunner
	saleRepo      repository.SaleRepository // atado al pool, solo lecturas
	customerRepo  repository.CustomerRepository
	warehouseRepo repository.WarehouseRepository
	formatRepo    repository.ProductFormatRepository
	mutator       appinventory.StockMutator
	recorder      appinventory.MovementRecorder
	reversal      *appinventory.ReversalOrchestrator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner appinventory.TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	warehouseRepo repository.WarehouseRepository,
	formatRepo repository.ProductFormatRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:      txRunner,
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		warehouseRepo: warehouseRepo,
		formatRepo:    formatRepo,
		reversal:      appinventory.NewReversalOrchestrator(),
	}
}

// validateOutboundPayload validación estructural común a ventas y pedidos.
func validateOutboundPayload(customerID string, lines []dto.DocumentLineRequest) error {
	if customerID == "" || len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.FormatID == "" || l.WarehouseID == "" {
			return domain.ErrInvalidInput
		}
		if !l.Quantity.GreaterThan(decimal.Zero) || l.UnitPrice.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// decrementLine descuenta una línea saliente. Antes del descuento re-lee el stock
// para producir el error con formato y bodega (el caso típico es un menú desactualizado);
// la verificación explícita NO sustituye la garantía atómica de ApplyDelta, que
// vuelve a comprobar dentro del mismo UPDATE.
func decrementLine(mutator appinventory.StockMutator, stockRepo repository.StockRepository, l dto.DocumentLineRequest) error {
	current, err := stockRepo.Get(l.FormatID, l.WarehouseID)
	if err != nil {
		return err
	}
	if current.Quantity.LessThan(l.Quantity) {
		return domain.NewInsufficientStockError(l.FormatID, l.WarehouseID)
	}
	_, err = mutator.Decrease(stockRepo, l.FormatID, l.WarehouseID, l.Quantity)
	return err
}

// CreateSale valida el payload, y en una transacción escribe cabecera y líneas,
// descuenta el stock línea a línea (orden del arreglo) y registra el movimiento OUT.
// Si alguna línea no tiene stock suficiente, nada se aplica.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (string, error) {
	if err := validateOutboundPayload(in.CustomerID, in.Lines); err != nil {
		return "", err
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
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
	saleID := uuid.New().String()

	err = uc.txRunner.Run(ctx, func(r appinventory.Repos) error {
		var netTotal, taxTotal decimal.Decimal
		for i := range in.Lines {
			l := &in.Lines[i]
			format := formatsByID[l.FormatID]
			if l.UnitPrice.IsZero() {
				l.UnitPrice = format.Price
			}
			subtotal := l.Quantity.Mul(l.UnitPrice)
			netTotal = netTotal.Add(subtotal)
			taxTotal = taxTotal.Add(subtotal.Mul(taxRateDecimal(format.TaxRate)))
		}
		sale := &entity.Sale{
			ID:         saleID,
			CustomerID: in.CustomerID,
			Date:       now,
			NetTotal:   netTotal,
			TaxTotal:   taxTotal,
			GrandTotal: netTotal.Add(taxTotal),
			Note:       in.Note,
			Status:     entity.SaleStatusActive,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if err := r.Sale.Create(sale); err != nil {
			return err
		}

		movLines := make([]appinventory.RecordLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			format := formatsByID[l.FormatID]
			line := &entity.SaleLine{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				FormatID:    l.FormatID,
				WarehouseID: l.WarehouseID,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				UnitCost:    format.Cost,
			}
			if l.LotID != "" {
				lotID := l.LotID
				line.LotID = &lotID
			}
			if err := r.Sale.CreateLine(line); err != nil {
				return err
			}
			if err := decrementLine(uc.mutator, r.Stock, l); err != nil {
				return err
			}
			movLines = append(movLines, appinventory.RecordLine{
				FormatID: l.FormatID,
				Quantity: l.Quantity.Neg(),
				LineKind: entity.MovementLineOUT,
			})
		}

		_, err := uc.recorder.Record(r.Movement, appinventory.RecordInput{
			DocumentID: &saleID,
			Kind:       entity.MovementKindOUT,
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
	return saleID, nil
}

// DeleteSale reversa la venta: devuelve cada cantidad a la bodega registrada en su
// línea, elimina movimientos, líneas y cabecera, en una transacción. Si la venta
// proviene de un pedido convertido, su eliminación SÍ devuelve el stock: después de
// la conversión el efecto de stock pertenece a la venta.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinventory.Repos) error {
		sale, err := r.Sale.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		lines, err := r.Sale.ListLines(id)
		if err != nil {
			return err
		}
		revLines := make([]appinventory.ReversalLine, 0, len(lines))
		for _, l := range lines {
			revLines = append(revLines, appinventory.ReversalLine{
				FormatID:    l.FormatID,
				WarehouseID: l.WarehouseID,
				Applied:     l.Quantity.Neg(),
			})
		}
		return uc.reversal.Reverse(r, id, revLines, func() error {
			if err := r.Sale.DeleteLines(id); err != nil {
				return err
			}
			return r.Sale.Delete(id)
		})
	})
}

// GetSale devuelve la venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines), nil
}

// ListSales lista ventas paginadas (solo cabeceras).
func (uc *SaleUseCase) ListSales(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s, nil))
	}
	return out, nil
}

// taxRateDecimal normaliza tasas expresadas como porcentaje (19) a fracción (0.19).
func taxRateDecimal(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

func toSaleResponse(s *entity.Sale, lines []*entity.SaleLine) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Date:       s.Date.Format(time.RFC3339),
		NetTotal:   s.NetTotal,
		TaxTotal:   s.TaxTotal,
		GrandTotal: s.GrandTotal,
		Note:       s.Note,
		Status:     s.Status,
	}
	if s.ConvertedFromOrderID != nil {
		resp.ConvertedFromOrderID = *s.ConvertedFromOrderID
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
