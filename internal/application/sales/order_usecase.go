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

// OrderUseCase crea, convierte y reversa pedidos. El pedido descuenta stock al
// crearse (reserva); la conversión a venta NO vuelve a tocar el ledger: solo copia
// líneas, marca el pedido como convertido y liga la venta al pedido de origen, de
// modo que el pedido ya no puede reversarse (el efecto pertenece a la venta).
type OrderUseCase struct {
	txRunner      appinventory.TxRunner
	orderRepo     repository.OrderRepository // atado al pool, solo lecturas
	customerRepo  repository.CustomerRepository
	warehouseRepo repository.WarehouseRepository
	formatRepo    repository.ProductFormatRepository
	mutator       appinventory.StockMutator
	recorder      appinventory.MovementRecorder
	reversal      *appinventory.ReversalOrchestrator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner appinventory.TxRunner,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	warehouseRepo repository.WarehouseRepository,
	formatRepo repository.ProductFormatRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		warehouseRepo: warehouseRepo,
		formatRepo:    formatRepo,
		reversal:      appinventory.NewReversalOrchestrator(),
	}
}

// CreateOrder valida y crea el pedido descontando stock por cada línea (misma
// semántica de ledger que una venta) y registrando un movimiento OUT.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (string, error) {
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
	orderID := uuid.New().String()

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
		order := &entity.Order{
			ID:         orderID,
			CustomerID: in.CustomerID,
			Date:       now,
			NetTotal:   netTotal,
			TaxTotal:   taxTotal,
			GrandTotal: netTotal.Add(taxTotal),
			Note:       in.Note,
			Status:     entity.OrderStatusOpen,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if err := r.Order.Create(order); err != nil {
			return err
		}

		movLines := make([]appinventory.RecordLine, 0, len(in.Lines))
		for _, l := range in.Lines {
			line := &entity.OrderLine{
				ID:          uuid.New().String(),
				OrderID:     orderID,
				FormatID:    l.FormatID,
				WarehouseID: l.WarehouseID,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
			}
			if l.LotID != "" {
				lotID := l.LotID
				line.LotID = &lotID
			}
			if err := r.Order.CreateLine(line); err != nil {
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
			DocumentID: &orderID,
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
	return orderID, nil
}

// ConvertOrderToSale convierte un pedido abierto en venta SIN tocar el ledger (el
// stock ya se descontó al crear el pedido). Copia cantidades, precios, bodegas y
// lotes; el costo unitario de cada línea se resuelve desde su lote al momento de la
// conversión (o desde el costo promedio del formato si la línea no tiene lote).
// El pedido pasa a estado converted y la venta queda ligada por
// converted_from_order_id, lo que bloquea la doble reversión.
func (uc *OrderUseCase) ConvertOrderToSale(ctx context.Context, userID, orderID string) (string, error) {
	if orderID == "" {
		return "", domain.ErrInvalidInput
	}
	saleID := uuid.New().String()
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(r appinventory.Repos) error {
		order, err := r.Order.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusOpen {
			return domain.ErrConflict
		}
		lines, err := r.Order.ListLines(orderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrConflict
		}

		sale := &entity.Sale{
			ID:                   saleID,
			CustomerID:           order.CustomerID,
			Date:                 now,
			NetTotal:             order.NetTotal,
			TaxTotal:             order.TaxTotal,
			GrandTotal:           order.GrandTotal,
			Note:                 order.Note,
			Status:               entity.SaleStatusActive,
			ConvertedFromOrderID: &orderID,
			CreatedAt:            now,
			CreatedBy:            userID,
		}
		if err := r.Sale.Create(sale); err != nil {
			return err
		}
		for _, l := range lines {
			unitCost, err := uc.resolveUnitCost(r, l)
			if err != nil {
				return err
			}
			saleLine := &entity.SaleLine{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				FormatID:    l.FormatID,
				WarehouseID: l.WarehouseID,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				UnitCost:    unitCost,
				LotID:       l.LotID,
			}
			if err := r.Sale.CreateLine(saleLine); err != nil {
				return err
			}
		}
		return r.Order.UpdateStatus(orderID, entity.OrderStatusConverted)
	})
	if err != nil {
		return "", err
	}
	return saleID, nil
}

// resolveUnitCost costo unitario de una línea convertida: el del lote referenciado,
// o el costo promedio del formato si no hay lote.
func (uc *OrderUseCase) resolveUnitCost(r appinventory.Repos, l *entity.OrderLine) (decimal.Decimal, error) {
	if l.LotID != nil {
		lot, err := r.Lot.GetByID(*l.LotID)
		if err != nil {
			return decimal.Zero, err
		}
		if lot == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return lot.UnitCost, nil
	}
	format, err := r.Format.GetByID(l.FormatID)
	if err != nil {
		return decimal.Zero, err
	}
	if format == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return format.Cost, nil
}

// DeleteOrder reversa un pedido abierto (devuelve el stock reservado). Un pedido
// convertido no puede eliminarse: su efecto de stock pertenece a la venta creada en
// la conversión; se responde ErrConflict.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r appinventory.Repos) error {
		order, err := r.Order.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusConverted {
			return domain.ErrConflict
		}
		// Guarda defensiva: aunque el estado diga open, una venta ligada bloquea
		if sale, err := r.Sale.GetByConvertedFromOrder(id); err != nil {
			return err
		} else if sale != nil {
			return domain.ErrConflict
		}
		lines, err := r.Order.ListLines(id)
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
			if err := r.Order.DeleteLines(id); err != nil {
				return err
			}
			return r.Order.Delete(id)
		})
	})
}

// GetOrder devuelve el pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Date:       order.Date.Format(time.RFC3339),
		NetTotal:   order.NetTotal,
		TaxTotal:   order.TaxTotal,
		GrandTotal: order.GrandTotal,
		Note:       order.Note,
		Status:     order.Status,
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
	return resp, nil
}

// ListOrders lista pedidos paginados (solo cabeceras).
func (uc *OrderUseCase) ListOrders(ctx context.Context, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.OrderResponse{
			ID:         o.ID,
			CustomerID: o.CustomerID,
			Date:       o.Date.Format(time.RFC3339),
			NetTotal:   o.NetTotal,
			TaxTotal:   o.TaxTotal,
			GrandTotal: o.GrandTotal,
			Note:       o.Note,
			Status:     o.Status,
		})
	}
	return out, nil
}
