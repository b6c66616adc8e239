package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/apptest"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

func newOrderFixture() (*apptest.Store, *sales.OrderUseCase, *sales.SaleUseCase) {
	store := apptest.NewStore()
	store.SeedWarehouse(bodegaCentral, "Bodega Central")
	store.SeedCustomer(clienteBarExpo, "Bar Expo")
	store.SeedFormat(formatoSixpack, "Sixpack Lager", decimal.NewFromInt(25000), decimal.NewFromInt(15000), decimal.NewFromInt(19))
	orderUC := sales.NewOrderUseCase(store.TxRunner(), store.OrderRepo(), store.CustomerRepo(), store.WarehouseRepo(), store.FormatRepo())
	saleUC := sales.NewSaleUseCase(store.TxRunner(), store.SaleRepo(), store.CustomerRepo(), store.WarehouseRepo(), store.FormatRepo())
	return store, orderUC, saleUC
}

func crearPedido(t *testing.T, uc *sales.OrderUseCase, qty int64) string {
	t.Helper()
	id, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: clienteBarExpo,
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaCentral, qty)},
	})
	require.NoError(t, err)
	return id
}

// ── Reserva ───────────────────────────────────────────────────────────────────

func TestCreateOrder_ReservaDescontandoStock(t *testing.T) {
	store, orderUC, _ := newOrderFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(5))

	id := crearPedido(t, orderUC, 5)

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).IsZero(),
		"el pedido reserva descontando hasta cero")

	movs := store.MovementsByDocument(id)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindOUT, movs[0].Kind)

	got, err := orderUC.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOpen, got.Status)
}

func TestCreateOrder_SinStockSuficiente(t *testing.T) {
	store, orderUC, _ := newOrderFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(3))

	_, err := orderUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: clienteBarExpo,
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaCentral, 4)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(3)))
	assert.Empty(t, store.Orders)
}

func TestDeleteOrder_DevuelveLaReserva(t *testing.T) {
	store, orderUC, _ := newOrderFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(5))

	id := crearPedido(t, orderUC, 5)
	require.NoError(t, orderUC.DeleteOrder(context.Background(), id))

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(5)),
		"eliminar un pedido abierto devuelve la reserva")
	assert.Empty(t, store.MovementsByDocument(id))
}

// ── Conversión ────────────────────────────────────────────────────────────────

func TestConvertOrderToSale_NoTocaElStock(t *testing.T) {
	store, orderUC, saleUC := newOrderFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(5))

	orderID := crearPedido(t, orderUC, 5)
	require.True(t, store.StockQty(formatoSixpack, bodegaCentral).IsZero())

	saleID, err := orderUC.ConvertOrderToSale(context.Background(), "user-1", orderID)
	require.NoError(t, err)
	require.NotEmpty(t, saleID)

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).IsZero(),
		"la conversión no vuelve a descontar: el stock ya salió con el pedido")

	order, err := orderUC.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConverted, order.Status)

	sale, err := saleUC.GetSale(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, orderID, sale.ConvertedFromOrderID)
	require.Len(t, sale.Lines, 1)
	assert.True(t, sale.Lines[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, bodegaCentral, sale.Lines[0].WarehouseID,
		"la línea convertida conserva la bodega del pedido")
}

func TestConvertOrderToSale_CostoDesdeElLote(t *testing.T) {
	store, orderUC, _ := newOrderFixture()
	const lote = "lot-2025-11"
	store.SeedLot(lote, formatoSixpack, decimal.NewFromInt(13500))
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(10))

	orderID, err := orderUC.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: clienteBarExpo,
		Lines: []dto.DocumentLineRequest{{
			FormatID:    formatoSixpack,
			WarehouseID: bodegaCentral,
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(25000),
			LotID:       lote,
		}},
	})
	require.NoError(t, err)

	saleID, err := orderUC.ConvertOrderToSale(context.Background(), "user-1", orderID)
	require.NoError(t, err)

	lines := store.SaleLines[saleID]
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitCost.Equal(decimal.NewFromInt(13500)),
		"el costo unitario de la línea convertida sale del lote referenciado")
	require.NotNil(t, lines[0].LotID)
	assert.Equal(t, lote, *lines[0].LotID)
}

func TestConvertOrderToSale_PedidoYaConvertido(t *testing.T) {
	store, orderUC, _ := newOrderFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(10))

	orderID := crearPedido(t, orderUC, 2)
	_, err := orderUC.ConvertOrderToSale(context.Background(), "user-1", orderID)
	require.NoError(t, err)

	_, err = orderUC.ConvertOrderToSale(context.Background(), "user-1", orderID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un pedido solo puede convertirse una vez")
}

// ── Doble reversión ───────────────────────────────────────────────────────────

func TestDeleteOrder_ConvertidoSeRechaza(t *testing.T) {
	store, orderUC, _ := newOrderFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(5))

	orderID := crearPedido(t, orderUC, 5)
	_, err := orderUC.ConvertOrderToSale(context.Background(), "user-1", orderID)
	require.NoError(t, err)

	err = orderUC.DeleteOrder(context.Background(), orderID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"el efecto de stock pertenece a la venta: el pedido convertido no se reversa")
	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).IsZero(),
		"ningún stock debe devolverse por el intento")
}

func TestDeleteSale_DeVentaConvertidaDevuelveElStock(t *testing.T) {
	store, orderUC, saleUC := newOrderFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(5))

	orderID := crearPedido(t, orderUC, 5)
	saleID, err := orderUC.ConvertOrderToSale(context.Background(), "user-1", orderID)
	require.NoError(t, err)

	require.NoError(t, saleUC.DeleteSale(context.Background(), saleID))
	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(5)),
		"tras la conversión, reversar la venta sí devuelve el stock")
}
