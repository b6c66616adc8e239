package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/apptest"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/purchasing"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

const (
	bodegaCentral  = "wh-central"
	bodegaNorte    = "wh-norte"
	formatoSixpack = "fmt-sixpack-lager"
	formatoBotella = "fmt-botella-stout"
	clienteBarExpo = "cus-bar-expo"
	proveedorAndes = "sup-andes"
)

func newSaleFixture() (*apptest.Store, *sales.SaleUseCase) {
	store := apptest.NewStore()
	store.SeedWarehouse(bodegaCentral, "Bodega Central")
	store.SeedWarehouse(bodegaNorte, "Bodega Norte")
	store.SeedCustomer(clienteBarExpo, "Bar Expo")
	store.SeedSupplier(proveedorAndes, "Distribuidora Andes")
	store.SeedFormat(formatoSixpack, "Sixpack Lager", decimal.NewFromInt(25000), decimal.NewFromInt(15000), decimal.NewFromInt(19))
	store.SeedFormat(formatoBotella, "Botella Stout", decimal.NewFromInt(8000), decimal.NewFromInt(5000), decimal.NewFromInt(19))
	uc := sales.NewSaleUseCase(store.TxRunner(), store.SaleRepo(), store.CustomerRepo(), store.WarehouseRepo(), store.FormatRepo())
	return store, uc
}

func lineaVenta(formatID, warehouseID string, qty int64) dto.DocumentLineRequest {
	return dto.DocumentLineRequest{
		FormatID:    formatID,
		WarehouseID: warehouseID,
		Quantity:    decimal.NewFromInt(qty),
		UnitPrice:   decimal.NewFromInt(25000),
	}
}

// ── Creación ──────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYRegistraMovimientoOUT(t *testing.T) {
	store, uc := newSaleFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(20))

	id, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: clienteBarExpo,
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaCentral, 8)},
	})
	require.NoError(t, err)

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(12)))

	movs := store.MovementsByDocument(id)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindOUT, movs[0].Kind)
	require.Len(t, movs[0].Lines, 1)
	assert.True(t, movs[0].Lines[0].Quantity.Equal(decimal.NewFromInt(-8)),
		"la línea del movimiento OUT lleva la cantidad en negativo")
}

func TestCreateSale_StockInsuficienteNoTocaNada(t *testing.T) {
	store, uc := newSaleFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(20))

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: clienteBarExpo,
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaCentral, 25)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, formatoSixpack, insufficient.FormatID)
	assert.Equal(t, bodegaCentral, insufficient.WarehouseID)

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(20)),
		"la venta rechazada no debe tocar la celda")
	assert.Empty(t, store.Sales)
	assert.Empty(t, store.Movements)
}

func TestCreateSale_MultilineaTodoONada(t *testing.T) {
	store, uc := newSaleFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(20))
	store.SeedStock(formatoBotella, bodegaCentral, decimal.NewFromInt(2))

	// La segunda línea no alcanza: la primera tampoco debe aplicarse
	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: clienteBarExpo,
		Lines: []dto.DocumentLineRequest{
			lineaVenta(formatoSixpack, bodegaCentral, 5),
			lineaVenta(formatoBotella, bodegaCentral, 4),
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(20)),
		"rollback: el descuento de la primera línea no debe persistir")
	assert.True(t, store.StockQty(formatoBotella, bodegaCentral).Equal(decimal.NewFromInt(2)))
}

func TestCreateSale_PrecioCeroTomaElPrecioDeLista(t *testing.T) {
	store, uc := newSaleFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(10))

	id, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: clienteBarExpo,
		Lines: []dto.DocumentLineRequest{{
			FormatID:    formatoSixpack,
			WarehouseID: bodegaCentral,
			Quantity:    decimal.NewFromInt(2),
		}},
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.NewFromInt(25000)),
		"una línea sin precio hereda el precio de lista del formato")
	assert.True(t, got.NetTotal.Equal(decimal.NewFromInt(50000)))
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	_, uc := newSaleFixture()
	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cus-fantasma",
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaCentral, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Reversión ─────────────────────────────────────────────────────────────────

func TestDeleteSale_DevuelveElStockALaBodegaDeLaLinea(t *testing.T) {
	store, uc := newSaleFixture()
	store.SeedStock(formatoSixpack, bodegaNorte, decimal.NewFromInt(20))

	id, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: clienteBarExpo,
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaNorte, 6)},
	})
	require.NoError(t, err)
	require.True(t, store.StockQty(formatoSixpack, bodegaNorte).Equal(decimal.NewFromInt(14)))

	require.NoError(t, uc.DeleteSale(context.Background(), id))

	assert.True(t, store.StockQty(formatoSixpack, bodegaNorte).Equal(decimal.NewFromInt(20)),
		"la reversión devuelve a la bodega registrada en la línea")
	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).IsZero(),
		"ninguna otra bodega debe recibir la devolución")
	assert.Empty(t, store.MovementsByDocument(id))

	_, err = uc.GetSale(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSale_Inexistente(t *testing.T) {
	_, uc := newSaleFixture()
	assert.ErrorIs(t, uc.DeleteSale(context.Background(), "sale-fantasma"), domain.ErrNotFound)
}

// ── Escenario compra → venta ──────────────────────────────────────────────────

// Recorrido completo sobre una misma celda: venta rechazada sin tocar la celda,
// entrada por compra, venta aceptada y reversión que restaura el saldo.
func TestFlujoCompraVenta_SecuenciaSobreUnaCelda(t *testing.T) {
	store, saleUC := newSaleFixture()
	purchaseUC := purchasing.NewPurchaseUseCase(store.TxRunner(), store.PurchaseRepo(), store.SupplierRepo(), store.WarehouseRepo(), store.FormatRepo())
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(20))

	// Vender 25 con 20 en stock se rechaza y la celda no se toca
	_, err := saleUC.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: clienteBarExpo,
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaCentral, 25)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(20)))

	// Entra una compra de 10 → 30
	_, err = purchaseUC.CreatePurchase(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: proveedorAndes,
		Lines: []dto.DocumentLineRequest{{
			FormatID: formatoSixpack, WarehouseID: bodegaCentral,
			Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(15000),
		}},
	})
	require.NoError(t, err)
	require.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(30)))

	// Venta de 12 → 18
	saleID, err := saleUC.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: clienteBarExpo,
		Lines:      []dto.DocumentLineRequest{lineaVenta(formatoSixpack, bodegaCentral, 12)},
	})
	require.NoError(t, err)
	require.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(18)))

	// Reversión de la venta → 30 de nuevo
	require.NoError(t, saleUC.DeleteSale(context.Background(), saleID))
	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(30)))
}
