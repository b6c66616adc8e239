package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/apptest"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/purchasing"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

const (
	bodegaCentral  = "wh-central"
	formatoSixpack = "fmt-sixpack-lager"
	proveedorAndes = "sup-andes"
)

func newPurchaseFixture() (*apptest.Store, *purchasing.PurchaseUseCase) {
	store := apptest.NewStore()
	store.SeedWarehouse(bodegaCentral, "Bodega Central")
	store.SeedSupplier(proveedorAndes, "Distribuidora Andes")
	store.SeedFormat(formatoSixpack, "Sixpack Lager", decimal.NewFromInt(25000), decimal.NewFromInt(100), decimal.NewFromInt(19))
	uc := purchasing.NewPurchaseUseCase(store.TxRunner(), store.PurchaseRepo(), store.SupplierRepo(), store.WarehouseRepo(), store.FormatRepo())
	return store, uc
}

func crearCompra(t *testing.T, uc *purchasing.PurchaseUseCase, qty, unitPrice int64) string {
	t.Helper()
	id, err := uc.CreatePurchase(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: proveedorAndes,
		Lines: []dto.DocumentLineRequest{{
			FormatID:    formatoSixpack,
			WarehouseID: bodegaCentral,
			Quantity:    decimal.NewFromInt(qty),
			UnitPrice:   decimal.NewFromInt(unitPrice),
		}},
	})
	require.NoError(t, err)
	return id
}

// ── Creación ──────────────────────────────────────────────────────────────────

func TestCreatePurchase_SumaStockYRegistraMovimientoIN(t *testing.T) {
	store, uc := newPurchaseFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(20))

	id := crearCompra(t, uc, 10, 150)

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(30)),
		"la compra debe sumar 10 a las 20 existentes")

	movs := store.MovementsByDocument(id)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindIN, movs[0].Kind)
	require.Len(t, movs[0].Lines, 1)
	assert.True(t, movs[0].Lines[0].Quantity.Equal(decimal.NewFromInt(10)),
		"la línea del movimiento IN lleva la cantidad en positivo")

	got, err := uc.GetPurchase(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.NetTotal.Equal(decimal.NewFromInt(1500)))
	assert.True(t, got.TaxTotal.Equal(decimal.NewFromInt(285)), "IVA del 19 por ciento sobre 1500")
	assert.True(t, got.GrandTotal.Equal(decimal.NewFromInt(1785)))
}

func TestCreatePurchase_ActualizaCostoPromedioPonderado(t *testing.T) {
	store, uc := newPurchaseFixture()
	// 20 unidades en stock con costo 100; entran 10 a 400 → (2000+4000)/30 = 200
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(20))

	crearCompra(t, uc, 10, 400)

	format, err := store.FormatRepo().GetByID(formatoSixpack)
	require.NoError(t, err)
	assert.True(t, format.Cost.Equal(decimal.NewFromInt(200)),
		"el costo promedio debe ponderar stock previo y entrada, fue %s", format.Cost)
}

func TestCreatePurchase_CreaLaCeldaSiNoExiste(t *testing.T) {
	store, uc := newPurchaseFixture()

	crearCompra(t, uc, 12, 150)

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(12)),
		"comprar hacia una celda inexistente debe crearla")
}

func TestCreatePurchase_ProveedorInexistente(t *testing.T) {
	_, uc := newPurchaseFixture()
	_, err := uc.CreatePurchase(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: "sup-fantasma",
		Lines: []dto.DocumentLineRequest{{
			FormatID: formatoSixpack, WarehouseID: bodegaCentral,
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePurchase_CantidadNoPositiva(t *testing.T) {
	_, uc := newPurchaseFixture()
	_, err := uc.CreatePurchase(context.Background(), "user-1", dto.CreatePurchaseRequest{
		SupplierID: proveedorAndes,
		Lines: []dto.DocumentLineRequest{{
			FormatID: formatoSixpack, WarehouseID: bodegaCentral,
			Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(100),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Reversión ─────────────────────────────────────────────────────────────────

func TestDeletePurchase_RestauraElStockPrevio(t *testing.T) {
	store, uc := newPurchaseFixture()
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(20))

	id := crearCompra(t, uc, 10, 150)
	require.NoError(t, uc.DeletePurchase(context.Background(), id))

	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(20)),
		"crear y eliminar una compra debe dejar el stock como estaba")
	assert.Empty(t, store.MovementsByDocument(id), "los movimientos de la compra deben eliminarse")

	_, err := uc.GetPurchase(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletePurchase_StockYaConsumidoRechazaCompleto(t *testing.T) {
	store, uc := newPurchaseFixture()

	id := crearCompra(t, uc, 10, 150)
	// De las 10 compradas ya salieron 7: revertir 10 dejaría la celda en -7
	store.SeedStock(formatoSixpack, bodegaCentral, decimal.NewFromInt(3))

	err := uc.DeletePurchase(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La compra y su movimiento quedan intactos
	got, err := uc.GetPurchase(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Len(t, store.MovementsByDocument(id), 1)
	assert.True(t, store.StockQty(formatoSixpack, bodegaCentral).Equal(decimal.NewFromInt(3)),
		"rollback: la celda no debe tocarse")
}

func TestDeletePurchase_Inexistente(t *testing.T) {
	_, uc := newPurchaseFixture()
	assert.ErrorIs(t, uc.DeletePurchase(context.Background(), "po-fantasma"), domain.ErrNotFound)
}
