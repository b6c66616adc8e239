package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/apptest"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

const (
	bodegaCentral = "wh-central"
	bodegaNorte   = "wh-norte"
	formatoSixIPA = "fmt-sixpack-ipa"
)

func newTransferFixture() (*apptest.Store, *inventory.TransferUseCase) {
	store := apptest.NewStore()
	store.SeedWarehouse(bodegaCentral, "Bodega Central")
	store.SeedWarehouse(bodegaNorte, "Bodega Norte")
	store.SeedFormat(formatoSixIPA, "Sixpack IPA", decimal.NewFromInt(30000), decimal.NewFromInt(18000), decimal.NewFromInt(19))
	uc := inventory.NewTransferUseCase(store.TxRunner(), store.TransferRepo(), store.WarehouseRepo(), store.FormatRepo())
	return store, uc
}

// ── Creación ──────────────────────────────────────────────────────────────────

func TestCreateTransfer_MueveStockEntreBodegas(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock(formatoSixIPA, bodegaCentral, decimal.NewFromInt(50))

	id, err := uc.CreateTransfer(context.Background(), "user-1", dto.CreateTransferRequest{
		FromWarehouseID: bodegaCentral,
		ToWarehouseID:   bodegaNorte,
		Lines:           []dto.TransferLineRequest{{FormatID: formatoSixIPA, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.True(t, store.StockQty(formatoSixIPA, bodegaCentral).Equal(decimal.NewFromInt(30)),
		"el origen debe quedar con 30")
	assert.True(t, store.StockQty(formatoSixIPA, bodegaNorte).Equal(decimal.NewFromInt(20)),
		"el destino debe quedar con 20")
	assert.True(t, store.TotalByFormat(formatoSixIPA).Equal(decimal.NewFromInt(50)),
		"el traslado no puede crear ni destruir existencias")

	movs := store.MovementsByDocument(id)
	require.Len(t, movs, 2, "un traslado registra TRANSFER_OUT y TRANSFER_IN")
	kinds := map[string]bool{}
	for _, m := range movs {
		kinds[m.Kind] = true
		require.NotNil(t, m.SourceWarehouseID)
		require.NotNil(t, m.DestWarehouseID)
		assert.Equal(t, bodegaCentral, *m.SourceWarehouseID)
		assert.Equal(t, bodegaNorte, *m.DestWarehouseID)
	}
	assert.True(t, kinds[entity.MovementKindTRANSFEROut])
	assert.True(t, kinds[entity.MovementKindTRANSFERIn])
}

func TestCreateTransfer_OrigenInsuficienteNoAplicaNada(t *testing.T) {
	store, uc := newTransferFixture()
	const otroFormato = "fmt-botella-stout"
	store.SeedFormat(otroFormato, "Botella Stout", decimal.NewFromInt(8000), decimal.NewFromInt(5000), decimal.NewFromInt(19))
	store.SeedStock(formatoSixIPA, bodegaCentral, decimal.NewFromInt(50))
	store.SeedStock(otroFormato, bodegaCentral, decimal.NewFromInt(3))

	// La segunda línea excede el stock: la primera tampoco debe aplicarse
	_, err := uc.CreateTransfer(context.Background(), "user-1", dto.CreateTransferRequest{
		FromWarehouseID: bodegaCentral,
		ToWarehouseID:   bodegaNorte,
		Lines: []dto.TransferLineRequest{
			{FormatID: formatoSixIPA, Quantity: decimal.NewFromInt(10)},
			{FormatID: otroFormato, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, otroFormato, insufficient.FormatID)
	assert.Equal(t, bodegaCentral, insufficient.WarehouseID)

	assert.True(t, store.StockQty(formatoSixIPA, bodegaCentral).Equal(decimal.NewFromInt(50)),
		"rollback: la línea válida tampoco se aplica")
	assert.True(t, store.StockQty(formatoSixIPA, bodegaNorte).IsZero())
	assert.Empty(t, store.Transfers, "la cabecera del traslado no debe persistir")
	assert.Empty(t, store.Movements, "ningún movimiento debe persistir")
}

func TestCreateTransfer_MismaBodegaEsInvalida(t *testing.T) {
	_, uc := newTransferFixture()
	_, err := uc.CreateTransfer(context.Background(), "user-1", dto.CreateTransferRequest{
		FromWarehouseID: bodegaCentral,
		ToWarehouseID:   bodegaCentral,
		Lines:           []dto.TransferLineRequest{{FormatID: formatoSixIPA, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateTransfer_BodegaInexistente(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock(formatoSixIPA, bodegaCentral, decimal.NewFromInt(10))
	_, err := uc.CreateTransfer(context.Background(), "user-1", dto.CreateTransferRequest{
		FromWarehouseID: bodegaCentral,
		ToWarehouseID:   "wh-fantasma",
		Lines:           []dto.TransferLineRequest{{FormatID: formatoSixIPA, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Reversión ─────────────────────────────────────────────────────────────────

func TestDeleteTransfer_DevuelveStockYEliminaMovimientos(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock(formatoSixIPA, bodegaCentral, decimal.NewFromInt(50))

	id, err := uc.CreateTransfer(context.Background(), "user-1", dto.CreateTransferRequest{
		FromWarehouseID: bodegaCentral,
		ToWarehouseID:   bodegaNorte,
		Lines:           []dto.TransferLineRequest{{FormatID: formatoSixIPA, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTransfer(context.Background(), id))

	assert.True(t, store.StockQty(formatoSixIPA, bodegaCentral).Equal(decimal.NewFromInt(50)),
		"la reversión debe restaurar el origen")
	assert.True(t, store.StockQty(formatoSixIPA, bodegaNorte).IsZero(),
		"la reversión debe vaciar el destino")
	assert.Empty(t, store.MovementsByDocument(id), "los movimientos del traslado deben eliminarse")
	assert.Empty(t, store.Transfers)

	_, err = uc.GetTransfer(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTransfer_DestinoYaConsumidoRechazaCompleto(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock(formatoSixIPA, bodegaCentral, decimal.NewFromInt(50))

	id, err := uc.CreateTransfer(context.Background(), "user-1", dto.CreateTransferRequest{
		FromWarehouseID: bodegaCentral,
		ToWarehouseID:   bodegaNorte,
		Lines:           []dto.TransferLineRequest{{FormatID: formatoSixIPA, Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	// El destino vendió 15 de las 20 trasladadas: devolver 20 lo dejaría negativo
	store.SeedStock(formatoSixIPA, bodegaNorte, decimal.NewFromInt(5))

	err = uc.DeleteTransfer(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El traslado y sus movimientos quedan intactos
	got, err := uc.GetTransfer(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Len(t, store.MovementsByDocument(id), 2)
	assert.True(t, store.StockQty(formatoSixIPA, bodegaCentral).Equal(decimal.NewFromInt(30)),
		"rollback: el origen no debe recibir la devolución parcial")
}

// ── Concurrencia ──────────────────────────────────────────────────────────────

// Varias reservas simultáneas sobre la misma celda: solo pueden pasar las que el
// stock alcanza a cubrir y la celda jamás queda negativa.
func TestCreateTransfer_ConcurrenciaNoSobregiraLaCelda(t *testing.T) {
	store, uc := newTransferFixture()
	store.SeedStock(formatoSixIPA, bodegaCentral, decimal.NewFromInt(10))

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = uc.CreateTransfer(context.Background(), "user-1", dto.CreateTransferRequest{
				FromWarehouseID: bodegaCentral,
				ToWarehouseID:   bodegaNorte,
				Lines:           []dto.TransferLineRequest{{FormatID: formatoSixIPA, Quantity: decimal.NewFromInt(3)}},
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	// 10 / 3 → a lo sumo 3 traslados pueden pasar
	assert.Equal(t, 3, ok, "solo deben pasar los traslados que el stock cubre")
	assert.False(t, store.StockQty(formatoSixIPA, bodegaCentral).IsNegative(),
		"la celda origen jamás puede quedar negativa")
	assert.True(t, store.TotalByFormat(formatoSixIPA).Equal(decimal.NewFromInt(10)),
		"el total por formato se conserva bajo concurrencia")
}
