package inventory_test

import (
	"context"
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
	bodegaMateriaPrima = "wh-materia-prima"
	bodegaTerminado    = "wh-terminado"
	formatoMalta       = "fmt-malta-kg"
	formatoLupulo      = "fmt-lupulo-kg"
	formatoBarril      = "fmt-barril-50l"
	recetaBarrilIPA    = "rcp-barril-ipa"
)

func newProductionFixture() (*apptest.Store, *inventory.ProductionUseCase) {
	store := apptest.NewStore()
	store.SeedWarehouse(bodegaMateriaPrima, "Materia Prima")
	store.SeedWarehouse(bodegaTerminado, "Producto Terminado")
	store.SeedFormat(formatoMalta, "Malta kg", decimal.Zero, decimal.NewFromInt(4000), decimal.Zero)
	store.SeedFormat(formatoLupulo, "Lúpulo kg", decimal.Zero, decimal.NewFromInt(90000), decimal.Zero)
	store.SeedFormat(formatoBarril, "Barril 50L", decimal.NewFromInt(400000), decimal.NewFromInt(250000), decimal.NewFromInt(19))
	store.SeedRecipe(entity.Recipe{
		ID:             recetaBarrilIPA,
		Name:           "Barril IPA 50L",
		OutputFormatID: formatoBarril,
		Inputs: []entity.RecipeInput{
			{RecipeID: recetaBarrilIPA, IngredientFormatID: formatoMalta, QtyRequired: decimal.NewFromInt(10)},
			{RecipeID: recetaBarrilIPA, IngredientFormatID: formatoLupulo, QtyRequired: decimal.NewFromInt(2)},
		},
		Outputs: []entity.RecipeOutput{
			{RecipeID: recetaBarrilIPA, OutputFormatID: formatoBarril, QtyProduced: decimal.NewFromInt(5)},
		},
	})
	uc := inventory.NewProductionUseCase(store.TxRunner(), store.RecipeRepo(), store.WarehouseRepo(), inventory.Warehouses{
		RawWarehouseID:      bodegaMateriaPrima,
		FinishedWarehouseID: bodegaTerminado,
	})
	return store, uc
}

func TestRunProduction_EscalaConsumoYSalidaPorMultiplicador(t *testing.T) {
	store, uc := newProductionFixture()
	store.SeedStock(formatoMalta, bodegaMateriaPrima, decimal.NewFromInt(40))
	store.SeedStock(formatoLupulo, bodegaMateriaPrima, decimal.NewFromInt(10))

	resp, err := uc.RunProduction(context.Background(), "user-1", dto.RunProductionRequest{
		RecipeID:   recetaBarrilIPA,
		Multiplier: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ProductionID)

	// 3 × (10 malta + 2 lúpulo) consumidos, 3 × 5 barriles producidos
	assert.True(t, store.StockQty(formatoMalta, bodegaMateriaPrima).Equal(decimal.NewFromInt(10)))
	assert.True(t, store.StockQty(formatoLupulo, bodegaMateriaPrima).Equal(decimal.NewFromInt(4)))
	assert.True(t, store.StockQty(formatoBarril, bodegaTerminado).Equal(decimal.NewFromInt(15)))

	movs := store.MovementsByDocument(resp.ProductionID)
	require.Len(t, movs, 2, "la corrida registra un movimiento de consumo y uno de salida")
	byKind := map[string]entity.Movement{}
	for _, m := range movs {
		byKind[m.Kind] = m
	}
	consume, ok := byKind[entity.MovementKindPRODUCTIONConsume]
	require.True(t, ok)
	assert.Equal(t, resp.ConsumeMovementID, consume.ID)
	require.Len(t, consume.Lines, 2)
	for _, l := range consume.Lines {
		assert.True(t, l.Quantity.IsNegative(), "las líneas de consumo llevan signo negativo")
	}
	output, ok := byKind[entity.MovementKindPRODUCTIONOutput]
	require.True(t, ok)
	assert.Equal(t, resp.OutputMovementID, output.ID)
	require.Len(t, output.Lines, 1)
	assert.True(t, output.Lines[0].Quantity.Equal(decimal.NewFromInt(15)))
}

func TestRunProduction_InsumoInsuficienteNoAplicaNada(t *testing.T) {
	store, uc := newProductionFixture()
	// Malta alcanza, lúpulo no: 3 × 2 = 6 > 5
	store.SeedStock(formatoMalta, bodegaMateriaPrima, decimal.NewFromInt(40))
	store.SeedStock(formatoLupulo, bodegaMateriaPrima, decimal.NewFromInt(5))

	_, err := uc.RunProduction(context.Background(), "user-1", dto.RunProductionRequest{
		RecipeID:   recetaBarrilIPA,
		Multiplier: decimal.NewFromInt(3),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, store.StockQty(formatoMalta, bodegaMateriaPrima).Equal(decimal.NewFromInt(40)),
		"rollback: el consumo de malta no debe persistir")
	assert.True(t, store.StockQty(formatoLupulo, bodegaMateriaPrima).Equal(decimal.NewFromInt(5)))
	assert.True(t, store.StockQty(formatoBarril, bodegaTerminado).IsZero())
	assert.Empty(t, store.Movements)
}

func TestRunProduction_BodegasExplicitasEnElRequest(t *testing.T) {
	store, uc := newProductionFixture()
	const otraBodega = "wh-planta-2"
	store.SeedWarehouse(otraBodega, "Planta 2")
	store.SeedStock(formatoMalta, otraBodega, decimal.NewFromInt(10))
	store.SeedStock(formatoLupulo, otraBodega, decimal.NewFromInt(2))

	_, err := uc.RunProduction(context.Background(), "user-1", dto.RunProductionRequest{
		RecipeID:            recetaBarrilIPA,
		Multiplier:          decimal.NewFromInt(1),
		RawWarehouseID:      otraBodega,
		FinishedWarehouseID: otraBodega,
	})
	require.NoError(t, err)
	assert.True(t, store.StockQty(formatoMalta, otraBodega).IsZero())
	assert.True(t, store.StockQty(formatoBarril, otraBodega).Equal(decimal.NewFromInt(5)),
		"las bodegas del request deben primar sobre las configuradas")
}

func TestRunProduction_RecetaInexistente(t *testing.T) {
	_, uc := newProductionFixture()
	_, err := uc.RunProduction(context.Background(), "user-1", dto.RunProductionRequest{
		RecipeID:   "rcp-fantasma",
		Multiplier: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunProduction_MultiplicadorNoPositivo(t *testing.T) {
	_, uc := newProductionFixture()
	_, err := uc.RunProduction(context.Background(), "user-1", dto.RunProductionRequest{
		RecipeID:   recetaBarrilIPA,
		Multiplier: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
