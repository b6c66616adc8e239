package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gestion-api/internal/domain/inventory"
)

// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 unidades a $100 + 10 unidades a $200 → promedio $150
	nuevo := inventory.CostCalculator(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(10), decimal.NewFromInt(200),
	)
	assert.True(t, nuevo.Equal(decimal.NewFromInt(150)),
		"el promedio de 10@100 y 10@200 debe ser 150, fue %s", nuevo)
}

func TestCostCalculator_PrimeraEntrada(t *testing.T) {
	// Sin stock previo el costo es el de la entrada
	nuevo := inventory.CostCalculator(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(5), decimal.NewFromInt(80),
	)
	assert.True(t, nuevo.Equal(decimal.NewFromInt(80)),
		"con stock cero el costo debe ser el de la entrada, fue %s", nuevo)
}

func TestCostCalculator_PonderaPorCantidad(t *testing.T) {
	// 30 unidades a $10 + 10 unidades a $30 → (300+300)/40 = 15
	nuevo := inventory.CostCalculator(
		decimal.NewFromInt(30), decimal.NewFromInt(10),
		decimal.NewFromInt(10), decimal.NewFromInt(30),
	)
	assert.True(t, nuevo.Equal(decimal.NewFromInt(15)),
		"la entrada pequeña debe pesar menos que el stock grande, fue %s", nuevo)
}

func TestCostCalculator_SumaCeroRetornaCero(t *testing.T) {
	nuevo := inventory.CostCalculator(decimal.Zero, decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(50))
	assert.True(t, nuevo.IsZero(), "sin cantidades el costo debe ser cero")
}
