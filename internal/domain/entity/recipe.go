package entity

import "github.com/shopspring/decimal"

// Recipe receta de producción: insumos consumidos y formatos producidos por una
// unidad de producción (multiplier = 1). Solo lectura para el motor de inventario.
type Recipe struct {
	ID             string
	Name           string
	Kind           string
	OutputFormatID string
	Inputs         []RecipeInput
	Outputs        []RecipeOutput
}

// RecipeInput insumo requerido por unidad de producción.
type RecipeInput struct {
	RecipeID           string
	IngredientFormatID string
	QtyRequired        decimal.Decimal
}

// RecipeOutput formato producido por unidad de producción (procesos multi-salida).
type RecipeOutput struct {
	RecipeID       string
	OutputFormatID string
	QtyProduced    decimal.Decimal
}
