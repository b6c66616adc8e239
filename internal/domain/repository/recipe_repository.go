package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// RecipeRepository define el puerto de lectura de recetas de producción.
// El motor de inventario solo las consulta; el CRUD de recetas vive fuera del core.
type RecipeRepository interface {
	// GetByID devuelve la receta con sus insumos y salidas, o nil si no existe.
	GetByID(id string) (*entity.Recipe, error)
}
