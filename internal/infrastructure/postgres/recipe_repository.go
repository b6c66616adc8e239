package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// RecipeRepository implementa repository.RecipeRepository sobre PostgreSQL.
// Solo lectura: el motor de inventario consume recetas, no las edita.
type RecipeRepository struct {
	q Querier
}

func NewRecipeRepository(q Querier) *RecipeRepository {
	return &RecipeRepository{q: q}
}

// GetByID carga la receta con sus insumos y salidas. Retorna (nil, nil) si no existe.
func (r *RecipeRepository) GetByID(id string) (*entity.Recipe, error) {
	ctx := context.Background()

	var rec entity.Recipe
	err := r.q.QueryRow(ctx,
		`SELECT id, name, kind, output_format_id FROM recipes WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Kind, &rec.OutputFormatID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al consultar receta: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT recipe_id, ingredient_format_id, qty_required
		 FROM recipe_inputs WHERE recipe_id = $1 ORDER BY ingredient_format_id`, id)
	if err != nil {
		return nil, fmt.Errorf("error al listar insumos de receta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var in entity.RecipeInput
		if err := rows.Scan(&in.RecipeID, &in.IngredientFormatID, &in.QtyRequired); err != nil {
			return nil, fmt.Errorf("error al leer insumo de receta: %w", err)
		}
		rec.Inputs = append(rec.Inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	outRows, err := r.q.Query(ctx,
		`SELECT recipe_id, output_format_id, qty_produced
		 FROM recipe_outputs WHERE recipe_id = $1 ORDER BY output_format_id`, id)
	if err != nil {
		return nil, fmt.Errorf("error al listar salidas de receta: %w", err)
	}
	defer outRows.Close()
	for outRows.Next() {
		var out entity.RecipeOutput
		if err := outRows.Scan(&out.RecipeID, &out.OutputFormatID, &out.QtyProduced); err != nil {
			return nil, fmt.Errorf("error al leer salida de receta: %w", err)
		}
		rec.Outputs = append(rec.Outputs, out)
	}
	if err := outRows.Err(); err != nil {
		return nil, err
	}

	return &rec, nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
