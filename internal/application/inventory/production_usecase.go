package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Warehouses bodegas por defecto para producción (materia prima y producto terminado).
type Warehouses struct {
	RawWarehouseID      string
	FinishedWarehouseID string
}

// ProductionUseCase ejecuta una transformación de producción: consume los insumos de
// la receta y produce sus salidas, escaladas por el multiplicador, en una sola
// transacción. Si algún insumo no alcanza, nada se aplica.
type ProductionUseCase struct {
	txRunner      TxRunner
	recipeRepo    repository.RecipeRepository
	warehouseRepo repository.WarehouseRepository
	defaults      Warehouses
	mutator       StockMutator
	recorder      MovementRecorder
}

// NewProductionUseCase construye el caso de uso. defaults aporta las bodegas de
// materia prima y producto terminado cuando el request no las trae.
func NewProductionUseCase(txRunner TxRunner, recipeRepo repository.RecipeRepository, warehouseRepo repository.WarehouseRepository, defaults Warehouses) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:      txRunner,
		recipeRepo:    recipeRepo,
		warehouseRepo: warehouseRepo,
		defaults:      defaults,
	}
}

// RunProduction aplica la receta: por cada insumo consume multiplier × qty_required
// en la bodega de materia prima; por cada salida produce multiplier × qty_produced en
// la bodega de producto terminado. Registra un movimiento PRODUCTION_CONSUME y uno
// PRODUCTION_OUTPUT ligados a la misma corrida.
func (uc *ProductionUseCase) RunProduction(ctx context.Context, userID string, in dto.RunProductionRequest) (*dto.RunProductionResponse, error) {
	if in.RecipeID == "" || !in.Multiplier.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	rawWh := in.RawWarehouseID
	if rawWh == "" {
		rawWh = uc.defaults.RawWarehouseID
	}
	finishedWh := in.FinishedWarehouseID
	if finishedWh == "" {
		finishedWh = uc.defaults.FinishedWarehouseID
	}
	if rawWh == "" || finishedWh == "" {
		return nil, domain.ErrInvalidInput
	}

	recipe, err := uc.recipeRepo.GetByID(in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if len(recipe.Inputs) == 0 || len(recipe.Outputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if wh, _ := uc.warehouseRepo.GetByID(rawWh); wh == nil {
		return nil, domain.ErrNotFound
	}
	if wh, _ := uc.warehouseRepo.GetByID(finishedWh); wh == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	productionID := uuid.New().String()
	resp := &dto.RunProductionResponse{ProductionID: productionID}

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		// Consumo de insumos: si alguno no alcanza, la transacción completa se revierte
		consumeLines := make([]RecordLine, 0, len(recipe.Inputs))
		for _, input := range recipe.Inputs {
			consumed := in.Multiplier.Mul(input.QtyRequired)
			if _, err := uc.mutator.Decrease(r.Stock, input.IngredientFormatID, rawWh, consumed); err != nil {
				return err
			}
			consumeLines = append(consumeLines, RecordLine{
				FormatID: input.IngredientFormatID,
				Quantity: consumed.Neg(),
				LineKind: entity.MovementLineConsume,
			})
		}

		// Salidas (procesos multi-producto)
		outputLines := make([]RecordLine, 0, len(recipe.Outputs))
		for _, output := range recipe.Outputs {
			produced := in.Multiplier.Mul(output.QtyProduced)
			if _, err := uc.mutator.Increase(r.Stock, output.OutputFormatID, finishedWh, produced); err != nil {
				return err
			}
			outputLines = append(outputLines, RecordLine{
				FormatID: output.OutputFormatID,
				Quantity: produced,
				LineKind: entity.MovementLineOutput,
			})
		}

		consumeID, err := uc.recorder.Record(r.Movement, RecordInput{
			DocumentID:        &productionID,
			Kind:              entity.MovementKindPRODUCTIONConsume,
			SourceWarehouseID: &rawWh,
			Note:              in.Note,
			OccurredAt:        now,
			CreatedBy:         userID,
			Lines:             consumeLines,
		})
		if err != nil {
			return err
		}
		outputID, err := uc.recorder.Record(r.Movement, RecordInput{
			DocumentID:      &productionID,
			Kind:            entity.MovementKindPRODUCTIONOutput,
			DestWarehouseID: &finishedWh,
			Note:            in.Note,
			OccurredAt:      now,
			CreatedBy:       userID,
			Lines:           outputLines,
		})
		if err != nil {
			return err
		}
		resp.ConsumeMovementID = consumeID
		resp.OutputMovementID = outputID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
