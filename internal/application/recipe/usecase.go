// Package recipe administra el mapa de recetas: qué ítems de stock consume
// cada plato del menú por unidad vendida.
package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

// RecipeUseCase define y consulta recetas. Editar una receta nunca reescribe
// consumos ya registrados.
type RecipeUseCase struct {
	recipeRepo repository.RecipeRepository
	itemRepo   repository.StockItemRepository
	unitRepo   repository.MeasuringUnitRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	recipeRepo repository.RecipeRepository,
	itemRepo repository.StockItemRepository,
	unitRepo repository.MeasuringUnitRepository,
) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo, itemRepo: itemRepo, unitRepo: unitRepo}
}

// SetDishRecipe reemplaza la receta completa del plato. Valida que cada
// línea tenga cantidad positiva, que el ítem exista en la sucursal y que la
// unidad de la línea sea convertible a la unidad del ítem.
func (uc *RecipeUseCase) SetDishRecipe(ctx context.Context, branchID, dishID string, in dto.SetDishRecipeRequest) ([]*entity.RecipeLine, error) {
	if dishID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	seen := make(map[string]bool, len(in.Lines))
	lines := make([]*entity.RecipeLine, 0, len(in.Lines))
	now := time.Now()
	for _, ln := range in.Lines {
		if !ln.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: la cantidad de la línea debe ser positiva", domain.ErrInvalidInput)
		}
		if seen[ln.StockItemID] {
			return nil, fmt.Errorf("%w: ítem repetido en la receta", domain.ErrInvalidInput)
		}
		seen[ln.StockItemID] = true

		item, err := uc.itemRepo.GetByID(ctx, ln.StockItemID)
		if err != nil {
			return nil, err
		}
		if branchID != "" && item.BranchID != branchID {
			return nil, domain.ErrForbidden
		}
		lineUnit, err := uc.unitRepo.GetByID(ctx, ln.UnitID)
		if err != nil {
			return nil, err
		}
		itemUnit, err := uc.unitRepo.GetByID(ctx, item.UnitID)
		if err != nil {
			return nil, err
		}
		if lineUnit.FamilyID() != itemUnit.FamilyID() {
			return nil, fmt.Errorf("%w: la unidad %s no es convertible a la unidad del ítem %s", domain.ErrInvalidInput, lineUnit.Symbol, item.Name)
		}

		cost := snapshotCost(item, ln.Quantity, lineUnit, itemUnit)
		lines = append(lines, &entity.RecipeLine{
			ID:          uuid.New().String(),
			DishID:      dishID,
			StockItemID: ln.StockItemID,
			Quantity:    ln.Quantity,
			UnitID:      ln.UnitID,
			Cost:        cost,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := uc.recipeRepo.ReplaceDishRecipe(ctx, dishID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// GetDishRecipe líneas de receta del plato.
func (uc *RecipeUseCase) GetDishRecipe(ctx context.Context, dishID string) ([]*entity.RecipeLine, error) {
	lines, err := uc.recipeRepo.ListByDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	return lines, nil
}

// DeleteDishRecipe borra la receta del plato. El historial de consumos que la
// usó queda intacto.
func (uc *RecipeUseCase) DeleteDishRecipe(ctx context.Context, dishID string) error {
	return uc.recipeRepo.DeleteByDish(ctx, dishID)
}

// DishesUsingItem platos cuyas recetas referencian el ítem; útil antes de
// dar de baja un ítem del catálogo.
func (uc *RecipeUseCase) DishesUsingItem(ctx context.Context, stockItemID string) ([]string, error) {
	return uc.recipeRepo.ListDishesUsingItem(ctx, stockItemID)
}

// snapshotCost costo informativo de la línea al precio por defecto del ítem,
// expresado en la unidad del ítem.
func snapshotCost(item *entity.StockItem, qty decimal.Decimal, lineUnit, itemUnit *entity.MeasuringUnit) *decimal.Decimal {
	converted, err := entity.ConvertQuantity(qty, lineUnit, itemUnit)
	if err != nil {
		return nil
	}
	c := converted.Mul(item.DefaultPrice)
	return &c
}
