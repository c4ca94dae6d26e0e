package repository

import (
	"context"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// RecipeRepository puerto de persistencia para el mapa de recetas
// (plato → líneas de ingredientes).
type RecipeRepository interface {
	// ReplaceDishRecipe reemplaza todas las líneas del plato de forma atómica.
	ReplaceDishRecipe(ctx context.Context, dishID string, lines []*entity.RecipeLine) error
	ListByDish(ctx context.Context, dishID string) ([]*entity.RecipeLine, error)
	// DeleteByDish borra la receta completa del plato (al eliminar el plato).
	DeleteByDish(ctx context.Context, dishID string) error
	// ListDishesUsingItem platos cuyas recetas referencian el ítem (impacto de catálogo).
	ListDishesUsingItem(ctx context.Context, stockItemID string) ([]string, error)
}
