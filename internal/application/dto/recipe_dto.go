package dto

import (
	"github.com/shopspring/decimal"
)

// RecipeLineRequest línea de receta al definir los ingredientes de un plato.
type RecipeLineRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitID      string          `json:"unit_id" validate:"required"`
}

// SetDishRecipeRequest body para PUT /api/dishes/:dishId/recipe.
// Reemplaza la receta completa del plato.
type SetDishRecipeRequest struct {
	Lines []RecipeLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// RecipeLineResponse línea de receta en respuestas.
type RecipeLineResponse struct {
	ID          string           `json:"id"`
	DishID      string           `json:"dish_id"`
	StockItemID string           `json:"stock_item_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitID      string           `json:"unit_id"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
}
