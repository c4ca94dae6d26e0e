package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/recipe"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// RecipeHandler maneja las peticiones HTTP del mapa de recetas (protegido).
type RecipeHandler struct {
	uc *recipe.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipe.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

func recipeLinesToResponse(lines []*entity.RecipeLine) []dto.RecipeLineResponse {
	out := make([]dto.RecipeLineResponse, 0, len(lines))
	for _, ln := range lines {
		out = append(out, dto.RecipeLineResponse{
			ID:          ln.ID,
			DishID:      ln.DishID,
			StockItemID: ln.StockItemID,
			Quantity:    ln.Quantity,
			UnitID:      ln.UnitID,
			Cost:        ln.Cost,
		})
	}
	return out
}

// SetDishRecipe godoc
// @Summary      Definir la receta de un plato
// @Description  Reemplaza todas las líneas del plato. No reescribe consumos pasados.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        dishId  path  string  true  "ID del plato"
// @Param        body    body  dto.SetDishRecipeRequest  true  "Líneas de la receta"
// @Success      200     {array}  dto.RecipeLineResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/dishes/{dishId}/recipe [put]
func (h *RecipeHandler) SetDishRecipe(c *fiber.Ctx) error {
	var in dto.SetDishRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	lines, err := h.uc.SetDishRecipe(c.Context(), GetBranchID(c), c.Params("dishId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipeLinesToResponse(lines))
}

// GetDishRecipe godoc
// @Summary      Consultar la receta de un plato
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        dishId  path  string  true  "ID del plato"
// @Success      200     {array}  dto.RecipeLineResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/dishes/{dishId}/recipe [get]
func (h *RecipeHandler) GetDishRecipe(c *fiber.Ctx) error {
	lines, err := h.uc.GetDishRecipe(c.Context(), c.Params("dishId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipeLinesToResponse(lines))
}

// DeleteDishRecipe godoc
// @Summary      Borrar la receta de un plato
// @Description  El historial de consumos que la usó queda intacto.
// @Tags         recipes
// @Security     Bearer
// @Param        dishId  path  string  true  "ID del plato"
// @Success      204     "Sin contenido"
// @Router       /api/dishes/{dishId}/recipe [delete]
func (h *RecipeHandler) DeleteDishRecipe(c *fiber.Ctx) error {
	if err := h.uc.DeleteDishRecipe(c.Context(), c.Params("dishId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DishesUsingItem godoc
// @Summary      Platos que usan un ítem de stock
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem de stock"
// @Success      200  {array}  string
// @Router       /api/stock-items/{id}/dishes [get]
func (h *RecipeHandler) DishesUsingItem(c *fiber.Ctx) error {
	dishes, err := h.uc.DishesUsingItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(dishes), "dishes": dishes})
}
