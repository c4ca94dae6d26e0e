package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/consumption"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// ConsumptionHandler maneja las peticiones HTTP del motor de consumo
// (protegido). Lo invoca el subsistema de órdenes al finalizar ventas y al
// anularlas.
type ConsumptionHandler struct {
	uc *consumption.ConsumptionUseCase
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *consumption.ConsumptionUseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

func consumptionToResponse(rec *entity.ConsumptionRecord) dto.ConsumptionResponse {
	allocs := make([]dto.LotAllocationResponse, 0, len(rec.Allocations))
	for _, a := range rec.Allocations {
		allocs = append(allocs, dto.LotAllocationResponse{
			LotID:    a.LotID,
			Quantity: a.Quantity,
			UnitCost: a.UnitCost,
		})
	}
	return dto.ConsumptionResponse{
		ID:            rec.ID,
		StockItemID:   rec.StockItemID,
		DishID:        rec.DishID,
		OrderID:       rec.OrderID,
		OrderItemID:   rec.OrderItemID,
		Quantity:      rec.Quantity,
		UnitCost:      rec.UnitCost,
		TotalCost:     rec.TotalCost,
		CostingMethod: string(rec.CostingMethod),
		ConsumedAt:    rec.ConsumedAt,
		Allocations:   allocs,
	}
}

// Record godoc
// @Summary      Registrar consumo por venta de plato
// @Description  Debita los ingredientes de la receta (u overrides) según la política de
//
//	costeo. Atómico: si un ingrediente no alcanza, no se debita ninguno.
//
// @Tags         consumptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordConsumptionRequest  true  "Plato vendido y cantidad"
// @Success      201   {array}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumptions [post]
func (h *ConsumptionHandler) Record(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	userID := GetUserID(c)
	if branchID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}

	overrides := make([]consumption.IngredientLine, 0, len(in.Overrides))
	for _, o := range in.Overrides {
		overrides = append(overrides, consumption.IngredientLine{
			StockItemID: o.StockItemID,
			Quantity:    o.Quantity,
			UnitID:      o.UnitID,
		})
	}
	records, err := h.uc.RecordConsumption(c.Context(), consumption.ConsumptionInputDTO{
		BranchID:     branchID,
		DishID:       in.DishID,
		QuantitySold: in.QuantitySold,
		OrderID:      in.OrderID,
		OrderItemID:  in.OrderItemID,
		CreatedBy:    userID,
		Overrides:    overrides,
	})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.ConsumptionResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, consumptionToResponse(rec))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reverse godoc
// @Summary      Revertir un consumo
// @Description  Restaura exactamente las asignaciones por lote almacenadas; nunca recalcula
//
//	FIFO/LIFO. Revertir dos veces responde 409.
//
// @Tags         consumptions
// @Security     Bearer
// @Param        id   path  string  true  "ID del registro de consumo"
// @Success      204  "Sin contenido"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consumptions/{id}/reverse [post]
func (h *ConsumptionHandler) Reverse(c *fiber.Ctx) error {
	if err := h.uc.ReverseConsumption(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
