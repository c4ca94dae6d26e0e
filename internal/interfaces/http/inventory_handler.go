package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/inventory"
)

// InventoryHandler maneja las consultas de inventario, ajustes y
// conciliación (protegido).
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// LowStock godoc
// @Summary      Ítems en o por debajo del umbral de reposición
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context(), GetBranchID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// LotHistory godoc
// @Summary      Historial de lotes de costo de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem de stock"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.CostLotDTO
// @Router       /api/stock-items/{id}/lots [get]
func (h *InventoryHandler) LotHistory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	lots, err := h.uc.LotHistory(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CostLotDTO, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.CostLotDTO{
			ID:                l.ID,
			Source:            string(l.Source),
			Quantity:          l.Quantity,
			UnitCost:          l.UnitCost,
			RemainingQuantity: l.RemainingQuantity,
			BatchNumber:       l.BatchNumber,
			ExpiryDate:        l.ExpiryDate,
			AcquiredAt:        l.AcquiredAt,
		})
	}
	return c.JSON(out)
}

// ConsumptionHistory godoc
// @Summary      Historial de consumos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem de stock"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.ConsumptionResponse
// @Router       /api/stock-items/{id}/consumptions [get]
func (h *InventoryHandler) ConsumptionHistory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	recs, err := h.uc.ConsumptionHistory(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ConsumptionResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, consumptionToResponse(rec))
	}
	return c.JSON(out)
}

// ConsumptionsByOrder godoc
// @Summary      Consumos causados por una orden de venta
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden de venta"
// @Success      200      {array}  dto.ConsumptionResponse
// @Router       /api/orders/{orderId}/consumptions [get]
func (h *InventoryHandler) ConsumptionsByOrder(c *fiber.Ctx) error {
	recs, err := h.uc.ConsumptionsByOrder(c.Context(), c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ConsumptionResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, consumptionToResponse(rec))
	}
	return c.JSON(out)
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste de inventario
// @Description  Cantidad positiva crea un lote de ajuste; negativa debita lotes como un
//
//	consumo sin orden (merma, rotura, conteo físico).
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "Ítem, cantidad y motivo"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RegisterAdjustment(c.Context(), in, userID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// Reconcile godoc
// @Summary      Verificar consistencia agregado vs lotes
// @Description  Compara current_stock contra la suma de remanentes por ítem. Solo informa,
//
//	nunca corrige. Con desviaciones responde 409 junto con el reporte.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationReportDTO
// @Failure      409  {object}  dto.ReconciliationReportDTO
// @Router       /api/inventory/reconciliation [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	report, err := h.uc.Reconcile(c.Context(), GetBranchID(c))
	if err != nil {
		if report != nil {
			return c.Status(fiber.StatusConflict).JSON(report)
		}
		return respondError(c, err)
	}
	return c.JSON(report)
}
