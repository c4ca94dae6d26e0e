package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/dto"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/application/procurement"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// ProcurementHandler maneja las peticiones HTTP de órdenes de compra y
// recepción (protegido).
type ProcurementHandler struct {
	uc *procurement.ProcurementUseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.ProcurementUseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

func poToResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			StockItemID:      it.StockItemID,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			ReceivedQuantity: it.ReceivedQuantity,
		})
	}
	return dto.PurchaseOrderResponse{
		ID:          po.ID,
		OrderNumber: po.OrderNumber,
		BranchID:    po.BranchID,
		SupplierID:  po.SupplierID,
		Status:      string(po.Status),
		ExpectedAt:  po.ExpectedAt,
		Notes:       po.Notes,
		Total:       po.OrderedTotal(),
		Items:       items,
		CreatedAt:   po.CreatedAt,
	}
}

// Create godoc
// @Summary      Crear orden de compra (borrador)
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "branch_id requerido"})
	}
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	items := make([]procurement.POItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, procurement.POItemInput{
			StockItemID: it.StockItemID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	po, err := h.uc.CreatePurchaseOrder(c.Context(), procurement.CreatePOInput{
		BranchID:   branchID,
		SupplierID: in.SupplierID,
		ExpectedAt: in.ExpectedAt,
		Notes:      in.Notes,
		CreatedBy:  GetUserID(c),
		Items:      items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(poToResponse(po))
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *ProcurementHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetPurchaseOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if GetBranchID(c) != "" && po.BranchID != GetBranchID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.JSON(poToResponse(po))
}

// List godoc
// @Summary      Listar órdenes de compra de la sucursal
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (draft, sent, confirmed, partially_received, received, cancelled)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	orders, err := h.uc.ListPurchaseOrders(c.Context(), GetBranchID(c),
		entity.POStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		out = append(out, poToResponse(po))
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Transicionar estado de la orden
// @Description  draft→sent→confirmed o cancelación. Los estados de recepción se derivan solos.
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.TransitionPORequest  true  "Estado destino"
// @Success      204   "Sin contenido"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [post]
func (h *ProcurementHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionPORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.TransitionStatus(c.Context(), c.Params("id"), entity.POStatus(in.Status)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receive godoc
// @Summary      Registrar recepción contra la orden
// @Description  Atómica: cada línea incrementa lo recibido, crea su lote de costo y suma al stock.
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceiveItemsRequest  true  "Líneas recibidas"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *ProcurementHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	receipts := make([]procurement.ReceiptLine, 0, len(in.Receipts))
	for _, r := range in.Receipts {
		receipts = append(receipts, procurement.ReceiptLine{
			POItemID:    r.POItemID,
			Quantity:    r.Quantity,
			UnitCost:    r.UnitCost,
			BatchNumber: r.BatchNumber,
			ExpiryDate:  r.ExpiryDate,
		})
	}
	po, err := h.uc.ReceiveItems(c.Context(), c.Params("id"), receipts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(poToResponse(po))
}

// PDF godoc
// @Summary      Descargar la orden en PDF
// @Tags         procurement
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *ProcurementHandler) PDF(c *fiber.Ctx) error {
	data, err := h.uc.GeneratePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-compra.pdf"`)
	return c.Send(data)
}
